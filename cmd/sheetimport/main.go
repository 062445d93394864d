// Package main provides the CLI entry point for sheetimport.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetimport-go/internal/config"
	"github.com/ukaji3/sheetimport-go/internal/logging"
	"github.com/ukaji3/sheetimport-go/internal/store"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/i18n"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/output"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/workbook"
)

var cfgFile string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sheetimport [input.xlsx]",
		Short: "Import spreadsheet rows and report changes against prior records",
		Long: `sheetimport reads the rows of an Excel sheet into records, compares them
with previously stored records and lists new, modified and faulty rows.

Prior records come from another workbook (--prior) or a PostgreSQL table
(--database-url, --table). Without a prior source every row is new.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default: ./sheetimport.yaml if present)")
	flags.String("prior", "", "Workbook holding the prior records")
	flags.String("database-url", "", "PostgreSQL URL for prior records")
	flags.String("table", "", "PostgreSQL table holding prior records")
	flags.String("sheet", "", "Sheet to import (default: first sheet)")
	flags.String("sheet-key", "", "Dictionary key naming the sheet in any language")
	flags.String("dictionary", "", "YAML dictionary with sheet name translations")
	flags.String("lang", config.DefaultLang, "Default dictionary language")
	flags.String("key", "", "Field identifying records")
	flags.StringSlice("diff", nil, "Fields to compare (default: all but the key)")
	flags.StringSlice("decimal", nil, "Header fields read as decimals")
	flags.StringSlice("date", nil, "Header fields read as dates")
	flags.String("locale", config.DefaultLocale, "Locale for number rendering")
	flags.Int("header-row", 0, "One-based header row (default: detect)")
	flags.Int("workers", config.DefaultWorkers, "Parallel workers")
	flags.StringP("output", "o", "", "Output file path (default: stdout)")
	flags.String("format", config.DefaultFormat, "Output format: table, json")
	flags.Bool("pretty", false, "Pretty-print JSON output")
	flags.String("report", "", "Write a change report workbook to this path")
	flags.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	flags.String("log-format", config.DefaultLogFormat, "Log format: text, json")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx := logging.WithContext(cmd.Context(), logger)

	doc, err := workbook.OpenFile(args[0], workbook.WithLocale(cfg.Tag()), workbook.WithLogger(logger))
	if err != nil {
		return err
	}
	defer doc.Close()

	sheet, err := selectSheet(doc, cfg)
	if err != nil {
		return err
	}

	plan, err := newPlan(cfg, sheet)
	if err != nil {
		return err
	}

	b, err := sheetimport.Import(ctx, sheet, plan.mapping, plan.options(cfg, logger))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	lookup, closeLookup, err := openLookup(ctx, cfg, plan)
	if err != nil {
		return err
	}
	defer closeLookup()

	if err := b.Reconcile(ctx, lookup, cfg.Key); err != nil {
		return fmt.Errorf("reconcile failed: %w", err)
	}

	summary := b.Summary()
	logging.WithFields(ctx, "batch", b.ID, "sheet", b.Sheet).Info("import finished",
		"total", summary.Total,
		"new", summary.New,
		"modified", summary.Modified,
		"faulty", summary.Faulty)

	if err := writeResult(cfg, doc.Name(), b); err != nil {
		return err
	}

	if cfg.Report != "" {
		if err := writeReport(cfg, b); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func selectSheet(doc *workbook.Document, cfg *config.Config) (*workbook.Sheet, error) {
	switch {
	case cfg.SheetKey != "":
		dict, err := i18n.LoadFile(cfg.Dictionary, cfg.Lang)
		if err != nil {
			return nil, fmt.Errorf("failed to load dictionary: %w", err)
		}
		sheet, ok := doc.SheetByLocalizedName(dict, cfg.SheetKey)
		if !ok {
			return nil, fmt.Errorf("no sheet named by %q (%v)", cfg.SheetKey, dict.Translations(cfg.SheetKey))
		}
		return sheet, nil
	case cfg.Sheet != "":
		sheet, ok := doc.SheetByName(cfg.Sheet)
		if !ok {
			return nil, fmt.Errorf("sheet not found: %s", cfg.Sheet)
		}
		return sheet, nil
	default:
		return doc.Sheet(0)
	}
}

// openLookup returns the prior record source selected by cfg and a function
// releasing it.
func openLookup(ctx context.Context, cfg *config.Config, plan *plan) (sheetimport.Lookup[importer.Record], func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		pool, err := store.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgres(pool, cfg.Table, cfg.Key, plan.fields), pool.Close, nil
	case cfg.Prior != "":
		prior, err := workbook.OpenFile(cfg.Prior, workbook.WithLocale(cfg.Tag()))
		if err != nil {
			return nil, nil, err
		}
		defer prior.Close()
		sheet, ok := prior.SheetByName(plan.sheet)
		if !ok {
			if sheet, err = prior.Sheet(0); err != nil {
				return nil, nil, err
			}
		}
		logger := logging.FromContext(ctx)
		pb, err := sheetimport.Import(ctx, sheet, plan.mapping, plan.options(cfg, logger))
		if err != nil {
			return nil, nil, fmt.Errorf("import of prior records failed: %w", err)
		}
		mem, err := store.FromBatch(pb, cfg.Key)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("loaded prior records", "path", cfg.Prior, "records", mem.Len())
		return mem, func() {}, nil
	default:
		return store.NewMemory[importer.Record](), func() {}, nil
	}
}

func writeResult(cfg *config.Config, bookName string, b *sheetimport.Batch[importer.Record]) (err error) {
	var w io.Writer = os.Stdout
	if cfg.Output != "" {
		f, cerr := os.Create(cfg.Output)
		if cerr != nil {
			return fmt.Errorf("failed to write output: %w", cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if cfg.Format == "json" {
		return output.WriteJSON(w, b.View(bookName), cfg.Pretty)
	}
	return renderTable(w, b, cfg.Tag())
}

func writeReport(cfg *config.Config, b *sheetimport.Batch[importer.Record]) error {
	doc := workbook.New(workbook.WithLocale(cfg.Tag()))
	defer doc.Close()

	wc := workbook.NewWriterContext(doc)
	if _, err := sheetimport.WriteReport(wc, b, sheetimport.ReportOptions{}); err != nil {
		return err
	}
	// Drop the empty default sheet.
	if err := doc.RemoveSheetAt(0); err != nil {
		return err
	}
	if err := doc.SetActiveSheet(0); err != nil {
		return err
	}
	if err := doc.SaveAs(cfg.Report); err != nil {
		return err
	}
	slog.Debug("wrote report", "path", cfg.Report)
	return nil
}

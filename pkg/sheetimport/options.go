// Package sheetimport imports spreadsheet rows into typed records and
// reconciles them against previously stored records.
package sheetimport

import (
	"log/slog"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
)

// AutoHeaderRow makes Import locate the header row with table detection.
const AutoHeaderRow = -1

// Options configures import behavior.
type Options struct {
	// HeaderRow is the zero-based row holding column titles, or AutoHeaderRow.
	HeaderRow int
	// Workers is the number of goroutines binding rows. Values below 1
	// mean 1.
	Workers int
	// Table tunes header detection when HeaderRow is AutoHeaderRow.
	Table parser.TableDetectionParams
	// Logger receives progress messages. If nil, slog.Default is used.
	Logger *slog.Logger
}

// DefaultOptions returns default import options.
func DefaultOptions() Options {
	return Options{
		HeaderRow: AutoHeaderRow,
		Workers:   1,
		Table:     parser.DefaultTableParams(),
	}
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return 1
	}
	return o.Workers
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

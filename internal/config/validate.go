package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/importer"
	"github.com/ukaji3/sheetimport-go/pkg/sheetimport/parser"
	"golang.org/x/text/language"
)

// Validate checks the configuration and reports all problems at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Key == "" {
		errs = append(errs, errors.New("key is required"))
	}
	switch c.Format {
	case "table", "json":
	default:
		errs = append(errs, fmt.Errorf("invalid format %q (must be table or json)", c.Format))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.HeaderRow < 0 {
		errs = append(errs, fmt.Errorf("header_row must not be negative, got %d", c.HeaderRow))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("invalid locale %q: %w", c.Locale, err))
	}
	if c.Prior != "" && c.DatabaseURL != "" {
		errs = append(errs, errors.New("prior and database_url are mutually exclusive"))
	}
	if c.DatabaseURL != "" && c.Table == "" {
		errs = append(errs, errors.New("table is required with database_url"))
	}
	if c.SheetKey != "" && c.Dictionary == "" {
		errs = append(errs, errors.New("dictionary is required with sheet_key"))
	}
	if c.SheetKey != "" && c.Sheet != "" {
		errs = append(errs, errors.New("sheet and sheet_key are mutually exclusive"))
	}
	for i, col := range c.Columns {
		if err := col.validate(); err != nil {
			errs = append(errs, fmt.Errorf("columns[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func (c ColumnConfig) validate() error {
	if c.Header == "" && c.Index < 1 {
		return errors.New("header or a positive index is required")
	}
	if c.Header == "" && c.Field == "" {
		return errors.New("field is required for index columns")
	}
	if _, err := importer.ParseKind(c.Kind); err != nil {
		return err
	}
	if _, err := parser.ParseReaderKind(c.Reader); err != nil {
		return err
	}
	return nil
}

// FieldName returns the configured field name, or the normalized header.
func (c ColumnConfig) FieldName() string {
	if c.Field != "" {
		return c.Field
	}
	return strings.ToLower(strings.TrimSpace(c.Header))
}

// Tag returns the parsed locale, falling back to English.
func (c *Config) Tag() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// HeaderRowIndex returns the zero-based header row, or -1 for detection.
func (c *Config) HeaderRowIndex() int {
	return c.HeaderRow - 1
}

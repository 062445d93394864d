// Package config loads the sheetimport command configuration.
package config

// Config holds the command settings.
type Config struct {
	// Prior is a workbook holding the previously imported records.
	Prior string `koanf:"prior"`
	// DatabaseURL selects PostgreSQL as the prior record source.
	DatabaseURL string `koanf:"database_url"`
	// Table is the PostgreSQL table holding prior records.
	Table string `koanf:"table"`

	// Sheet is the name of the sheet to import; empty for the first sheet.
	Sheet string `koanf:"sheet"`
	// SheetKey locates the sheet by any translation of this dictionary key.
	SheetKey string `koanf:"sheet_key"`
	// Dictionary is a YAML translation file used with SheetKey.
	Dictionary string `koanf:"dictionary"`
	// Lang is the default language of the dictionary.
	Lang string `koanf:"lang"`

	// Key is the field identifying records.
	Key string `koanf:"key"`
	// Diff lists the compared fields; empty compares all fields.
	Diff []string `koanf:"diff"`
	// Decimal lists header-derived fields read as decimals.
	Decimal []string `koanf:"decimal"`
	// Date lists header-derived fields read as dates.
	Date []string `koanf:"date"`
	// Columns declares the column mapping explicitly. When empty, every
	// header title becomes a text field.
	Columns []ColumnConfig `koanf:"columns"`

	// Locale is a BCP 47 tag used to render numbers.
	Locale string `koanf:"locale"`
	// HeaderRow is the one-based header row; 0 detects it.
	HeaderRow int `koanf:"header_row"`
	// Workers is the number of parallel binding and lookup workers.
	Workers int `koanf:"workers"`

	// Output is the result file; empty for stdout.
	Output string `koanf:"output"`
	// Format is "table" or "json".
	Format string `koanf:"format"`
	// Pretty indents JSON output.
	Pretty bool `koanf:"pretty"`
	// Report is a workbook to write the change report into.
	Report string `koanf:"report"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// ColumnConfig maps one sheet column onto a record field.
type ColumnConfig struct {
	// Header is the column title.
	Header string `koanf:"header"`
	// Index is the one-based column position, used when Header is empty.
	Index int `koanf:"index"`
	// Field is the record field name; defaults to the lowercased header.
	Field string `koanf:"field"`
	// Kind is the field kind: string, text, int, float, decimal, bool, date.
	Kind string `koanf:"kind"`
	// Reader overrides how cells are read: auto, text, number, date, bool.
	Reader string `koanf:"reader"`
	// Required fails the import when the header is missing.
	Required bool `koanf:"required"`
}

// Defaults.
const (
	DefaultFormat    = "table"
	DefaultLocale    = "en"
	DefaultLang      = "en"
	DefaultWorkers   = 1
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
	DefaultFileName  = "sheetimport.yaml"
	EnvPrefix        = "SHEETIMPORT_"
)

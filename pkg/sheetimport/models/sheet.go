package models

// SheetInfo describes one sheet of a workbook.
type SheetInfo struct {
	// Name is the sheet display name.
	Name string `json:"name"`
	// Index is the zero-based sheet position.
	Index int `json:"index"`
	// Modified reports unsaved changes on the sheet.
	Modified bool `json:"modified,omitempty"`
}

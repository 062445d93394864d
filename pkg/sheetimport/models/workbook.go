package models

// WorkbookInfo represents a workbook-level summary.
type WorkbookInfo struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Sheets lists the sheets in position order.
	Sheets []SheetInfo `json:"sheets"`
}

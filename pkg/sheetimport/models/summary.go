package models

// ImportSummary counts the elements of an import batch per state.
type ImportSummary struct {
	Total        int `json:"total"`
	New          int `json:"new"`
	Modified     int `json:"modified"`
	Unmodified   int `json:"unmodified"`
	Faulty       int `json:"faulty"`
	Unreconciled int `json:"unreconciled"`
	Selected     int `json:"selected"`
}

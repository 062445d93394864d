package models

// PropertyDelta records a single field whose value differs between the
// imported record and its prior counterpart.
type PropertyDelta struct {
	// Field is the declared diff field name.
	Field string `json:"field"`
	// OldValue is the prior value rendered as text (empty if absent).
	OldValue string `json:"old_value"`
	// NewValue is the imported value rendered as text (empty if absent).
	NewValue string `json:"new_value"`
}

package parser

import "testing"

func TestIsDateFormat(t *testing.T) {
	str := func(s string) *string { return &s }
	tests := []struct {
		numFmt   int
		custom   *string
		expected bool
	}{
		{0, nil, false},
		{1, nil, false},
		{14, nil, true},
		{22, nil, true},
		{49, nil, false},
		{0, str("yyyy-mm-dd"), true},
		{0, str("dd.mm.yyyy hh:mm"), true},
		{0, str("[h]:mm:ss"), true},
		{0, str("#,##0.00"), false},
		{0, str(`0.00 "mm"`), false},
		{0, str("[Red]#,##0"), false},
		{0, str("General"), false},
		{14, str("0.00"), false},
	}

	for _, tt := range tests {
		result := IsDateFormat(tt.numFmt, tt.custom)
		if result != tt.expected {
			custom := "<nil>"
			if tt.custom != nil {
				custom = *tt.custom
			}
			t.Errorf("IsDateFormat(%d, %q) = %v, expected %v", tt.numFmt, custom, result, tt.expected)
		}
	}
}

package parser

import "strings"

// builtinDateFormats lists the builtin number format ids that display dates
// or times, including the East Asian variants.
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// IsDateFormat reports whether a number format displays a date or time.
// A custom format code takes precedence over the builtin id.
func IsDateFormat(numFmt int, custom *string) bool {
	if custom != nil && *custom != "" {
		return isDateFormatCode(*custom)
	}
	return builtinDateFormats[numFmt]
}

// isDateFormatCode looks for date or time tokens outside quoted literals,
// escaped characters and bracketed sections such as colors or locales.
func isDateFormatCode(code string) bool {
	var b strings.Builder
	inQuote := false
	for i := 0; i < len(code); i++ {
		c := code[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
			continue
		case c == '"':
			inQuote = true
			continue
		case c == '\\' || c == '_' || c == '*':
			i++
			continue
		case c == '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			section := strings.ToLower(code[i+1 : i+end])
			if strings.Trim(section, "hms") == "" {
				// Elapsed time: [h]:mm:ss
				b.WriteString(section)
			}
			i += end
			continue
		}
		b.WriteByte(c)
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ydmhs")
}

package calendar

import "strings"

// maxInputLength is len("DD/MM/YYYY")
const maxInputLength = 10

// FormatInput applies the input mask used while a date is being typed:
// everything except digits and slashes is dropped, slashes are inserted
// after the day and the month, and the result is cut to ten characters.
func FormatInput(value string) string {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '/' {
			return r
		}
		return -1
	}, value)

	if len(cleaned) >= 2 && !slashAt(cleaned, 2) {
		cleaned = cleaned[:2] + "/" + cleaned[2:]
	}
	if len(cleaned) >= 5 && !slashAt(cleaned, 5) {
		cleaned = cleaned[:5] + "/" + cleaned[5:]
	}

	if len(cleaned) > maxInputLength {
		cleaned = cleaned[:maxInputLength]
	}
	return cleaned
}

func slashAt(s string, i int) bool {
	return i < len(s) && s[i] == '/'
}

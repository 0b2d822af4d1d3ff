package calendar

import "testing"

func TestFormatInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"one digit", "0", "0"},
		{"two digits get a slash", "01", "01/"},
		{"day and month digits", "0101", "01/01/"},
		{"five characters get second slash", "01/01", "01/01/"},
		{"digits only", "01012026", "01/01/2026"},
		{"already formatted", "01/01/2026", "01/01/2026"},
		{"letters and spaces dropped", "0a1 0-1 2026", "01/01/2026"},
		{"dots dropped", "01.01.2026", "01/01/2026"},
		{"truncated to ten", "010120261234", "01/01/2026"},
		{"short fields are not repaired", "1/1/2026", "1//1//2026"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatInput(tt.input); got != tt.want {
				t.Errorf("FormatInput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

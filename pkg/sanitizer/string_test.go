package sanitizer

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Jane Smith  ",
			want:  "Jane Smith",
		},
		{
			name:  "multiple spaces between words",
			input: "Jane    Smith",
			want:  "Jane Smith",
		},
		{
			name:  "tabs and newlines",
			input: "Jane\t\nSmith",
			want:  "Jane Smith",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve special characters",
			input: " Zoë & Renée O'Brien ",
			want:  "Zoë & Renée O'Brien",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeName(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizeName(got); again != got {
				t.Errorf("NormalizeName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  John@Example.COM ", "john@example.com"},
		{"jane@example.com", "jane@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.input); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeToken(t *testing.T) {
	if got := NormalizeToken(" Morning "); got != "morning" {
		t.Errorf("NormalizeToken() = %q, want %q", got, "morning")
	}
	if got := NormalizeToken("2025-06-01\n"); got != "2025-06-01" {
		t.Errorf("NormalizeToken() = %q, want %q", got, "2025-06-01")
	}
}

func TestNormalizeFreeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "keeps line breaks",
			input: "Vegetarian menu\r\nBlue decorations",
			want:  "Vegetarian menu\nBlue decorations",
		},
		{
			name:  "drops control characters",
			input: "Live\x00 band\x07",
			want:  "Live band",
		},
		{
			name:  "trims",
			input: "  \n none \n ",
			want:  "none",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeFreeText(tt.input); got != tt.want {
				t.Errorf("NormalizeFreeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone("  123-456   7890 "); got != "123-456 7890" {
		t.Errorf("NormalizePhone() = %q", got)
	}
}

package quoteform

import "testing"

func TestNormalizePostalCode(t *testing.T) {
	tests := map[string]string{
		"12a34b":     "1234",
		"123456":     "12345",
		"12345":      "12345",
		" 9 0 2 1 0": "90210",
		"abc":        "",
		"":           "",
	}
	for in, want := range tests {
		if got := NormalizePostalCode(in); got != want {
			t.Errorf("NormalizePostalCode(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatPhoneInput(t *testing.T) {
	tests := map[string]string{
		"":                "",
		"5":               "5",
		"55":              "55",
		"555":             "(555) ",
		"5551":            "(555) 1",
		"55512":           "(555) 12",
		"555123":          "(555) 123-",
		"5551234":         "(555) 123-4",
		"5551234567":      "(555) 123-4567",
		"555123456789":    "(555) 123-4567",
		"(555) 123-4567":  "(555) 123-4567",
		"+1 555 123 4567": "(155) 512-3456",
	}
	for in, want := range tests {
		if got := FormatPhoneInput(in); got != want {
			t.Errorf("FormatPhoneInput(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeByFormat(t *testing.T) {
	if got := Normalize(FormatPostalCode, "12-345-6"); got != "12345" {
		t.Fatalf("postal normalize: %q", got)
	}
	if got := Normalize(FormatPhone, "555.123"); got != "(555) 123-" {
		t.Fatalf("phone normalize: %q", got)
	}
	if got := Normalize(FormatEmail, " A@b.com "); got != " A@b.com " {
		t.Fatalf("email must be left untouched, got %q", got)
	}
}

package leads

import (
	"testing"

	"github.com/wolfman30/window-quote/internal/quoteform"
)

// submittedSession walks the built-in form with valid answers and submits it.
func submittedSession(t *testing.T) *quoteform.Session {
	t.Helper()
	s := quoteform.NewSession("sess-1", quoteform.WindowReplacement())
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	set := func(id, v string) {
		t.Helper()
		_, err := s.SetField(id, v)
		must(err)
	}

	set(quoteform.FieldZipcode, "60614")
	must(s.Advance(1))
	picks := [][2]string{
		{quoteform.FieldProjectType, "replace"},
		{quoteform.FieldWindowCount, "6-10"},
		{quoteform.FieldWindowStyle, "casement"},
		{quoteform.FieldFrameMaterial, "vinyl"},
		{quoteform.FieldTimeline, "flexible"},
		{quoteform.FieldHomeowner, "yes"},
	}
	for i, pick := range picks {
		must(s.SelectOption(pick[0], pick[1]))
		must(s.Advance(i + 2))
	}
	set(quoteform.FieldFirstName, "Dana")
	set(quoteform.FieldLastName, "Reyes")
	set(quoteform.FieldEmail, "dana@example.com")
	set(quoteform.FieldPhone, "3125550199")
	must(s.SetChecked(quoteform.FieldConsent, true))
	if _, err := s.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	return s
}

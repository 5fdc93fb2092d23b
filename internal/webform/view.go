package webform

import (
	"html"
	"strconv"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/wolfman30/window-quote/internal/quoteform"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// stripMarkup drops any markup from free text typed by the visitor before it
// is echoed back. The result is unescaped so the template escapes it once.
func stripMarkup(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// PageView is the template data for one render of a session.
type PageView struct {
	Title           string
	BasePath        string
	SessionID       string
	CurrentStep     int
	TotalSteps      int
	ProgressFill    string
	ProgressPercent int
	Panels          []PanelView
	Confirmation    *ConfirmationView
}

// PanelView is one step of the form.
type PanelView struct {
	Number      int
	Title       string
	Active      bool
	HasPrevious bool
	Final       bool
	Fields      []FieldView
}

// FieldView is one input with its current value and inline error.
type FieldView struct {
	ID        string
	Label     string
	InputType string
	InputMode string
	MaxLength int
	Value     string
	Error     string
	Required  bool
	Radio     bool
	Checkbox  bool
	Checked   bool
	Options   []OptionView
}

type OptionView struct {
	Value    string
	Label    string
	Selected bool
}

type ConfirmationView struct {
	Heading  string
	Message  string
	FollowUp string
}

func buildPageView(s *quoteform.Session, basePath string) PageView {
	def := s.Definition()
	progress := s.Progress()
	v := PageView{
		Title:           "Get Your Free Window Replacement Quote",
		BasePath:        basePath,
		SessionID:       s.ID(),
		CurrentStep:     s.CurrentStep(),
		TotalSteps:      s.TotalSteps(),
		ProgressFill:    strconv.FormatFloat(progress.Fill, 'f', -1, 64),
		ProgressPercent: progress.Percent,
	}

	if c, ok := s.Confirmation(); ok {
		v.Confirmation = &ConfirmationView{
			Heading:  c.Heading,
			Message:  c.Message,
			FollowUp: c.FollowUp,
		}
		return v
	}

	for i, st := range def.Steps() {
		number := i + 1
		panel := PanelView{
			Number:      number,
			Title:       st.Title,
			Active:      number == s.CurrentStep(),
			HasPrevious: number > 1,
			Final:       number == def.TotalSteps(),
		}
		for _, f := range st.Fields {
			panel.Fields = append(panel.Fields, buildFieldView(s, f))
		}
		v.Panels = append(v.Panels, panel)
	}
	return v
}

func buildFieldView(s *quoteform.Session, f quoteform.FieldDescriptor) FieldView {
	fv := FieldView{
		ID:        f.ID,
		Label:     f.Label,
		Value:     s.Value(f.ID),
		Required:  f.Required,
		InputType: "text",
	}
	if kind, ok := s.FieldError(f.ID); ok {
		fv.Error = kind.Message()
	}

	switch f.Kind {
	case quoteform.KindRadio:
		fv.Radio = true
		for _, opt := range f.Options {
			fv.Options = append(fv.Options, OptionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: s.IsSelected(f.ID, opt.Value),
			})
		}
	case quoteform.KindCheckbox:
		fv.Checkbox = true
		fv.Checked = s.Checked(f.ID)
	case quoteform.KindNumber:
		fv.InputType = "number"
		fv.Value = stripMarkup(fv.Value)
	default:
		fv.Value = stripMarkup(fv.Value)
	}

	switch f.Format {
	case quoteform.FormatPostalCode:
		fv.InputMode = "numeric"
		fv.MaxLength = 5
	case quoteform.FormatEmail:
		fv.InputType = "email"
	case quoteform.FormatPhone:
		fv.InputType = "tel"
		fv.MaxLength = len("(555) 555-5555")
	}
	return fv
}

package webform

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

const pageTemplate = "quote.html"

// Renderer executes the quote page template.
type Renderer struct {
	page *pongo2.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("webform: templates: %w", err)
	}
	set := pongo2.NewSet("webform", pongo2.NewFSLoader(sub))
	page, err := set.FromFile(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("webform: parse %s: %w", pageTemplate, err)
	}
	return &Renderer{page: page}, nil
}

// MustRenderer is NewRenderer for callers that cannot continue without it.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Page writes the full page for v. Nothing is written when execution fails.
func (r *Renderer) Page(w io.Writer, v PageView) error {
	if err := r.page.ExecuteWriter(pongo2.Context{"page": v}, w); err != nil {
		return fmt.Errorf("webform: render page: %w", err)
	}
	return nil
}

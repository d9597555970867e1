package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"

	"github.com/jonathan/portfolio-generator/internal/types"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(
	template.New("portfolio.html").
		Funcs(template.FuncMap{"deref": deref}).
		ParseFS(templateFS, "templates/portfolio.html"),
)

// Render writes the portfolio page for rec to w. A missing or nameless record
// renders the "Portfolio Not Found" page.
func Render(w io.Writer, rec *types.PortfolioRecord) error {
	page, err := Prepare(rec)
	if err != nil {
		return err
	}
	return RenderPage(w, page)
}

// RenderPage executes the template for an already prepared page. Output is
// buffered so a failed execution writes nothing to w.
func RenderPage(w io.Writer, page *Page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return &TemplateError{Message: "failed to execute template", Cause: err}
	}
	if _, err := buf.WriteTo(w); err != nil {
		return &RenderError{Message: "failed to write page", Cause: err}
	}
	return nil
}

func deref(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

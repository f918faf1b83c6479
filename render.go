package invoiceform

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money":  FormatMoney,
	"rate":   FormatRate,
	"number": formatNumber,
}).ParseFS(templateFS, "templates/*.html.tmpl"))

// RenderOptions controls how [Render] lays out the invoice.
type RenderOptions struct {
	// Editable renders the full interactive page: the invoice region
	// with input elements, wrapped in a form with Save, Add Item and
	// Download PDF buttons. Otherwise a standalone read-only document
	// containing only the invoice region is rendered.
	Editable bool

	// SaveAction, AddItemAction and DownloadAction are the form targets
	// used in editable mode.
	SaveAction     string
	AddItemAction  string
	DownloadAction string
}

type renderData struct {
	RenderOptions
	Invoice Invoice
	Totals  Totals
}

// Render writes the HTML rendering of inv to w. Totals are recomputed on
// every call.
func Render(w io.Writer, inv Invoice, opts RenderOptions) error {
	name := "document"
	if opts.Editable {
		name = "form"
	}
	data := renderData{
		RenderOptions: opts,
		Invoice:       inv,
		Totals:        ComputeTotals(inv),
	}
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("invoiceform: rendering %s: %w", name, err)
	}
	return nil
}

// RenderString is like [Render] but returns the HTML as a string.
func RenderString(inv Invoice, opts RenderOptions) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, inv, opts); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

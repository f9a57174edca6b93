// Package views renders the admin console pages from embedded templates.
//
// Everything user-supplied (medicine names, prices typed into forms, backend
// text) goes through html/template contextual escaping, so it always reaches
// the browser as text.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"

	"github.com/giygas/medicines-admin/entities"
	"github.com/giygas/medicines-admin/interfaces"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcs = template.FuncMap{
	"statusClass":      statusClass,
	"formMessageClass": formMessageClass,
}

func statusClass(tone entities.Tone) string {
	if tone == entities.ToneNone {
		return "status"
	}
	return "status status--" + string(tone)
}

func formMessageClass(tone entities.Tone) string {
	if tone == entities.ToneNone {
		return "form-message"
	}
	return "form-message form-message--" + string(tone)
}

// Renderer executes the page and dialog templates
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("views").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Page writes the full admin page
func (r *Renderer) Page(w io.Writer, page *Page) error {
	return r.execute(w, "page", page)
}

// Dialog writes a confirmation or price prompt
func (r *Renderer) Dialog(w io.Writer, dialog Dialog) error {
	return r.execute(w, "dialog", dialog)
}

// execute renders into a buffer first so a template failure never leaves a
// half-written page behind
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// StaticHandler serves the embedded stylesheet under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

var _ interfaces.Notifier = (*Page)(nil)

// Page is the view model of the admin page. It collects the feedback of a
// single request (alerts, the creation form message) next to the board
// snapshot taken once the request's work is done.
type Page struct {
	BaseURL string
	Board   entities.BoardSnapshot

	Alerts    []string
	Flash     string
	FlashTone entities.Tone
	FormName  string
	FormPrice string
}

// NewPage creates an empty page for baseURL
func NewPage(baseURL string) *Page {
	return &Page{BaseURL: baseURL}
}

// Alert queues a blocking message shown above the page content
func (p *Page) Alert(message string) {
	p.Alerts = append(p.Alerts, message)
}

// FormMessage sets the inline message under the creation form
func (p *Page) FormMessage(message string, tone entities.Tone) {
	p.Flash = message
	p.FlashTone = tone
}

// KeepForm echoes the submitted values back into the creation form
func (p *Page) KeepForm(name, price string) {
	p.FormName = name
	p.FormPrice = price
}

// ResetForm clears the creation form fields
func (p *Page) ResetForm() {
	p.FormName = ""
	p.FormPrice = ""
}

// Dialog stands in for the browser's confirm() and prompt() boxes
type Dialog struct {
	Action   entities.Action
	Name     string
	Message  string
	AskPrice bool
}

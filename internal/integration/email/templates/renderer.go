// Package templates renders the notification emails from embedded templates.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// TemplateImbalanceAlert is sent when a consolidation fails validation.
const TemplateImbalanceAlert = "imbalance_alert"

// ImbalanceAlertData feeds the imbalance alert.
type ImbalanceAlertData struct {
	OwnerName    string
	CompanyCount int
	Errors       []string
	Warnings     []string
	OrphanCount  int
	DashboardURL string
}

// Renderer holds the parsed html and plain-text variants of every template.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// RenderImbalanceAlert returns the html and plain-text bodies of the alert.
func (r *Renderer) RenderImbalanceAlert(data ImbalanceAlertData) (string, string, error) {
	return r.render(TemplateImbalanceAlert, data)
}

// render fails when either variant fails; the alert is never sent half-rendered.
func (r *Renderer) render(name string, data any) (string, string, error) {
	var html, text bytes.Buffer
	if err := r.html.ExecuteTemplate(&html, name+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s.html: %w", name, err)
	}
	if err := r.text.ExecuteTemplate(&text, name+".txt", data); err != nil {
		return "", "", fmt.Errorf("failed to render %s.txt: %w", name, err)
	}
	return html.String(), text.String(), nil
}

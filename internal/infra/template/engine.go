package template

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"regexp"
	"strings"

	"storemail/internal/common"
	"storemail/internal/domain/notification"
)

var _ notification.TemplateRenderer = (*Engine)(nil)

//go:embed templates/*.html
var files embed.FS

// Engine renders the built-in notification templates using Go's html/template package.
type Engine struct {
	templates *template.Template
	defaults  Defaults
}

// NewEngine parses the embedded templates. defaults supply the configured
// store name and customer_registered fallbacks.
func NewEngine(defaults Defaults) (*Engine, error) {
	tmpl, err := template.ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing embedded templates: %w", err)
	}
	return &Engine{templates: tmpl, defaults: defaults}, nil
}

// Has reports whether name is a built-in template.
func (e *Engine) Has(name string) bool {
	switch name {
	case notification.TemplateCustomerRegistered, notification.TemplateOrderPlaced:
		return true
	}
	return false
}

// Render produces subject, HTML and plain-text content for a built-in template.
func (e *Engine) Render(name, locale string, data notification.Data) (*notification.Content, error) {
	switch name {
	case notification.TemplateCustomerRegistered:
		return e.renderCustomerRegistered(data)
	case notification.TemplateOrderPlaced:
		return e.renderOrderPlaced(locale)
	default:
		return nil, common.NewNotFoundError("template", name)
	}
}

func (e *Engine) renderCustomerRegistered(data notification.Data) (*notification.Content, error) {
	var d notification.CustomerRegisteredData
	if err := data.Decode(&d); err != nil {
		// Rendering falls back to defaults for anything unreadable.
		slog.Warn("customer_registered: ignoring undecodable data", "error", err)
		d = notification.CustomerRegisteredData{}
	}

	doc := e.defaults.ComposeCustomerRegistered(d)
	html, err := e.execute(notification.TemplateCustomerRegistered, doc)
	if err != nil {
		return nil, err
	}

	return &notification.Content{
		Subject: e.defaults.ResolveCustomerRegisteredSubject(d),
		HTML:    html,
		Text:    doc.PlainText(),
	}, nil
}

func (e *Engine) renderOrderPlaced(locale string) (*notification.Content, error) {
	doc := OrderPlaced()
	html, err := e.execute(notification.TemplateOrderPlaced, doc)
	if err != nil {
		return nil, err
	}

	subject, _ := OrderPlacedSubject(locale)
	return &notification.Content{
		Subject: subject,
		HTML:    html,
		Text:    doc.PlainText(),
	}, nil
}

func (e *Engine) execute(name string, doc any) (string, error) {
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name+".html", doc); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

var (
	tagRe        = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	lineBreakRe  = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// stripHTML removes HTML tags and collapses whitespace to produce a plain-text version.
func stripHTML(s string) string {
	text := tagRe.ReplaceAllString(s, "")

	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&#39;", "'")
	text = strings.ReplaceAll(text, "&nbsp;", " ")

	text = whitespaceRe.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// stripHTMLLines is stripHTML that keeps <br> tags as line breaks.
func stripHTMLLines(s string) string {
	parts := lineBreakRe.Split(s, -1)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if line := stripHTML(p); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

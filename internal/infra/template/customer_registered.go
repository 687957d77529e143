package template

import (
	"fmt"
	"html/template"
	"strings"

	"storemail/internal/domain/notification"
)

const (
	defaultStoreName                 = "Cyber Maker"
	defaultTeamName                  = "The Cyber Maker Team"
	defaultCustomerRegisteredSubject = "Welcome to Cyber Maker"
	defaultCustomerRegisteredPreview = "Thanks for registering with Cyber Maker."
	defaultCustomerRegisteredBody    = "You're all set to start shopping. If you have any questions, just reply to this email and our team will help."
)

// Defaults are the configured fallbacks for the customer_registered template.
// Empty fields use the built-in Cyber Maker wording.
type Defaults struct {
	StoreName                 string
	CustomerRegisteredSubject string
	CustomerRegisteredPreview string
}

// CustomerRegisteredDoc is the structured welcome email.
type CustomerRegisteredDoc struct {
	Preview  string
	Greeting string
	Body     string

	// Signature is trusted markup and is not escaped.
	Signature template.HTML
}

// ResolveCustomerRegisteredSubject returns the trimmed data subject, else the
// configured subject, else "Welcome to Cyber Maker".
func (d Defaults) ResolveCustomerRegisteredSubject(data notification.CustomerRegisteredData) string {
	if s := strings.TrimSpace(data.Subject); s != "" {
		return s
	}
	if d.CustomerRegisteredSubject != "" {
		return d.CustomerRegisteredSubject
	}
	return defaultCustomerRegisteredSubject
}

// ComposeCustomerRegistered builds the welcome document. Each section falls
// back independently, so any input (including the zero value) renders.
func (d Defaults) ComposeCustomerRegistered(data notification.CustomerRegisteredData) CustomerRegisteredDoc {
	greeting := data.Intro
	if greeting == "" {
		name := data.ToName
		if name == "" {
			name = "there"
		}
		greeting = fmt.Sprintf("Hi %s, thanks for creating a %s account.", name, orDefault(d.StoreName, defaultStoreName))
	}

	body := orDefault(data.Body, defaultCustomerRegisteredBody)

	signature := data.Signature
	if signature == "" {
		signature = "Cheers,<br />" + orDefault(d.StoreName, defaultTeamName)
	}

	preview := orDefault(data.PreviewText, orDefault(d.CustomerRegisteredPreview, defaultCustomerRegisteredPreview))

	return CustomerRegisteredDoc{
		Preview:   preview,
		Greeting:  greeting,
		Body:      body,
		Signature: template.HTML(signature),
	}
}

// PlainText renders the document as a text part.
func (doc CustomerRegisteredDoc) PlainText() string {
	return strings.Join([]string{
		doc.Greeting,
		doc.Body,
		stripHTMLLines(string(doc.Signature)),
	}, "\n\n")
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

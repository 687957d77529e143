package notification

import (
	"context"
	"time"
)

// Provider defines the contract for a notification delivery channel.
// Implementations live in infra/email/.
type Provider interface {
	// Send delivers one request and returns the provider's message identifier.
	// Every failure comes back as a *common.DeliveryError.
	Send(ctx context.Context, req *Request) (*Result, error)

	// Channel returns which delivery channel this provider handles.
	Channel() Channel

	// Name identifies the provider in logs and metrics.
	Name() string
}

// TemplateRenderer defines the contract for rendering notification templates.
// Implementations live in infra/template/.
type TemplateRenderer interface {
	// Has reports whether a template with the given identifier is registered.
	Has(name string) bool

	// Render produces subject, HTML and plain-text content. The subject may be
	// empty when the template has none for the locale.
	Render(name, locale string, data Data) (*Content, error)
}

// SendObserver receives the outcome of every send attempt.
type SendObserver interface {
	ObserveSend(provider, template, outcome string, elapsed time.Duration)
}

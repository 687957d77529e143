package email

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"

	"storemail/internal/common"
	"storemail/internal/domain/notification"

	"github.com/resend/resend-go/v2"
)

var _ notification.Provider = (*ResendProvider)(nil)

// ResendOptions configures the Resend provider.
type ResendOptions struct {
	APIKey    string
	FromEmail string
	FromName  string

	// BaseURL overrides the API endpoint. It must end with a slash.
	BaseURL string
}

// ResendProvider sends emails using the Resend API. Inline attachments
// are delivered as regular attachments.
type ResendProvider struct {
	client *resend.Client
	from   notification.Address
}

// NewResendProvider creates a new Resend email provider.
func NewResendProvider(opts ResendOptions) (*ResendProvider, error) {
	if opts.APIKey == "" {
		return nil, common.NewValidationError("resend API key is required")
	}
	if opts.FromEmail == "" {
		return nil, common.NewValidationError("resend from address is required")
	}

	client := resend.NewClient(opts.APIKey)
	if opts.BaseURL != "" {
		u, err := url.Parse(opts.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing resend base url: %w", err)
		}
		client.BaseURL = u
	}

	return &ResendProvider{
		client: client,
		from:   notification.Address{Email: opts.FromEmail, Name: opts.FromName},
	}, nil
}

// Channel returns the email channel identifier.
func (p *ResendProvider) Channel() notification.Channel {
	return notification.ChannelEmail
}

// Name returns "resend".
func (p *ResendProvider) Name() string {
	return "resend"
}

// Send delivers an email via the Resend API and returns the message ID.
func (p *ResendProvider) Send(ctx context.Context, req *notification.Request) (*notification.Result, error) {
	id, err := p.send(ctx, req)
	if err != nil {
		slog.Error("resend: failed to send",
			"template", req.Template,
			"to", req.To,
			"error", err,
		)
		return nil, common.NewDeliveryError(req.Template, req.To, err)
	}
	return &notification.Result{ID: id}, nil
}

func (p *ResendProvider) send(ctx context.Context, req *notification.Request) (string, error) {
	msg, err := notification.Compose(req, p.from)
	if err != nil {
		return "", err
	}

	params := &resend.SendEmailRequest{
		From:    formatAddress(msg.From),
		To:      []string{formatAddress(msg.To)},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}
	if msg.ReplyTo != nil {
		params.ReplyTo = formatAddress(*msg.ReplyTo)
	}

	for _, a := range append(msg.Attachments, msg.Inline...) {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return "", common.NewValidationError(fmt.Sprintf("attachment %q is not valid base64", a.Filename))
		}
		params.Attachments = append(params.Attachments, &resend.Attachment{
			Content:     content,
			Filename:    a.Filename,
			ContentType: a.ContentType,
		})
	}

	sent, err := p.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", common.NewProviderError("resend", 0, err.Error())
	}
	return sent.Id, nil
}

func formatAddress(a notification.Address) string {
	if a.Name == "" {
		return a.Email
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

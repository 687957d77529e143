package email

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"storemail/internal/common"
	"storemail/internal/domain/notification"
	"storemail/internal/infra/mailjet"
)

var _ notification.Provider = (*MailjetProvider)(nil)

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en"

// MailjetOptions configures the Mailjet provider.
type MailjetOptions struct {
	APIKey        string
	APISecret     string
	FromEmail     string
	FromName      string
	DefaultLocale string

	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// ValidateMailjetOptions checks the credentials and default sender.
func ValidateMailjetOptions(opts MailjetOptions) error {
	if opts.APIKey == "" {
		return common.NewValidationError("mailjet API key is required. You can get it from https://app.mailjet.com/account/apikeys")
	}
	if opts.APISecret == "" {
		return common.NewValidationError("mailjet secret key is required. You can get it from https://app.mailjet.com/account/apikeys")
	}
	if opts.FromEmail == "" {
		return common.NewValidationError("mailjet from_email is required")
	}
	return nil
}

// MailjetProvider sends pre-rendered emails through the Mailjet Send API.
// It does not render templates; content comes from the request.
type MailjetProvider struct {
	opts MailjetOptions

	clientOnce sync.Once
	client     *mailjet.Client
}

// NewMailjetProvider validates the options and creates the provider.
func NewMailjetProvider(opts MailjetOptions) (*MailjetProvider, error) {
	if err := ValidateMailjetOptions(opts); err != nil {
		return nil, err
	}
	if opts.DefaultLocale == "" {
		opts.DefaultLocale = DefaultLocale
	}
	return &MailjetProvider{opts: opts}, nil
}

// Channel returns the email channel identifier.
func (p *MailjetProvider) Channel() notification.Channel {
	return notification.ChannelEmail
}

// Name returns "mailjet".
func (p *MailjetProvider) Name() string {
	return "mailjet"
}

// DefaultLocale returns the configured default locale.
func (p *MailjetProvider) DefaultLocale() string {
	return p.opts.DefaultLocale
}

// Send delivers one email. Any failure, including invalid input, is logged
// and returned as a *common.DeliveryError; invalid input never reaches the API.
func (p *MailjetProvider) Send(ctx context.Context, req *notification.Request) (*notification.Result, error) {
	id, err := p.send(ctx, req)
	if err != nil {
		slog.Error("mailjet: failed to send",
			"template", req.Template,
			"to", req.To,
			"error", err,
		)
		return nil, common.NewDeliveryError(req.Template, req.To, err)
	}
	return &notification.Result{ID: id}, nil
}

func (p *MailjetProvider) send(ctx context.Context, req *notification.Request) (string, error) {
	msg, err := notification.Compose(req, notification.Address{Email: p.opts.FromEmail, Name: p.opts.FromName})
	if err != nil {
		return "", err
	}

	resp, err := p.getClient().Send(ctx, &mailjet.SendRequest{Messages: []mailjet.Message{toWire(msg)}})
	if err != nil {
		return "", err
	}
	return resp.MessageID(), nil
}

func (p *MailjetProvider) getClient() *mailjet.Client {
	p.clientOnce.Do(func() {
		p.client = mailjet.NewClient(mailjet.Config{
			APIKey:     p.opts.APIKey,
			APISecret:  p.opts.APISecret,
			BaseURL:    p.opts.BaseURL,
			Timeout:    p.opts.Timeout,
			MaxRetries: p.opts.MaxRetries,
		})
	})
	return p.client
}

func toWire(msg *notification.Message) mailjet.Message {
	out := mailjet.Message{
		From:     mailjet.Recipient{Email: msg.From.Email, Name: msg.From.Name},
		To:       []mailjet.Recipient{{Email: msg.To.Email, Name: msg.To.Name}},
		Subject:  msg.Subject,
		HTMLPart: msg.HTML,
		TextPart: msg.Text,
	}
	if msg.ReplyTo != nil {
		out.ReplyTo = &mailjet.Recipient{Email: msg.ReplyTo.Email, Name: msg.ReplyTo.Name}
	}
	for _, a := range msg.Attachments {
		out.Attachments = append(out.Attachments, wireAttachment(a))
	}
	for _, a := range msg.Inline {
		out.InlinedAttachments = append(out.InlinedAttachments, mailjet.InlinedAttachment{
			Attachment: wireAttachment(a),
			ContentID:  a.ID,
		})
	}
	return out
}

func wireAttachment(a notification.Attachment) mailjet.Attachment {
	return mailjet.Attachment{
		ContentType:   a.ContentType,
		Filename:      a.Filename,
		Base64Content: a.Content,
	}
}

package email

import (
	"fmt"
	"time"

	"storemail/internal/common"
	"storemail/internal/config"
	"storemail/internal/domain/notification"
)

// NewProvider builds the email provider selected by email.provider.
func NewProvider(cfg *config.Config) (notification.Provider, error) {
	switch cfg.Email.Provider {
	case "", "mailjet":
		p, err := NewMailjetProvider(MailjetOptions{
			APIKey:        cfg.Mailjet.APIKey,
			APISecret:     cfg.Mailjet.APISecret,
			FromEmail:     cfg.Email.FromAddress,
			FromName:      cfg.Email.FromName,
			DefaultLocale: cfg.Email.DefaultLocale,
			BaseURL:       cfg.Mailjet.BaseURL,
			Timeout:       time.Duration(cfg.Mailjet.TimeoutSec) * time.Second,
			MaxRetries:    cfg.Mailjet.MaxRetries,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	case "resend":
		p, err := NewResendProvider(ResendOptions{
			APIKey:    cfg.Resend.APIKey,
			FromEmail: cfg.Email.FromAddress,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, common.NewValidationError(fmt.Sprintf("unsupported email provider: %s", cfg.Email.Provider))
	}
}

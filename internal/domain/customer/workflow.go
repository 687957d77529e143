package customer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"storemail/internal/common"
	"storemail/internal/domain/notification"

	"github.com/hibiken/asynq"
)

// Workflow sends the welcome email for a newly registered customer.
// It never retries; the task framework owns retry.
type Workflow struct {
	store  Store
	sender Sender
}

// NewWorkflow creates a new customer registration workflow.
func NewWorkflow(store Store, sender Sender) *Workflow {
	return &Workflow{store: store, sender: sender}
}

// RecipientName joins the trimmed, non-empty first and last names with a
// space. It falls back to the email when both are empty.
func RecipientName(c *Customer) string {
	parts := make([]string, 0, 2)
	for _, name := range []*string{c.FirstName, c.LastName} {
		if name == nil {
			continue
		}
		if v := strings.TrimSpace(*name); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return c.Email
	}
	return strings.Join(parts, " ")
}

// WelcomeRequest builds the customer_registered send request. It returns
// nil when there is nobody to email.
func WelcomeRequest(c *Customer) *notification.Request {
	if c == nil || c.Email == "" {
		return nil
	}

	data := notification.CustomerRegisteredData{
		CustomerID: c.ID,
		Email:      c.Email,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		ToName:     RecipientName(c),
	}

	return &notification.Request{
		Channel:  notification.ChannelEmail,
		To:       c.Email,
		Template: notification.TemplateCustomerRegistered,
		Data:     data.Data(),
	}
}

// Run looks the customer up and sends the welcome email. A missing customer
// or a customer without an email completes without sending.
func (w *Workflow) Run(ctx context.Context, id string) error {
	start := time.Now()

	if strings.TrimSpace(id) == "" {
		return common.NewValidationError("customer id is required")
	}

	c, err := w.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching customer %s: %w", id, err)
	}

	req := WelcomeRequest(c)
	if req == nil {
		slog.Info("customer registered without deliverable email, skipping", "customer_id", id)
		return nil
	}

	results, err := w.sender.Send(ctx, req)
	if err != nil {
		return err
	}

	slog.Info("welcome email sent",
		"customer_id", id,
		"to", req.To,
		"provider_id", results[0].ID,
		"duration", time.Since(start),
	)
	return nil
}

// ProcessTask handles a customer.registered task. Invalid payloads and
// invalid-input send failures are marked SkipRetry.
func (w *Workflow) ProcessTask(ctx context.Context, t *asynq.Task) error {
	p, err := ParseRegisteredPayload(t.Payload())
	if err != nil {
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}

	if err := w.Run(ctx, p.ID); err != nil {
		slog.Error("customer registered workflow failed", "customer_id", p.ID, "error", err)

		var validation *common.ValidationError
		if errors.As(err, &validation) {
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}
	return nil
}

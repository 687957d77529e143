package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storemail/internal/common"
)

// Send outcomes reported to the SendObserver.
const (
	OutcomeSent    = "sent"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// TemplateOther is reported to the SendObserver for templates the renderer
// does not know, so caller-chosen names stay out of metric labels.
const TemplateOther = "other"

// Service dispatches send requests: it picks the provider for the channel,
// renders the template when the caller supplied no content, and sends.
type Service struct {
	providers     map[Channel]Provider
	renderer      TemplateRenderer
	defaultLocale string
	observer      SendObserver
}

// NewService creates a new notification service.
func NewService(renderer TemplateRenderer, defaultLocale string, providers ...Provider) *Service {
	pm := make(map[Channel]Provider, len(providers))
	for _, p := range providers {
		pm[p.Channel()] = p
	}
	return &Service{
		providers:     pm,
		renderer:      renderer,
		defaultLocale: defaultLocale,
	}
}

// WithObserver attaches a SendObserver (metrics) to the service.
func (s *Service) WithObserver(o SendObserver) *Service {
	s.observer = o
	return s
}

// Send delivers the requests in order. The first failure stops the batch;
// results for the requests sent before it are returned alongside the error.
func (s *Service) Send(ctx context.Context, reqs ...*Request) ([]*Result, error) {
	results := make([]*Result, 0, len(reqs))
	for _, req := range reqs {
		res, err := s.send(ctx, req)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func (s *Service) send(ctx context.Context, req *Request) (*Result, error) {
	start := time.Now()

	provider, ok := s.providers[req.Channel]
	if !ok {
		return nil, common.NewValidationError(fmt.Sprintf("unsupported channel: %s", req.Channel))
	}

	if req.Content == nil && s.renderer != nil && s.renderer.Has(req.Template) {
		content, err := s.renderer.Render(req.Template, s.locale(req), req.Data)
		if err != nil {
			s.observe(provider, req, OutcomeFailed, start)
			return nil, fmt.Errorf("rendering template %s: %w", req.Template, err)
		}
		rendered := *req
		rendered.Content = content
		req = &rendered
	}

	res, err := provider.Send(ctx, req)
	if err != nil {
		outcome := OutcomeFailed
		var validation *common.ValidationError
		if errors.As(err, &validation) {
			outcome = OutcomeInvalid
		}
		s.observe(provider, req, outcome, start)
		return nil, err
	}

	s.observe(provider, req, OutcomeSent, start)
	slog.Info("notification sent",
		"provider", provider.Name(),
		"template", req.Template,
		"to", req.To,
		"provider_id", res.ID,
		"duration", time.Since(start),
	)

	return res, nil
}

// Render renders a template without sending it.
func (s *Service) Render(name, locale string, data Data) (*Content, error) {
	if s.renderer == nil || !s.renderer.Has(name) {
		return nil, common.NewNotFoundError("template", name)
	}
	if locale == "" {
		locale = s.defaultLocale
	}
	return s.renderer.Render(name, locale, data)
}

func (s *Service) locale(req *Request) string {
	if req.Locale != "" {
		return req.Locale
	}
	return s.defaultLocale
}

func (s *Service) observe(p Provider, req *Request, outcome string, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.ObserveSend(p.Name(), s.templateLabel(req.Template), outcome, time.Since(start))
}

func (s *Service) templateLabel(name string) string {
	if s.renderer != nil && s.renderer.Has(name) {
		return name
	}
	return TemplateOther
}

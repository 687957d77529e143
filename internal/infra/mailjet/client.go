// Package mailjet is a minimal client for the Mailjet Send API v3.1.
package mailjet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"storemail/internal/common"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// DefaultBaseURL is the public Mailjet API endpoint.
	DefaultBaseURL = "https://api.mailjet.com"

	sendPath         = "/v3.1/send"
	providerName     = "mailjet"
	maxResponseBytes = 1 << 20
)

// Config configures a Client.
type Config struct {
	APIKey    string
	APISecret string
	BaseURL   string
	Timeout   time.Duration

	// MaxRetries is the number of extra attempts made on connection errors,
	// 429 and 5xx responses. Zero sends exactly once.
	MaxRetries   int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// Client posts messages to the Send API with basic auth.
type Client struct {
	apiKey    string
	apiSecret string
	endpoint  string
	http      *retryablehttp.Client
}

// NewClient creates a Client. Credentials are not checked here; the
// provider validates them at construction.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient = &http.Client{Timeout: timeout}
	rc.Logger = slog.Default()
	rc.RetryMax = max(cfg.MaxRetries, 0)
	if cfg.RetryWaitMin > 0 {
		rc.RetryWaitMin = cfg.RetryWaitMin
	}
	if cfg.RetryWaitMax > 0 {
		rc.RetryWaitMax = cfg.RetryWaitMax
	}
	// Hand the last response back instead of a generic "giving up" error so
	// the status and body reach the caller.
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return &Client{
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		endpoint:  baseURL + sendPath,
		http:      rc,
	}
}

// Send posts the request. A non-2xx status or a message reported with
// Status "error" comes back as a *common.ProviderError. A 2xx body that
// cannot be parsed yields an empty response rather than an error.
func (c *Client) Send(ctx context.Context, in *SendRequest) (*SendResponse, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling mailjet payload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, common.NewProviderError(providerName, resp.StatusCode, errorMessage(resp.StatusCode, respBody))
	}

	var out SendResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		slog.Warn("mailjet: unparseable send response", "status", resp.StatusCode, "error", err)
		return &SendResponse{}, nil
	}

	for _, m := range out.Messages {
		if strings.EqualFold(m.Status, StatusError) {
			return nil, common.NewProviderError(providerName, resp.StatusCode, m.Errors.String())
		}
	}

	return &out, nil
}

// errorMessage extracts the most useful description from an error body.
func errorMessage(status int, body []byte) string {
	var global APIError
	if err := json.Unmarshal(body, &global); err == nil && global.ErrorMessage != "" {
		return global.ErrorMessage
	}

	var out SendResponse
	if err := json.Unmarshal(body, &out); err == nil {
		for _, m := range out.Messages {
			if len(m.Errors) > 0 {
				return m.Errors.String()
			}
		}
	}

	return fmt.Sprintf("mailjet API error: status %d", status)
}

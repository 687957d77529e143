package mailjet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"storemail/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, retries int) *Client {
	return NewClient(Config{
		APIKey:       "key",
		APISecret:    "secret",
		BaseURL:      url + "/",
		Timeout:      2 * time.Second,
		MaxRetries:   retries,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 2 * time.Millisecond,
	})
}

func sampleRequest() *SendRequest {
	return &SendRequest{Messages: []Message{{
		From:     Recipient{Email: "shop@example.com", Name: "Shop"},
		To:       []Recipient{{Email: "sam@example.com"}},
		Subject:  "Hello",
		TextPart: "hi",
	}}}
}

func TestClient_Send(t *testing.T) {
	var got SendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v3.1/send", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Messages":[{"Status":"success","To":[{"Email":"sam@example.com","MessageUUID":"abc-123","MessageID":42}]}]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, 0).Send(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.MessageID())
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "Hello", got.Messages[0].Subject)
	assert.Empty(t, got.Messages[0].HTMLPart)
}

func TestClient_ProviderErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{
			name:    "global error",
			status:  http.StatusUnauthorized,
			body:    `{"ErrorIdentifier":"x","StatusCode":401,"ErrorMessage":"API key authentication/authorization failure."}`,
			wantMsg: "API key authentication/authorization failure.",
		},
		{
			name:   "message error",
			status: http.StatusBadRequest,
			body: `{"Messages":[{"Status":"error","Errors":[{"ErrorCode":"mj-0013","StatusCode":400,` +
				`"ErrorMessage":"\"bad\" is an invalid email address.","ErrorRelatedTo":["To[0].Email"]}]}]}`,
			wantMsg: `"bad" is an invalid email address. (To[0].Email)`,
		},
		{
			name:    "empty body",
			status:  http.StatusInternalServerError,
			wantMsg: "mailjet API error: status 500",
		},
		{
			name:    "error status in 2xx",
			status:  http.StatusOK,
			body:    `{"Messages":[{"Status":"error"}]}`,
			wantMsg: "message rejected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, 0).Send(context.Background(), sampleRequest())

			var pe *common.ProviderError
			require.True(t, errors.As(err, &pe), "got %v", err)
			assert.Equal(t, "mailjet", pe.Provider)
			assert.Equal(t, tt.status, pe.StatusCode)
			assert.Equal(t, tt.wantMsg, pe.Message)
		})
	}
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"Messages":[{"Status":"success","To":[{"MessageID":7}]}]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, 2).Send(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "7", resp.MessageID())
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 0).Send(context.Background(), sampleRequest())

	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_UnparseableSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, 0).Send(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Empty(t, resp.MessageID())
}

func TestClient_StringMessageIDKeepsUUID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Messages":[{"Status":"success","To":[{"MessageUUID":"abc-123","MessageID":"x-1"}]}]}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL, 0).Send(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.MessageID())
}

func TestSendResponse_MessageID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"uuid preferred", `{"Messages":[{"To":[{"MessageUUID":"abc-123","MessageID":42}]}]}`, "abc-123"},
		{"numeric fallback", `{"Messages":[{"To":[{"MessageID":42}]}]}`, "42"},
		{"empty uuid counts as absent", `{"Messages":[{"To":[{"MessageUUID":"","MessageID":1152921504606846976}]}]}`, "1152921504606846976"},
		{"no recipients", `{"Messages":[{"To":[]}]}`, ""},
		{"no messages", `{}`, ""},
		{"neither id", `{"Messages":[{"To":[{"Email":"a@example.com"}]}]}`, ""},
		{"uuid kept beside string id", `{"Messages":[{"To":[{"MessageUUID":"abc-123","MessageID":"x-1"}]}]}`, "abc-123"},
		{"string id fallback", `{"Messages":[{"To":[{"MessageID":"x-1"}]}]}`, "x-1"},
		{"exponent id as plain number", `{"Messages":[{"To":[{"MessageID":1.5e3}]}]}`, "1500"},
		{"null id", `{"Messages":[{"To":[{"MessageID":null}]}]}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp SendResponse
			require.NoError(t, json.Unmarshal([]byte(tt.body), &resp))
			assert.Equal(t, tt.want, resp.MessageID())
		})
	}

	var nilResp *SendResponse
	assert.Empty(t, nilResp.MessageID())
}

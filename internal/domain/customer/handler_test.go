package customer

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recordingPublisher struct {
	ids []string
	err error
}

func (p *recordingPublisher) PublishCustomerRegistered(_ context.Context, id string) error {
	p.ids = append(p.ids, id)
	return p.err
}

func serve(pub Publisher, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(pub).RegisterRoutes(r.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events/customer-registered", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandler_Registered(t *testing.T) {
	pub := &recordingPublisher{}

	w := serve(pub, `{"id":"cus_1"}`)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{"cus_1"}, pub.ids)
	assert.Contains(t, w.Body.String(), `"event":"customer.registered"`)
}

func TestHandler_RegisteredMissingID(t *testing.T) {
	pub := &recordingPublisher{}

	w := serve(pub, `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, pub.ids)
}

func TestHandler_RegisteredPublishFailure(t *testing.T) {
	w := serve(&recordingPublisher{err: errors.New("redis unavailable")}, `{"id":"cus_1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

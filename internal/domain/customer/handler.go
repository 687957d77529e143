package customer

import (
	"log/slog"
	"net/http"

	"storemail/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler accepts customer domain events over HTTP.
type Handler struct {
	publisher Publisher
}

// NewHandler creates a new customer event handler.
func NewHandler(publisher Publisher) *Handler {
	return &Handler{publisher: publisher}
}

// RegisteredEvent is the body of a customer.registered event.
type RegisteredEvent struct {
	ID string `json:"id" binding:"required"`
}

// Registered handles POST /api/v1/events/customer-registered
// The event is queued; the welcome email is sent by the worker.
func (h *Handler) Registered(c *gin.Context) {
	var ev RegisteredEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if err := h.publisher.PublishCustomerRegistered(c.Request.Context(), ev.ID); err != nil {
		slog.Error("failed to publish customer registered", "customer_id", ev.ID, "error", err)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusAccepted, gin.H{"id": ev.ID, "event": TaskTypeRegistered})
}

// RegisterRoutes registers customer event routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/events/customer-registered", h.Registered)
}

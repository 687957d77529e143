package notification

import (
	"log/slog"
	"net/http"

	"storemail/internal/common"

	"github.com/gin-gonic/gin"
)

// Handler handles HTTP requests for the notification domain.
type Handler struct {
	service *Service
}

// NewHandler creates a new notification handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RenderRequest is the payload of a template preview.
type RenderRequest struct {
	Locale string `json:"locale"`
	Data   Data   `json:"data"`
}

// Send handles POST /api/v1/send
// Delivers one notification synchronously and returns the provider message id.
func (h *Handler) Send(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	results, err := h.service.Send(c.Request.Context(), &req)
	if err != nil {
		slog.Error("send notification failed",
			"error", err,
			"channel", req.Channel,
			"template", req.Template,
			"to", req.To,
		)
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, results[0])
}

// RenderTemplate handles POST /api/v1/templates/:name/render
func (h *Handler) RenderTemplate(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Error(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	content, err := h.service.Render(c.Param("name"), req.Locale, req.Data)
	if err != nil {
		common.HandleError(c, err)
		return
	}

	common.Success(c, http.StatusOK, content)
}

// RegisterRoutes registers notification routes to the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/send", h.Send)
	rg.POST("/templates/:name/render", h.RenderTemplate)
}

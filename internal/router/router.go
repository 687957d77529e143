package router

import (
	"context"
	"net/http"
	"time"

	"storemail/internal/common"
	"storemail/internal/config"
	"storemail/internal/domain/customer"
	"storemail/internal/domain/notification"
	"storemail/internal/metrics"
	"storemail/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Probe is a readiness check reported by GET /health.
type Probe interface {
	Name() string
	Check(ctx context.Context) error
}

// Deps are the handlers and collaborators the router mounts.
type Deps struct {
	Notifications *notification.Handler
	Customers     *customer.Handler
	Metrics       *metrics.Recorder
	Probes        []Probe
}

// New creates and configures the Gin router with all middleware and routes.
func New(cfg *config.Config, deps Deps) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()

	// Global middleware stack (order matters)
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.CORS(cfg.CORS))

	rateLimiter := middleware.NewRateLimiter(
		cfg.RateLimit.RequestsPerSecond,
		cfg.RateLimit.Burst,
		time.Duration(cfg.RateLimit.IdleTTLSec)*time.Second,
	)

	// Public routes
	r.GET("/health", healthCheck(deps.Probes))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// Protected API routes (API key required)
	api := r.Group("/api/v1")
	api.Use(rateLimiter.Middleware(), middleware.Auth(cfg.Auth.APIKeys))
	{
		if deps.Notifications != nil {
			deps.Notifications.RegisterRoutes(api)
		}
		if deps.Customers != nil {
			deps.Customers.RegisterRoutes(api)
		}
	}

	return r
}

// healthCheck handles GET /health
func healthCheck(probes []Probe) gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := make(map[string]string, len(probes))
		status := http.StatusOK
		for _, p := range probes {
			if err := p.Check(c.Request.Context()); err != nil {
				checks[p.Name()] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			checks[p.Name()] = "ok"
		}

		body := gin.H{
			"status":  "ok",
			"service": "storemail",
			"checks":  checks,
		}
		if status != http.StatusOK {
			body["status"] = "degraded"
			c.JSON(status, common.APIResponse{Success: false, Data: body})
			return
		}
		common.Success(c, status, body)
	}
}

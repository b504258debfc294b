package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/maxviazov/exchange-settings-service/internal/service"
)

// PageDefaults bounds list endpoints when the client omits or inflates page_size.
type PageDefaults struct {
	DefaultSize int
	MaxSize     int
}

// Register mounts all public routes on the given engine.
// Accepts service layer dependencies for API endpoints.
func Register(r *gin.Engine, ready Pinger, settingsSvc service.ExchangeSettingService, pages PageDefaults) {
	h := NewHealthHandler(ready)

	// Health probes
	r.GET("/live", h.Liveness)
	r.GET("/ready", h.Readiness)

	// Docs endpoints (root-level)
	RegisterDocs(r)

	api := r.Group(APIV1Prefix)
	{
		health := api.Group("/health")
		{
			health.GET("/live", h.Liveness)
			health.GET("/ready", h.Readiness)
		}
		NewExchangeSettingHandler(settingsSvc, pages).Register(api)
	}
}

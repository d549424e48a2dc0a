package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kalabar794/landgenai/internal/keys"
)

const (
	isoMillis         = "2006-01-02T15:04:05.000Z07:00"
	healthPingTimeout = 2 * time.Second
)

// Pinger reports datastore liveness. storage.Store implements it.
type Pinger interface {
	Ping(ctx context.Context) error
	Mode() string
}

type serviceStatus struct {
	Configured bool   `json:"configured"`
	KeyMask    string `json:"keyMask"`
}

type databaseStatus struct {
	Type   string `json:"type"`
	Status string `json:"status"`
}

// HealthHandler serves GET /api/health.
type HealthHandler struct {
	status        keys.Status
	anthropicMask string
	pexelsMask    string
	db            Pinger
	env           Env
	now           func() time.Time
}

// NewHealthHandler masks the keys up front so they are never retained.
func NewHealthHandler(anthropicKey, pexelsKey string, db Pinger, env Env) *HealthHandler {
	return &HealthHandler{
		status:        keys.Validate(anthropicKey, pexelsKey),
		anthropicMask: keys.Mask(anthropicKey),
		pexelsMask:    keys.Mask(pexelsKey),
		db:            db,
		env:           env,
		now:           time.Now,
	}
}

// Health reports configuration readiness.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"timestamp":   h.now().UTC().Format(isoMillis),
		"environment": h.env.Name,
		"platform": gin.H{
			"vercel":     h.env.Serverless,
			"production": h.env.Production,
		},
		"services": gin.H{
			"anthropic": serviceStatus{Configured: h.status.HasValidLLMKey, KeyMask: h.anthropicMask},
			"pexels":    serviceStatus{Configured: h.status.HasValidPhotoKey, KeyMask: h.pexelsMask},
			"database":  h.database(c.Request.Context()),
		},
		"security": gin.H{
			"allServicesConfigured": h.status.IsFullyConfigured,
			"readyForProduction":    h.status.IsFullyConfigured && h.env.Production,
		},
	})
}

func (h *HealthHandler) database(ctx context.Context) databaseStatus {
	if h.db == nil {
		return databaseStatus{Type: "none", Status: "unavailable"}
	}

	ctx, cancel := context.WithTimeout(ctx, healthPingTimeout)
	defer cancel()

	status := "available"
	if err := h.db.Ping(ctx); err != nil {
		status = "unavailable"
	}
	return databaseStatus{Type: h.db.Mode(), Status: status}
}

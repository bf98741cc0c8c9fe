package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"nutrisense/pkg/ai"
)

type HealthCtrl struct {
	db  *gorm.DB
	llm ai.Client
}

func NewHealthCtrl(db *gorm.DB, llm ai.Client) *HealthCtrl {
	return &HealthCtrl{db: db, llm: llm}
}

// Health reports the readiness of each backing service. A missing AI key is
// reported but does not degrade the service; a dead database does.
func (h *HealthCtrl) Health(c echo.Context) error {
	dbStatus := h.pingDB(c.Request().Context())

	aiStatus := "not_configured"
	if h.llm != nil && h.llm.Configured() {
		aiStatus = "configured"
	}

	status, code := "healthy", http.StatusOK
	if dbStatus != "connected" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	return c.JSON(code, map[string]any{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"services": map[string]string{
			"database":   dbStatus,
			"ai_service": aiStatus,
		},
	})
}

func (h *HealthCtrl) pingDB(ctx context.Context) string {
	if h.db == nil {
		return "error: database not initialized"
	}
	ctx, cancel := context.WithTimeout(ctx, 800*time.Millisecond)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "connected"
}

type RootCtrl struct {
	name    string
	version string
}

func NewRootCtrl(name, version string) *RootCtrl { return &RootCtrl{name: name, version: version} }

// Info is the service landing response with the endpoint map.
func (r *RootCtrl) Info(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service":   r.name,
		"version":   r.version,
		"status":    "online",
		"timestamp": time.Now().Format(time.RFC3339),
		"endpoints": map[string]string{
			"analysis": "/api/analyze",
			"history":  "/api/history",
		},
	})
}

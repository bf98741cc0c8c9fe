package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"nutrisense/pkg/ai"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func doHealth(t *testing.T, ctrl *HealthCtrl) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, ctrl.Health(e.NewContext(req, rec)))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHealthAllServicesUp(t *testing.T) {
	ctrl := NewHealthCtrl(openDB(t), ai.NewMock())
	rec, body := doHealth(t, ctrl)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])

	services := body["services"].(map[string]any)
	assert.Equal(t, "connected", services["database"])
	assert.Equal(t, "configured", services["ai_service"])
}

func TestHealthReportsMissingAIKey(t *testing.T) {
	llm := ai.NewOpenAI("https://api.groq.com/openai", "", "llama-3.3-70b-versatile")
	ctrl := NewHealthCtrl(openDB(t), llm)
	rec, body := doHealth(t, ctrl)

	// a missing key is reported without degrading the service
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
	services := body["services"].(map[string]any)
	assert.Equal(t, "not_configured", services["ai_service"])
}

func TestHealthDegradedWhenDatabaseDown(t *testing.T) {
	db := openDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	ctrl := NewHealthCtrl(db, ai.NewMock())
	rec, body := doHealth(t, ctrl)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
	services := body["services"].(map[string]any)
	assert.Contains(t, services["database"], "error")
	assert.Equal(t, "configured", services["ai_service"])
}

func TestHealthNilDatabase(t *testing.T) {
	ctrl := NewHealthCtrl(nil, ai.NewMock())
	rec, body := doHealth(t, ctrl)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "degraded", body["status"])
}

func TestRootInfo(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, NewRootCtrl("NutriSense API", "1.0.0").Info(e.NewContext(req, rec)))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "NutriSense API", body["service"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "/api/analyze", body["endpoints"].(map[string]any)["analysis"])
}

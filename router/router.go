package router

import (
	"github.com/labstack/echo/v4"
)

func New(
	e *echo.Echo,
	analysisCtrl interface {
		Analyze(echo.Context) error
		HealthSummary(echo.Context) error
		Crops(echo.Context) error
		Fertilizer(echo.Context) error
		Irrigation(echo.Context) error
	},
	historyCtrl interface {
		List(echo.Context) error
		Count(echo.Context) error
		Get(echo.Context) error
		Delete(echo.Context) error
		Export(echo.Context) error
	},
	rootCtrl interface{ Info(echo.Context) error },
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.GET("/", rootCtrl.Info)
	e.GET("/health", healthCtrl.Health)

	api := e.Group("/api")

	api.POST("/analyze", analysisCtrl.Analyze)
	api.POST("/analyze/recommendations/health-summary", analysisCtrl.HealthSummary)
	api.POST("/analyze/recommendations/crops", analysisCtrl.Crops)
	api.POST("/analyze/recommendations/fertilizer", analysisCtrl.Fertilizer)
	api.POST("/analyze/recommendations/irrigation", analysisCtrl.Irrigation)

	api.GET("/history", historyCtrl.List)
	api.GET("/history/count", historyCtrl.Count)
	api.GET("/history/:id", historyCtrl.Get)
	api.DELETE("/history/:id", historyCtrl.Delete)
	api.POST("/history/export", historyCtrl.Export)

	return e
}

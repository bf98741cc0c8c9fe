package controller

import "github.com/labstack/echo/v4"

type AnalysisController interface {
	Analyze(c echo.Context) error
	HealthSummary(c echo.Context) error
	Crops(c echo.Context) error
	Fertilizer(c echo.Context) error
	Irrigation(c echo.Context) error
}

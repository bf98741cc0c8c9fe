package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"nutrisense/config"
	"nutrisense/database"
	"nutrisense/router"

	// Analysis
	analysisCtrlImp "nutrisense/pkg/analysis/controllerImp"
	analysisSvcImp "nutrisense/pkg/analysis/serviceImp"

	// History
	historyCtrlImp "nutrisense/pkg/history/controllerImp"
	historyRepoImp "nutrisense/pkg/history/repositoryImp"
	historySvcImp "nutrisense/pkg/history/serviceImp"

	// LLM
	"nutrisense/pkg/ai"

	// Health
	healthCtrlImp "nutrisense/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
	}))

	// 4) LLM client. The real client fails fast with a not-configured error
	// when no key is set; the mock is opt-in for local development.
	var llm ai.Client
	if cfg.MockAI {
		llm = ai.NewMock()
	} else {
		llm = ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel)
	}

	// 5) Services/Controllers
	analysisSvc := analysisSvcImp.New()
	histRepo := historyRepoImp.New(db)
	histSvc := historySvcImp.New(histRepo, analysisSvc)

	aCtrl := analysisCtrlImp.New(analysisSvc, histSvc, llm)
	hCtrl := historyCtrlImp.New(histSvc)
	rootCtrl := healthCtrlImp.NewRootCtrl(config.ProjectName, config.Version)
	healthCtrl := healthCtrlImp.NewHealthCtrl(db, llm)

	// 6) Router
	r := router.New(e, aCtrl, hCtrl, rootCtrl, healthCtrl)

	// 7) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package controllerImp

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"nutrisense/entities"
	"nutrisense/pkg/ai"
	"nutrisense/pkg/analysis/controller"
	analysis "nutrisense/pkg/analysis/service"
	history "nutrisense/pkg/history/service"
)

type AnalysisCtrl struct {
	svc     analysis.AnalysisService
	history history.HistoryService
	llm     ai.Client
}

func New(svc analysis.AnalysisService, h history.HistoryService, llm ai.Client) controller.AnalysisController {
	return &AnalysisCtrl{svc: svc, history: h, llm: llm}
}

type analyzeReq struct {
	SoilData      entities.SoilData `json:"soil_data"`
	Location      *string           `json:"location"`
	SaveToHistory *bool             `json:"save_to_history"`
}

type recommendReq struct {
	SoilData entities.SoilData `json:"soil_data"`
	Location *string           `json:"location"`
	Model    *string           `json:"model"`
}

func (h *AnalysisCtrl) Analyze(c echo.Context) error {
	var req analyzeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := req.SoilData.Validate(); err != nil {
		return validationJSON(c, err)
	}

	loc := strOrEmpty(req.Location)
	result := h.svc.Analyze(req.SoilData, loc)

	// Default is to save; a failed save must not fail the analysis.
	if req.SaveToHistory == nil || *req.SaveToHistory {
		if _, _, err := h.history.Save(req.SoilData, nil, req.Location); err != nil {
			log.Printf("WARN: save analysis record: %v", err)
		}
	}

	return c.JSON(http.StatusOK, result)
}

func (h *AnalysisCtrl) HealthSummary(c echo.Context) error {
	return h.recommend(c, ai.TaskSummary, true)
}

func (h *AnalysisCtrl) Crops(c echo.Context) error {
	return h.recommend(c, ai.TaskCrops, false)
}

func (h *AnalysisCtrl) Fertilizer(c echo.Context) error {
	return h.recommend(c, ai.TaskFertilizer, false)
}

func (h *AnalysisCtrl) Irrigation(c echo.Context) error {
	return h.recommend(c, ai.TaskIrrigation, false)
}

// recommend generates one advisory text. Persisting the summary afterwards is
// a boundary composition: the generate call itself never touches storage.
func (h *AnalysisCtrl) recommend(c echo.Context, task ai.RecommendationType, saveSummary bool) error {
	var req recommendReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if err := req.SoilData.Validate(); err != nil {
		return validationJSON(c, err)
	}

	content, err := h.llm.Recommend(
		c.Request().Context(),
		req.SoilData,
		task,
		strOrEmpty(req.Location),
		strOrEmpty(req.Model),
	)
	if err != nil {
		switch {
		case errors.Is(err, ai.ErrNotConfigured):
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "AI recommendations are not configured"})
		case errors.Is(err, ai.ErrUnavailable):
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "AI service temporarily unavailable, please try again later"})
		default:
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
	}

	if saveSummary {
		if _, _, err := h.history.Save(req.SoilData, &content, req.Location); err != nil {
			log.Printf("WARN: save summary record: %v", err)
		}
	}

	return c.JSON(http.StatusOK, entities.Recommendation{
		RecommendationType: string(task),
		Content:            content,
		ModelUsed:          h.llm.ModelUsed(strOrEmpty(req.Model)),
		Timestamp:          time.Now(),
	})
}

func validationJSON(c echo.Context, err error) error {
	var ve *entities.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Message, "field": ve.Field})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

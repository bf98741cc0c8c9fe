package controllerImp

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"nutrisense/pkg/history/controller"
	"nutrisense/pkg/history/repository"
	"nutrisense/pkg/history/service"
)

type HistoryCtrl struct{ svc service.HistoryService }

func New(svc service.HistoryService) controller.HistoryController { return &HistoryCtrl{svc} }

func (h *HistoryCtrl) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	records, err := h.svc.List(c.QueryParam("location"), limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, records)
}

func (h *HistoryCtrl) Count(c echo.Context) error {
	location := c.QueryParam("location")
	n, err := h.svc.Count(location)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	resp := map[string]any{"count": n, "location": nil}
	if location != "" {
		resp["location"] = location
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *HistoryCtrl) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid record id"})
	}
	rec, err := h.svc.Get(uint(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("record %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *HistoryCtrl) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid record id"})
	}
	if err := h.svc.Delete(uint(id)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("record %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":   true,
		"message":   fmt.Sprintf("Record %d deleted successfully", id),
		"record_id": id,
	})
}

func (h *HistoryCtrl) Export(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	location := c.QueryParam("location")

	var (
		out *service.Export
		err error
	)
	switch format := c.QueryParam("format"); format {
	case "", "csv":
		out, err = h.svc.ExportCSV(location, limit)
	case "xlsx":
		out, err = h.svc.ExportXLSX(location, limit)
	default:
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "format must be csv or xlsx"})
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no records found to export"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%s", out.Filename))
	return c.Blob(http.StatusOK, out.ContentType, out.Data)
}

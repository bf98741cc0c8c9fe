package serviceImp

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"nutrisense/entities"
	analysis "nutrisense/pkg/analysis/service"
	"nutrisense/pkg/history/repository"
	"nutrisense/pkg/history/service"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
	DefaultExport    = 100
	MaxExportLimit   = 1000
)

var exportHeader = []string{
	"ID", "Timestamp", "Location", "Health Score",
	"pH", "EC", "Moisture", "Nitrogen", "Phosphorus",
	"Potassium", "Microbial", "Temperature", "Summary",
}

type historySvc struct {
	repo     repository.HistoryRepository
	analysis analysis.AnalysisService
}

func New(repo repository.HistoryRepository, a analysis.AnalysisService) service.HistoryService {
	return &historySvc{repo: repo, analysis: a}
}

func (s *historySvc) Save(soil entities.SoilData, summary, location *string) (*service.Record, bool, error) {
	rec := &entities.SoilRecord{
		DataHash:    soil.DataHash(),
		SoilData:    soil.CanonicalJSON(),
		Timestamp:   time.Now(),
		Summary:     summary,
		Location:    location,
		HealthScore: s.analysis.HealthScore(soil),
	}
	saved, created, err := s.repo.Save(rec)
	if err != nil {
		return nil, false, err
	}
	view, err := toRecord(saved)
	if err != nil {
		return nil, false, err
	}
	return view, created, nil
}

func (s *historySvc) List(location string, limit, offset int) ([]service.Record, error) {
	limit = clampLimit(limit, DefaultListLimit, MaxListLimit)
	if offset < 0 {
		offset = 0
	}
	rows, err := s.repo.List(location, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]service.Record, 0, len(rows))
	for i := range rows {
		view, err := toRecord(&rows[i])
		if err != nil {
			// Rows with unreadable payloads are skipped, not fatal.
			continue
		}
		out = append(out, *view)
	}
	return out, nil
}

func (s *historySvc) Get(id uint) (*service.Record, error) {
	rec, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return toRecord(rec)
}

func (s *historySvc) Delete(id uint) error { return s.repo.DeleteByID(id) }

func (s *historySvc) Count(location string) (int64, error) { return s.repo.Count(location) }

func (s *historySvc) ExportCSV(location string, limit int) (*service.Export, error) {
	records, err := s.exportRecords(location, limit)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, rec := range records {
		if err := w.Write(exportRow(rec)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return &service.Export{
		Filename:    exportFilename(location, records[0].Timestamp, "csv"),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func (s *historySvc) ExportXLSX(location string, limit int) (*service.Export, error) {
	records, err := s.exportRecords(location, limit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for col, name := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return nil, err
		}
	}
	for i, rec := range records {
		for col, val := range exportRow(rec) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return &service.Export{
		Filename:    exportFilename(location, records[0].Timestamp, "xlsx"),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}

func (s *historySvc) exportRecords(location string, limit int) ([]service.Record, error) {
	limit = clampLimit(limit, DefaultExport, MaxExportLimit)
	records, err := s.List(location, limit, 0)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, repository.ErrNotFound
	}
	return records, nil
}

func exportRow(rec service.Record) []string {
	loc, summary := "", ""
	if rec.Location != nil {
		loc = *rec.Location
	}
	if rec.Summary != nil {
		summary = *rec.Summary
	}
	// repr floats and isoformat-style timestamps, the shape the previous
	// deployment's CSV exports used
	num := entities.ReprFloat
	return []string{
		strconv.FormatUint(uint64(rec.ID), 10),
		rec.Timestamp.Format("2006-01-02T15:04:05.999999"),
		loc,
		num(rec.HealthScore),
		num(rec.SoilData.PH),
		num(rec.SoilData.EC),
		num(rec.SoilData.Moisture),
		num(rec.SoilData.Nitrogen),
		num(rec.SoilData.Phosphorus),
		num(rec.SoilData.Potassium),
		num(rec.SoilData.Microbial),
		num(rec.SoilData.Temperature),
		summary,
	}
}

func exportFilename(location string, newest time.Time, ext string) string {
	loc := location
	if loc == "" {
		loc = "all"
	}
	return fmt.Sprintf("soil_history_%s_%s.%s", loc, newest.Format("20060102"), ext)
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func toRecord(rec *entities.SoilRecord) (*service.Record, error) {
	var soil entities.SoilData
	if err := json.Unmarshal([]byte(rec.SoilData), &soil); err != nil {
		return nil, fmt.Errorf("decode soil_data for record %d: %w", rec.ID, err)
	}
	return &service.Record{
		ID:          rec.ID,
		DataHash:    rec.DataHash,
		SoilData:    soil,
		Timestamp:   rec.Timestamp,
		Summary:     rec.Summary,
		Location:    rec.Location,
		HealthScore: rec.HealthScore,
	}, nil
}

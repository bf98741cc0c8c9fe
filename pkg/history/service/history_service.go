package service

import (
	"time"

	"nutrisense/entities"
)

// Record is a stored analysis with its measurement decoded back into fields.
type Record struct {
	ID          uint              `json:"id"`
	DataHash    string            `json:"data_hash"`
	SoilData    entities.SoilData `json:"soil_data"`
	Timestamp   time.Time         `json:"timestamp"`
	Summary     *string           `json:"summary"`
	Location    *string           `json:"location"`
	HealthScore float64           `json:"health_score"`
}

// Export carries a rendered history export ready to stream to the client.
type Export struct {
	Filename    string
	ContentType string
	Data        []byte
}

type HistoryService interface {
	// Save persists the measurement once per content hash. A duplicate save
	// returns the existing record with created=false, never an error.
	Save(s entities.SoilData, summary, location *string) (rec *Record, created bool, err error)
	List(location string, limit, offset int) ([]Record, error)
	Get(id uint) (*Record, error)
	Delete(id uint) error
	Count(location string) (int64, error)
	ExportCSV(location string, limit int) (*Export, error)
	ExportXLSX(location string, limit int) (*Export, error)
}

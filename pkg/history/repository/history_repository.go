package repository

import (
	"errors"

	"nutrisense/entities"
)

// ErrNotFound signals a point lookup or delete that matched no row.
var ErrNotFound = errors.New("record not found")

type HistoryRepository interface {
	// Save inserts the record unless a row with the same data_hash already
	// exists; on a duplicate it returns the surviving row with created=false.
	Save(rec *entities.SoilRecord) (saved *entities.SoilRecord, created bool, err error)
	List(location string, limit, offset int) ([]entities.SoilRecord, error)
	FindByID(id uint) (*entities.SoilRecord, error)
	DeleteByID(id uint) error
	Count(location string) (int64, error)
}

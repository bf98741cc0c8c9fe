package repositoryImp

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nutrisense/entities"
	"nutrisense/pkg/history/repository"
)

type historyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HistoryRepository { return &historyRepo{db} }

// Save relies on the unique data_hash index instead of a check-then-insert,
// so concurrent duplicate saves race safely: at most one row survives and
// neither caller sees an error.
func (r *historyRepo) Save(rec *entities.SoilRecord) (*entities.SoilRecord, bool, error) {
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "data_hash"}},
		DoNothing: true,
	}).Create(rec)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		var existing entities.SoilRecord
		if err := r.db.Where("data_hash = ?", rec.DataHash).First(&existing).Error; err != nil {
			return nil, false, err
		}
		return &existing, false, nil
	}
	return rec, true, nil
}

func (r *historyRepo) List(location string, limit, offset int) ([]entities.SoilRecord, error) {
	q := r.db.Model(&entities.SoilRecord{}).Order("timestamp DESC")
	if location != "" {
		q = q.Where("location LIKE ?", "%"+location+"%")
	}
	var out []entities.SoilRecord
	if err := q.Limit(limit).Offset(offset).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *historyRepo) FindByID(id uint) (*entities.SoilRecord, error) {
	var rec entities.SoilRecord
	if err := r.db.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func (r *historyRepo) DeleteByID(id uint) error {
	res := r.db.Delete(&entities.SoilRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *historyRepo) Count(location string) (int64, error) {
	q := r.db.Model(&entities.SoilRecord{})
	if location != "" {
		q = q.Where("location LIKE ?", "%"+location+"%")
	}
	var n int64
	return n, q.Count(&n).Error
}

// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"nutrisense/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	// Run the index repair BEFORE AutoMigrate so GORM sees the index it
	// expects on databases written by the previous deployment.
	if err := ensureDataHashIndex(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	if err := db.AutoMigrate(&entities.SoilRecord{}); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

// ensureDataHashIndex guarantees the unique index on soil_records.data_hash.
// The insert-or-ignore dedup in the history repository depends on it; a table
// carried over without the index would silently accept duplicates.
func ensureDataHashIndex(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='soil_records'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		// fresh DB, AutoMigrate creates everything
		return nil
	}

	type idxInfo struct {
		Seq     int
		Name    string
		Unique  int
		Origin  string
		Partial int
	}
	var idx []idxInfo
	if err := db.Raw(`PRAGMA index_list(soil_records)`).Scan(&idx).Error; err != nil {
		return fmt.Errorf("index_list: %w", err)
	}

	for _, i := range idx {
		if i.Unique != 1 {
			continue
		}
		var cols []struct {
			Seqno int
			Cid   int
			Name  string
		}
		if err := db.Raw(fmt.Sprintf(`PRAGMA index_info(%q)`, i.Name)).Scan(&cols).Error; err != nil {
			return fmt.Errorf("index_info %s: %w", i.Name, err)
		}
		if len(cols) == 1 && cols[0].Name == "data_hash" {
			// already enforced
			return nil
		}
	}

	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_soil_records_data_hash ON soil_records(data_hash)`).Error; err != nil {
		return fmt.Errorf("create data_hash index: %w", err)
	}
	return nil
}

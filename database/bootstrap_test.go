package database

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const legacySchema = `CREATE TABLE soil_records (
	id            integer primary key autoincrement,
	data_hash     text,
	soil_data     text,
	timestamp     datetime,
	summary       text,
	location      text,
	health_score  real
)`

func uniqueHashIndexCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Raw(
		`SELECT count(*) FROM sqlite_master WHERE type='index' AND tbl_name='soil_records' AND sql LIKE '%UNIQUE%data_hash%'`,
	).Scan(&n).Error)
	return n
}

func TestEnsureDataHashIndexRepairsLegacyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(legacySchema).Error)

	require.NoError(t, ensureDataHashIndex(db))
	assert.GreaterOrEqual(t, uniqueHashIndexCount(t, db), int64(1))

	// idempotent on a repaired table
	require.NoError(t, ensureDataHashIndex(db))
	assert.EqualValues(t, 1, uniqueHashIndexCount(t, db))
}

func TestEnsureDataHashIndexFreshDatabase(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// no table yet: nothing to repair, no error
	require.NoError(t, ensureDataHashIndex(db))
}

func TestOpenSQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	db := OpenSQLite(path)

	assert.True(t, db.Migrator().HasTable("soil_records"))
	assert.GreaterOrEqual(t, uniqueHashIndexCount(t, db), int64(1))
}

func TestOpenSQLiteAcceptsLegacyDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deployed.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Exec(legacySchema).Error)
	require.NoError(t, db.Exec(
		`INSERT INTO soil_records (data_hash, soil_data, timestamp, health_score) VALUES ('abc', '{}', '2026-01-01 00:00:00', 75)`,
	).Error)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	reopened := OpenSQLite(path)
	var n int64
	require.NoError(t, reopened.Table("soil_records").Count(&n).Error)
	assert.EqualValues(t, 1, n)
	assert.GreaterOrEqual(t, uniqueHashIndexCount(t, reopened), int64(1))
}

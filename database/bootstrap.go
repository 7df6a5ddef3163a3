package database

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"soilsync/entities"
)

// Open opens the sqlite database at path and brings the schema up to date.
func Open(path string) (*gorm.DB, error) {
	// immediate transactions take the write lock on BEGIN and so wait out busy_timeout;
	// deferred ones fail with SQLITE_BUSY on the read-to-write upgrade
	dsn := path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger: logger.NewSlogLogger(slog.Default().With("component", "gorm"), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// must run before AutoMigrate, which would fail creating the unique index over duplicates
	if err := dedupeSoilIDCache(db); err != nil {
		return nil, fmt.Errorf("migrate soil id cache: %w", err)
	}

	if err := db.AutoMigrate(
		&entities.Site{},
		&entities.Project{},
		&entities.ProjectMembership{},
		&entities.ProjectSoilSettings{},
		&entities.ProjectDepthInterval{},
		&entities.SoilData{},
		&entities.SoilDataDepthInterval{},
		&entities.DepthDependentSoilData{},
		&entities.SoilMetadata{},
		&entities.SoilDataHistory{},
		&entities.SoilIDCache{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	return db, nil
}

// dedupeSoilIDCache collapses duplicate coordinates in a soil_id_caches table
// created before the coordinate_index existed, keeping the newest row.
func dedupeSoilIDCache(db *gorm.DB) error {
	var tbl string
	if err := db.Raw(`SELECT name FROM sqlite_master WHERE type='table' AND name='soil_id_caches'`).Scan(&tbl).Error; err != nil {
		return fmt.Errorf("check table exist: %w", err)
	}
	if tbl == "" {
		return nil
	}

	type indexInfo struct {
		Seq    int
		Name   string
		Unique int
	}
	var idx []indexInfo
	if err := db.Raw(`PRAGMA index_list(soil_id_caches)`).Scan(&idx).Error; err != nil {
		return fmt.Errorf("index_list: %w", err)
	}
	for _, i := range idx {
		if strings.EqualFold(i.Name, "coordinate_index") {
			return nil
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`
DELETE FROM soil_id_caches
WHERE id NOT IN (SELECT MAX(id) FROM soil_id_caches GROUP BY latitude, longitude)`).Error; err != nil {
			return err
		}
		return tx.Exec(`CREATE UNIQUE INDEX coordinate_index ON soil_id_caches(latitude, longitude)`).Error
	})
}

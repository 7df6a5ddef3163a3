package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"soilsync/entities"
	"soilsync/pkg/soilid/repository"
)

type cacheRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.CacheRepository { return &cacheRepo{db: db} }

func (r *cacheRepo) WithTx(tx *gorm.DB) repository.CacheRepository { return &cacheRepo{db: tx} }

func (r *cacheRepo) Find(lat, lon float64) (*entities.SoilIDCache, error) {
	var row entities.SoilIDCache
	err := r.db.Where("latitude = ? AND longitude = ?", lat, lon).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find soil id cache (%v, %v): %w", lat, lon, err)
	}
	return &row, nil
}

func (r *cacheRepo) Upsert(row *entities.SoilIDCache) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "latitude"}, {Name: "longitude"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"failure_reason", "soil_list_json", "rank_data_csv", "map_unit_component_data_csv", "updated_at",
		}),
	}).Create(row).Error
	if err != nil {
		return fmt.Errorf("upsert soil id cache (%v, %v): %w", row.Latitude, row.Longitude, err)
	}
	return nil
}

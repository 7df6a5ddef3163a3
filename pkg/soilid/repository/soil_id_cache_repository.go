package repository

import (
	"errors"

	"gorm.io/gorm"

	"soilsync/entities"
)

var ErrNotFound = errors.New("soil id cache entry not found")

// CacheRepository stores engine results by coordinates the caller has already
// rounded.
type CacheRepository interface {
	WithTx(tx *gorm.DB) CacheRepository
	Find(lat, lon float64) (*entities.SoilIDCache, error)
	// Upsert inserts the row or overwrites the entry with the same coordinates.
	Upsert(row *entities.SoilIDCache) error
}

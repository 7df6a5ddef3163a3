package repository

import (
	"errors"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/depth"
)

var ErrNotFound = errors.New("soil data not found")

type SoilDataRepository interface {
	WithTx(tx *gorm.DB) SoilDataRepository
	// FindBySite loads the record with intervals and measurements ordered by depth.
	FindBySite(siteID string) (*entities.SoilData, error)
	GetOrCreate(siteID string) (*entities.SoilData, error)
	SaveScalars(sd *entities.SoilData) error

	ListIntervals(soilDataID uint) ([]depth.Interval, error)
	UpsertInterval(soilDataID uint, iv depth.Interval, apply func(*entities.SoilDataDepthInterval)) error
	DeleteInterval(soilDataID uint, iv depth.Interval) error
	ReplaceIntervals(soilDataID uint, ivs []depth.Interval) error

	UpsertDepthData(soilDataID uint, iv depth.Interval, apply func(*entities.DepthDependentSoilData)) error
	DeleteDepthData(soilDataID uint) error
}

package repository

import (
	"errors"

	"gorm.io/gorm"

	"soilsync/entities"
)

var ErrNotFound = errors.New("soil metadata not found")

type SoilMetadataRepository interface {
	WithTx(tx *gorm.DB) SoilMetadataRepository
	FindBySite(siteID string) (*entities.SoilMetadata, error)
	GetOrCreate(siteID string) (*entities.SoilMetadata, error)
	Save(m *entities.SoilMetadata) error
}

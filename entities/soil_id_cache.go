package entities

import "time"

// SoilIDCache keeps the engine's candidate list for one rounded coordinate.
// Exactly one of FailureReason and SoilListJSON is set.
type SoilIDCache struct {
	ID                      uint    `gorm:"primaryKey"`
	Latitude                float64 `gorm:"uniqueIndex:coordinate_index"`
	Longitude               float64 `gorm:"uniqueIndex:coordinate_index"`
	FailureReason           *string `gorm:"type:text"`
	SoilListJSON            *string `gorm:"type:text"`
	RankDataCSV             *string `gorm:"type:text"`
	MapUnitComponentDataCSV *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SoilIDCache) TableName() string { return "soil_id_caches" }

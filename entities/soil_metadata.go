package entities

import "time"

const (
	RatingSelected = "SELECTED"
	RatingRejected = "REJECTED"
	RatingUnsure   = "UNSURE"
)

// SoilMetadata stores a site's ratings of candidate soil matches, keyed by
// candidate id. SelectedSoilID mirrors the single SELECTED rating, if any.
type SoilMetadata struct {
	ID             uint              `gorm:"primaryKey" json:"-"`
	SiteID         string            `gorm:"size:36;uniqueIndex" json:"siteId"`
	UserRatings    map[string]string `gorm:"serializer:json;type:text" json:"userRatings"`
	SelectedSoilID *string           `json:"selectedSoilId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SoilMetadata) TableName() string { return "soil_metadata" }

package entities

import "time"

const (
	HistoryKindSoilData     = "soil_data"
	HistoryKindSoilMetadata = "soil_metadata"
)

// SoilDataHistory records one push entry. A row with UpdateSucceeded false and
// a nil UpdateFailureReason is still pending.
type SoilDataHistory struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	Kind                string  `gorm:"size:20;index" json:"kind"`
	SiteID              *string `gorm:"size:36;index" json:"siteId"`
	ChangedBy           string  `gorm:"index" json:"changedBy"`
	Changes             string  `gorm:"type:text" json:"changes"`
	UpdateSucceeded     bool    `json:"updateSucceeded"`
	UpdateFailureReason *string `json:"updateFailureReason"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SoilDataHistory) TableName() string { return "soil_data_history" }

func (h *SoilDataHistory) Pending() bool {
	return !h.UpdateSucceeded && h.UpdateFailureReason == nil
}

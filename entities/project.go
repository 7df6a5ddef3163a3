package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleManager     = "MANAGER"
	RoleContributor = "CONTRIBUTOR"
	RoleViewer      = "VIEWER"
)

type Project struct {
	ID   string `gorm:"primaryKey;size:36" json:"id"`
	Name string `json:"name"`

	Memberships []ProjectMembership `gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE" json:"memberships,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p *Project) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type ProjectMembership struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	ProjectID string `gorm:"size:36;uniqueIndex:idx_membership_project_user" json:"projectId"`
	UserID    string `gorm:"uniqueIndex:idx_membership_project_user" json:"userId"`
	Role      string `gorm:"size:20" json:"role"` // MANAGER|CONTRIBUTOR|VIEWER

	CreatedAt time.Time `json:"createdAt"`
}

// ProjectSoilSettings holds the data requirements a project imposes on its sites.
type ProjectSoilSettings struct {
	ProjectID           string `gorm:"primaryKey;size:36" json:"projectId"`
	DepthIntervalPreset string `gorm:"size:20" json:"depthIntervalPreset"`
	MeasurementUnits    string `gorm:"size:10" json:"measurementUnits"` // METRIC|IMPERIAL

	SlopeRequired                   bool `json:"slopeRequired"`
	SoilTextureRequired             bool `json:"soilTextureRequired"`
	SoilColorRequired               bool `json:"soilColorRequired"`
	VerticalCrackingRequired        bool `json:"verticalCrackingRequired"`
	CarbonatesRequired              bool `json:"carbonatesRequired"`
	PhRequired                      bool `json:"phRequired"`
	SoilOrganicCarbonMatterRequired bool `json:"soilOrganicCarbonMatterRequired"`
	ElectricalConductivityRequired  bool `json:"electricalConductivityRequired"`
	SodiumAdsorptionRatioRequired   bool `json:"sodiumAdsorptionRatioRequired"`
	SoilStructureRequired           bool `json:"soilStructureRequired"`
	LandUseLandCoverRequired        bool `json:"landUseLandCoverRequired"`
	SoilLimitationsRequired         bool `json:"soilLimitationsRequired"`
	PhotosRequired                  bool `json:"photosRequired"`
	NotesRequired                   bool `json:"notesRequired"`
	FloodingSelectRequired          bool `json:"floodingSelectRequired"`

	DepthIntervals []ProjectDepthInterval `gorm:"foreignKey:ProjectID;references:ProjectID;constraint:OnDelete:CASCADE" json:"depthIntervals"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ProjectSoilSettings) TableName() string { return "project_soil_settings" }

type ProjectDepthInterval struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	ProjectID          string `gorm:"size:36;uniqueIndex:idx_pdi_owner_depth" json:"-"`
	Label              string `gorm:"size:10" json:"label"`
	DepthIntervalStart int    `gorm:"uniqueIndex:idx_pdi_owner_depth;check:chk_pdi_coherence,depth_interval_start < depth_interval_end" json:"start"`
	DepthIntervalEnd   int    `gorm:"uniqueIndex:idx_pdi_owner_depth" json:"end"`
}

func (ProjectDepthInterval) TableName() string { return "project_depth_intervals" }

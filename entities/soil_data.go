package entities

import "time"

// SoilData is the per-site soil observation record, created on first write.
type SoilData struct {
	ID     uint   `gorm:"primaryKey" json:"-"`
	SiteID string `gorm:"size:36;uniqueIndex" json:"siteId"`

	DownSlope              *string `json:"downSlope"`
	CrossSlope             *string `json:"crossSlope"`
	BedrockDepth           *int    `json:"bedrock"`
	SlopeLandscapePosition *string `json:"slopeLandscapePosition"`
	SlopeAspect            *int    `json:"slopeAspect"`
	SlopeSteepnessSelect   *string `json:"slopeSteepnessSelect"`
	SlopeSteepnessPercent  *int    `json:"slopeSteepnessPercent"`
	SlopeSteepnessDegree   *int    `json:"slopeSteepnessDegree"`
	SurfaceCracksSelect    *string `json:"surfaceCracksSelect"`
	SurfaceSaltSelect      *string `json:"surfaceSaltSelect"`
	FloodingSelect         *string `json:"floodingSelect"`
	LimeRequirementsSelect *string `json:"limeRequirementsSelect"`
	SurfaceStoninessSelect *string `json:"surfaceStoninessSelect"`
	WaterTableDepthSelect  *string `json:"waterTableDepthSelect"`
	SoilDepthSelect        *string `json:"soilDepthSelect"`
	LandCoverSelect        *string `json:"landCoverSelect"`
	GrazingSelect          *string `json:"grazingSelect"`
	DepthIntervalPreset    string  `gorm:"size:20" json:"depthIntervalPreset"`

	DepthIntervals     []SoilDataDepthInterval  `gorm:"foreignKey:SoilDataID;constraint:OnDelete:CASCADE" json:"depthIntervals"`
	DepthDependentData []DepthDependentSoilData `gorm:"foreignKey:SoilDataID;constraint:OnDelete:CASCADE" json:"depthDependentData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (SoilData) TableName() string { return "soil_data" }

type SoilDataDepthInterval struct {
	ID                 uint   `gorm:"primaryKey" json:"-"`
	SoilDataID         uint   `gorm:"uniqueIndex:idx_sddi_owner_depth" json:"-"`
	DepthIntervalStart int    `gorm:"uniqueIndex:idx_sddi_owner_depth;check:chk_sddi_coherence,depth_interval_start < depth_interval_end" json:"start"`
	DepthIntervalEnd   int    `gorm:"uniqueIndex:idx_sddi_owner_depth" json:"end"`
	Label              string `gorm:"size:10" json:"label"`

	SoilTextureEnabled             bool `json:"soilTextureEnabled"`
	SoilColorEnabled               bool `json:"soilColorEnabled"`
	CarbonatesEnabled              bool `json:"carbonatesEnabled"`
	PhEnabled                      bool `json:"phEnabled"`
	SoilOrganicCarbonMatterEnabled bool `json:"soilOrganicCarbonMatterEnabled"`
	ElectricalConductivityEnabled  bool `json:"electricalConductivityEnabled"`
	SodiumAdsorptionRatioEnabled   bool `json:"sodiumAdsorptionRatioEnabled"`
	SoilStructureEnabled           bool `json:"soilStructureEnabled"`
}

func (SoilDataDepthInterval) TableName() string { return "soil_data_depth_intervals" }

// DepthDependentSoilData is one measurement row, keyed by (start, end) under its
// SoilData rather than by interval row.
type DepthDependentSoilData struct {
	ID                 uint `gorm:"primaryKey" json:"-"`
	SoilDataID         uint `gorm:"uniqueIndex:idx_ddsd_owner_depth" json:"-"`
	DepthIntervalStart int  `gorm:"uniqueIndex:idx_ddsd_owner_depth;check:chk_ddsd_coherence,depth_interval_start < depth_interval_end" json:"start"`
	DepthIntervalEnd   int  `gorm:"uniqueIndex:idx_ddsd_owner_depth" json:"end"`

	Texture                     *string  `json:"texture"`
	ClayPercent                 *int     `json:"clayPercent"`
	RockFragmentVolume          *string  `json:"rockFragmentVolume"`
	ColorHue                    *float64 `json:"colorHue"`
	ColorValue                  *float64 `json:"colorValue"`
	ColorChroma                 *float64 `json:"colorChroma"`
	ColorPhotoUsed              *bool    `json:"colorPhotoUsed"`
	ColorPhotoSoilCondition     *string  `json:"colorPhotoSoilCondition"`
	ColorPhotoLightingCondition *string  `json:"colorPhotoLightingCondition"`
	Conductivity                *float64 `json:"conductivity"`
	ConductivityTest            *string  `json:"conductivityTest"`
	ConductivityUnit            *string  `json:"conductivityUnit"`
	Structure                   *string  `json:"structure"`
	Ph                          *float64 `json:"ph"`
	PhTestingSolution           *string  `json:"phTestingSolution"`
	PhTestingMethod             *string  `json:"phTestingMethod"`
	SoilOrganicCarbon           *float64 `json:"soilOrganicCarbon"`
	SoilOrganicMatter           *float64 `json:"soilOrganicMatter"`
	SoilOrganicCarbonTesting    *string  `json:"soilOrganicCarbonTesting"`
	SoilOrganicMatterTesting    *string  `json:"soilOrganicMatterTesting"`
	SodiumAbsorptionRatio       *float64 `json:"sodiumAbsorptionRatio"`
	Carbonates                  *string  `json:"carbonates"`
}

func (DepthDependentSoilData) TableName() string { return "depth_dependent_soil_data" }

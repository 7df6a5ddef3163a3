package service

import (
	"context"

	"soilsync/entities"
	"soilsync/pkg/depth"
)

type FailureReason string

const (
	DoesNotExist FailureReason = "DOES_NOT_EXIST"
	NotAllowed   FailureReason = "NOT_ALLOWED"
	InvalidData  FailureReason = "INVALID_DATA"
)

// PushEntry is one site's batched soil data changes.
type PushEntry struct {
	SiteID   string        `json:"siteId"`
	SoilData SoilDataInput `json:"soilData"`
}

// PushResult carries either the site's soil data after the push or a reason.
type PushResult struct {
	SiteID   string             `json:"siteId"`
	SoilData *entities.SoilData `json:"soilData,omitempty"`
	Reason   FailureReason      `json:"reason,omitempty"`
}

func (r PushResult) Succeeded() bool { return r.Reason == "" }

type Service interface {
	PushBatch(ctx context.Context, actor string, entries []PushEntry) ([]PushResult, error)
	// Get returns nil when the site has no soil data yet.
	Get(ctx context.Context, siteID string) (*entities.SoilData, error)
}

// SoilDataInput is the patch for one site. Nil fields are left unchanged.
type SoilDataInput struct {
	DownSlope              *string `json:"downSlope,omitempty" validate:"omitempty,oneof=CONCAVE CONVEX LINEAR"`
	CrossSlope             *string `json:"crossSlope,omitempty" validate:"omitempty,oneof=CONCAVE CONVEX LINEAR"`
	BedrockDepth           *int    `json:"bedrock,omitempty" validate:"omitempty,gte=0"`
	SlopeLandscapePosition *string `json:"slopeLandscapePosition,omitempty" validate:"omitempty,oneof=HILLS_MOUNTAINS HILLS_MOUNTAINS_SUMMIT HILLS_MOUNTAINS_SHOULDER HILLS_MOUNTAINS_BACKSLOPE ALLUVIAL_FAN FLOODPLAIN_BASIN TERRACE TERRACE_TREAD TERRACE_RISER FLAT_LOW_ROLLING_PLAIN PLAYA DUNES"`
	SlopeAspect            *int    `json:"slopeAspect,omitempty" validate:"omitempty,gte=0,lte=359"`
	SlopeSteepnessSelect   *string `json:"slopeSteepnessSelect,omitempty" validate:"omitempty,oneof=FLAT GENTLE MODERATE ROLLING HILLY STEEP MODERATELY_STEEP VERY_STEEP STEEPEST"`
	SlopeSteepnessPercent  *int    `json:"slopeSteepnessPercent,omitempty" validate:"omitempty,gte=0"`
	SlopeSteepnessDegree   *int    `json:"slopeSteepnessDegree,omitempty" validate:"omitempty,gte=0,lte=90"`
	SurfaceCracksSelect    *string `json:"surfaceCracksSelect,omitempty" validate:"omitempty,oneof=NO_CRACKING SURFACE_CRACKING_ONLY DEEP_VERTICAL_CRACKING"`
	SurfaceSaltSelect      *string `json:"surfaceSaltSelect,omitempty" validate:"omitempty,oneof=NO_SALT SMALL_TEMPORARY_PATCHES MOST_OF_SURFACE"`
	FloodingSelect         *string `json:"floodingSelect,omitempty" validate:"omitempty,oneof=NONE RARE OCCASIONAL FREQUENT VERY_FREQUENT"`
	LimeRequirementsSelect *string `json:"limeRequirementsSelect,omitempty" validate:"omitempty,oneof=LITTLE_OR_NO SOME HIGH VERY_DIFFICULT"`
	SurfaceStoninessSelect *string `json:"surfaceStoninessSelect,omitempty" validate:"omitempty,oneof=LESS_THAN_01 BETWEEN_01_AND_3 BETWEEN_3_AND_15 BETWEEN_15_AND_50 BETWEEN_50_AND_90 GREATER_THAN_90"`
	WaterTableDepthSelect  *string `json:"waterTableDepthSelect,omitempty" validate:"omitempty,oneof=NOT_FOUND LESS_THAN_30_CM BETWEEN_30_AND_45_CM BETWEEN_45_AND_75_CM BETWEEN_75_AND_120_CM GREATER_THAN_120_CM"`
	SoilDepthSelect        *string `json:"soilDepthSelect,omitempty" validate:"omitempty,oneof=NOT_FOUND TWENTY_CM_OR_LESS GREATER_THAN_20_LESS_THAN_50_CM BETWEEN_50_AND_70_CM GREATER_THAN_70_LESS_THAN_100_CM HUNDRED_CM_OR_GREATER"`
	LandCoverSelect        *string `json:"landCoverSelect,omitempty" validate:"omitempty,oneof=FOREST SHRUBLAND GRASSLAND SAVANNA GARDEN CROPLAND VILLAGE_OR_CITY BARREN WATER"`
	GrazingSelect          *string `json:"grazingSelect,omitempty" validate:"omitempty,max=50"`
	DepthIntervalPreset    *string `json:"depthIntervalPreset,omitempty" validate:"omitempty,oneof=LANDPKS NRCS CUSTOM NONE"`

	DepthDependentData    []DepthDependentInput `json:"depthDependentData" validate:"dive"`
	DepthIntervals        []DepthIntervalInput  `json:"depthIntervals" validate:"dive"`
	DeletedDepthIntervals []depth.Interval      `json:"deletedDepthIntervals"`
}

func (in *SoilDataInput) ApplyTo(sd *entities.SoilData) {
	set(&sd.DownSlope, in.DownSlope)
	set(&sd.CrossSlope, in.CrossSlope)
	set(&sd.BedrockDepth, in.BedrockDepth)
	set(&sd.SlopeLandscapePosition, in.SlopeLandscapePosition)
	set(&sd.SlopeAspect, in.SlopeAspect)
	set(&sd.SlopeSteepnessSelect, in.SlopeSteepnessSelect)
	set(&sd.SlopeSteepnessPercent, in.SlopeSteepnessPercent)
	set(&sd.SlopeSteepnessDegree, in.SlopeSteepnessDegree)
	set(&sd.SurfaceCracksSelect, in.SurfaceCracksSelect)
	set(&sd.SurfaceSaltSelect, in.SurfaceSaltSelect)
	set(&sd.FloodingSelect, in.FloodingSelect)
	set(&sd.LimeRequirementsSelect, in.LimeRequirementsSelect)
	set(&sd.SurfaceStoninessSelect, in.SurfaceStoninessSelect)
	set(&sd.WaterTableDepthSelect, in.WaterTableDepthSelect)
	set(&sd.SoilDepthSelect, in.SoilDepthSelect)
	set(&sd.LandCoverSelect, in.LandCoverSelect)
	set(&sd.GrazingSelect, in.GrazingSelect)
	if in.DepthIntervalPreset != nil {
		sd.DepthIntervalPreset = *in.DepthIntervalPreset
	}
}

type DepthIntervalInput struct {
	depth.Interval
	Label                          *string `json:"label,omitempty" validate:"omitempty,max=10"`
	SoilTextureEnabled             *bool   `json:"soilTextureEnabled,omitempty"`
	SoilColorEnabled               *bool   `json:"soilColorEnabled,omitempty"`
	CarbonatesEnabled              *bool   `json:"carbonatesEnabled,omitempty"`
	PhEnabled                      *bool   `json:"phEnabled,omitempty"`
	SoilOrganicCarbonMatterEnabled *bool   `json:"soilOrganicCarbonMatterEnabled,omitempty"`
	ElectricalConductivityEnabled  *bool   `json:"electricalConductivityEnabled,omitempty"`
	SodiumAdsorptionRatioEnabled   *bool   `json:"sodiumAdsorptionRatioEnabled,omitempty"`
	SoilStructureEnabled           *bool   `json:"soilStructureEnabled,omitempty"`
}

func (in *DepthIntervalInput) ApplyTo(row *entities.SoilDataDepthInterval) {
	if in.Label != nil {
		row.Label = *in.Label
	}
	setValue(&row.SoilTextureEnabled, in.SoilTextureEnabled)
	setValue(&row.SoilColorEnabled, in.SoilColorEnabled)
	setValue(&row.CarbonatesEnabled, in.CarbonatesEnabled)
	setValue(&row.PhEnabled, in.PhEnabled)
	setValue(&row.SoilOrganicCarbonMatterEnabled, in.SoilOrganicCarbonMatterEnabled)
	setValue(&row.ElectricalConductivityEnabled, in.ElectricalConductivityEnabled)
	setValue(&row.SodiumAdsorptionRatioEnabled, in.SodiumAdsorptionRatioEnabled)
	setValue(&row.SoilStructureEnabled, in.SoilStructureEnabled)
}

type DepthDependentInput struct {
	depth.Interval
	Texture                     *string  `json:"texture,omitempty" validate:"omitempty,oneof=SAND LOAMY_SAND SANDY_LOAM SILT_LOAM SILT LOAM SANDY_CLAY_LOAM SILTY_CLAY_LOAM CLAY_LOAM SANDY_CLAY SILTY_CLAY CLAY"`
	ClayPercent                 *int     `json:"clayPercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	RockFragmentVolume          *string  `json:"rockFragmentVolume,omitempty" validate:"omitempty,oneof=VOLUME_0_1 VOLUME_1_15 VOLUME_15_35 VOLUME_35_60 VOLUME_60"`
	ColorHue                    *float64 `json:"colorHue,omitempty" validate:"omitempty,gte=0,lte=100"`
	ColorValue                  *float64 `json:"colorValue,omitempty" validate:"omitempty,gte=0,lte=10"`
	ColorChroma                 *float64 `json:"colorChroma,omitempty" validate:"omitempty,gte=0"`
	ColorPhotoUsed              *bool    `json:"colorPhotoUsed,omitempty"`
	ColorPhotoSoilCondition     *string  `json:"colorPhotoSoilCondition,omitempty" validate:"omitempty,oneof=MOIST DRY"`
	ColorPhotoLightingCondition *string  `json:"colorPhotoLightingCondition,omitempty" validate:"omitempty,oneof=EVEN UNEVEN"`
	Conductivity                *float64 `json:"conductivity,omitempty" validate:"omitempty,gte=0"`
	ConductivityTest            *string  `json:"conductivityTest,omitempty" validate:"omitempty,oneof=SATURATED_PASTE SOIL_WATER_1_1 SOIL_WATER_1_2 SOIL_CONTACT_PROBE OTHER"`
	ConductivityUnit            *string  `json:"conductivityUnit,omitempty" validate:"omitempty,oneof=MILLISIEMENS_CENTIMETER MILLIMHOS_CENTIMETER MICROSIEMENS_METER MILLISIEMENS_METER DECISIEMENS_METER OTHER"`
	Structure                   *string  `json:"structure,omitempty" validate:"omitempty,oneof=GRANULAR SUBANGULAR_BLOCKY ANGULAR_BLOCKY LENTICULAR PLAY WEDGE PRISMATIC COLUMNAR SINGLE_GRAIN MASSIVE"`
	Ph                          *float64 `json:"ph,omitempty" validate:"omitempty,gte=0,lte=14"`
	PhTestingSolution           *string  `json:"phTestingSolution,omitempty" validate:"omitempty,oneof=SOIL_WATER_1_1 SOIL_WATER_1_2 SOIL_WATER_1_2_5 SOIL_WATER_1_5 SOIL_CACL2_1_1 SOIL_CACL2_1_2 SOIL_CACL2_1_5 SOIL_KCL_1_1 SOIL_KCL_1_2_5 SOIL_KCL_1_5 SATURATED_PASTE_EXTRACT OTHER"`
	PhTestingMethod             *string  `json:"phTestingMethod,omitempty" validate:"omitempty,oneof=INDICATOR_STRIP INDICATOR_SOLUTION METER OTHER"`
	SoilOrganicCarbon           *float64 `json:"soilOrganicCarbon,omitempty" validate:"omitempty,gte=0,lte=100"`
	SoilOrganicMatter           *float64 `json:"soilOrganicMatter,omitempty" validate:"omitempty,gte=0,lte=100"`
	SoilOrganicCarbonTesting    *string  `json:"soilOrganicCarbonTesting,omitempty" validate:"omitempty,oneof=DRY_COMBUSTION WET_OXIDATION LOSS_ON_IGNITION REFLECTANCE_SPECTROSCOPY FIELD_REFLECTOMETER OTHER"`
	SoilOrganicMatterTesting    *string  `json:"soilOrganicMatterTesting,omitempty" validate:"omitempty,oneof=DRY_COMBUSTION WET_OXIDATION LOSS_ON_IGNITION REFLECTANCE_SPECTROSCOPY FIELD_REFLECTOMETER OTHER"`
	SodiumAbsorptionRatio       *float64 `json:"sodiumAbsorptionRatio,omitempty" validate:"omitempty,gte=0"`
	Carbonates                  *string  `json:"carbonates,omitempty" validate:"omitempty,oneof=NONEFFERVESCENT VERY_SLIGHTLY_EFFERVESCENT SLIGHTLY_EFFERVESCENT STRONGLY_EFFERVESCENT VIOLENTLY_EFFERVESCENT"`
}

func (in *DepthDependentInput) ApplyTo(row *entities.DepthDependentSoilData) {
	set(&row.Texture, in.Texture)
	set(&row.ClayPercent, in.ClayPercent)
	set(&row.RockFragmentVolume, in.RockFragmentVolume)
	set(&row.ColorHue, in.ColorHue)
	set(&row.ColorValue, in.ColorValue)
	set(&row.ColorChroma, in.ColorChroma)
	set(&row.ColorPhotoUsed, in.ColorPhotoUsed)
	set(&row.ColorPhotoSoilCondition, in.ColorPhotoSoilCondition)
	set(&row.ColorPhotoLightingCondition, in.ColorPhotoLightingCondition)
	set(&row.Conductivity, in.Conductivity)
	set(&row.ConductivityTest, in.ConductivityTest)
	set(&row.ConductivityUnit, in.ConductivityUnit)
	set(&row.Structure, in.Structure)
	set(&row.Ph, in.Ph)
	set(&row.PhTestingSolution, in.PhTestingSolution)
	set(&row.PhTestingMethod, in.PhTestingMethod)
	set(&row.SoilOrganicCarbon, in.SoilOrganicCarbon)
	set(&row.SoilOrganicMatter, in.SoilOrganicMatter)
	set(&row.SoilOrganicCarbonTesting, in.SoilOrganicCarbonTesting)
	set(&row.SoilOrganicMatterTesting, in.SoilOrganicMatterTesting)
	set(&row.SodiumAbsorptionRatio, in.SodiumAbsorptionRatio)
	set(&row.Carbonates, in.Carbonates)
}

// set copies v into *dst when present, so the stored pointer never aliases the input.
func set[T any](dst **T, v *T) {
	if v == nil {
		return
	}
	c := *v
	*dst = &c
}

func setValue[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

package service

import (
	"context"
	"errors"

	"soilsync/entities"
	"soilsync/pkg/depth"
)

var (
	ErrNotAllowed = errors.New("not allowed")
	ErrNotCustom  = errors.New("project depth intervals can only be edited under the CUSTOM preset")
)

// SettingsPatch updates only the fields it sets.
type SettingsPatch struct {
	DepthIntervalPreset *string `json:"depthIntervalPreset" validate:"omitempty,oneof=LANDPKS NRCS CUSTOM NONE"`
	MeasurementUnits    *string `json:"measurementUnits" validate:"omitempty,oneof=METRIC IMPERIAL"`

	SlopeRequired                   *bool `json:"slopeRequired"`
	SoilTextureRequired             *bool `json:"soilTextureRequired"`
	SoilColorRequired               *bool `json:"soilColorRequired"`
	VerticalCrackingRequired        *bool `json:"verticalCrackingRequired"`
	CarbonatesRequired              *bool `json:"carbonatesRequired"`
	PhRequired                      *bool `json:"phRequired"`
	SoilOrganicCarbonMatterRequired *bool `json:"soilOrganicCarbonMatterRequired"`
	ElectricalConductivityRequired  *bool `json:"electricalConductivityRequired"`
	SodiumAdsorptionRatioRequired   *bool `json:"sodiumAdsorptionRatioRequired"`
	SoilStructureRequired           *bool `json:"soilStructureRequired"`
	LandUseLandCoverRequired        *bool `json:"landUseLandCoverRequired"`
	SoilLimitationsRequired         *bool `json:"soilLimitationsRequired"`
	PhotosRequired                  *bool `json:"photosRequired"`
	NotesRequired                   *bool `json:"notesRequired"`
	FloodingSelectRequired          *bool `json:"floodingSelectRequired"`
}

func (p SettingsPatch) ApplyTo(s *entities.ProjectSoilSettings) {
	if p.MeasurementUnits != nil {
		s.MeasurementUnits = *p.MeasurementUnits
	}
	for dst, v := range map[*bool]*bool{
		&s.SlopeRequired:                   p.SlopeRequired,
		&s.SoilTextureRequired:             p.SoilTextureRequired,
		&s.SoilColorRequired:               p.SoilColorRequired,
		&s.VerticalCrackingRequired:        p.VerticalCrackingRequired,
		&s.CarbonatesRequired:              p.CarbonatesRequired,
		&s.PhRequired:                      p.PhRequired,
		&s.SoilOrganicCarbonMatterRequired: p.SoilOrganicCarbonMatterRequired,
		&s.ElectricalConductivityRequired:  p.ElectricalConductivityRequired,
		&s.SodiumAdsorptionRatioRequired:   p.SodiumAdsorptionRatioRequired,
		&s.SoilStructureRequired:           p.SoilStructureRequired,
		&s.LandUseLandCoverRequired:        p.LandUseLandCoverRequired,
		&s.SoilLimitationsRequired:         p.SoilLimitationsRequired,
		&s.PhotosRequired:                  p.PhotosRequired,
		&s.NotesRequired:                   p.NotesRequired,
		&s.FloodingSelectRequired:          p.FloodingSelectRequired,
	} {
		if v != nil {
			*dst = *v
		}
	}
}

type IntervalInput struct {
	depth.Interval
	Label string `json:"label" validate:"max=10"`
}

type Service interface {
	Create(ctx context.Context, actor, name string) (*entities.Project, error)
	AddMember(ctx context.Context, actor, projectID, userID, role string) (*entities.ProjectMembership, error)
	// Settings returns the project's soil settings, creating them with the
	// LANDPKS defaults on first access.
	Settings(ctx context.Context, projectID string) (*entities.ProjectSoilSettings, error)
	UpdateSettings(ctx context.Context, actor, projectID string, patch SettingsPatch) (*entities.ProjectSoilSettings, error)
	UpdateDepthInterval(ctx context.Context, actor, projectID string, in IntervalInput) (*entities.ProjectSoilSettings, error)
	DeleteDepthInterval(ctx context.Context, actor, projectID string, iv depth.Interval) (*entities.ProjectSoilSettings, error)
}

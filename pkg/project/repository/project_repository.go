package repository

import (
	"errors"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/depth"
)

var (
	ErrNotFound         = errors.New("project not found")
	ErrIntervalNotFound = errors.New("project depth interval not found")
)

type ProjectRepository interface {
	WithTx(tx *gorm.DB) ProjectRepository
	// Create stores the project and makes creator its MANAGER.
	Create(p *entities.Project, creator string) error
	FindByID(id string) (*entities.Project, error)
	AddMember(projectID, userID, role string) (*entities.ProjectMembership, error)

	FindSettings(projectID string) (*entities.ProjectSoilSettings, error)
	CreateSettings(s *entities.ProjectSoilSettings) error
	SaveSettings(s *entities.ProjectSoilSettings) error

	ListIntervals(projectID string) ([]depth.Interval, error)
	ReplaceIntervals(projectID string, ivs []depth.Interval) error
	UpsertInterval(projectID string, iv depth.Interval, label string) error
	DeleteInterval(projectID string, iv depth.Interval) error
}

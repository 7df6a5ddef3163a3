package repository

import (
	"errors"

	"gorm.io/gorm"

	"soilsync/entities"
)

var ErrNotFound = errors.New("site not found")

type SiteRepository interface {
	WithTx(tx *gorm.DB) SiteRepository
	Create(s *entities.Site) error
	FindByID(id string) (*entities.Site, error)
	ListByProject(projectID string) ([]entities.Site, error)
	Exists(id string) (bool, error)
}

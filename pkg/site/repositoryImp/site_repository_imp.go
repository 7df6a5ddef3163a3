package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/site/repository"
)

type siteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SiteRepository { return &siteRepo{db} }

func (r *siteRepo) WithTx(tx *gorm.DB) repository.SiteRepository { return &siteRepo{tx} }

func (r *siteRepo) Create(s *entities.Site) error { return r.db.Create(s).Error }

func (r *siteRepo) FindByID(id string) (*entities.Site, error) {
	var s entities.Site
	err := r.db.Where("id = ?", id).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find site %s: %w", id, err)
	}
	return &s, nil
}

func (r *siteRepo) ListByProject(projectID string) ([]entities.Site, error) {
	var list []entities.Site
	return list, r.db.Where("project_id = ?", projectID).Order("created_at asc, id asc").Find(&list).Error
}

func (r *siteRepo) Exists(id string) (bool, error) {
	var n int64
	if err := r.db.Model(&entities.Site{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

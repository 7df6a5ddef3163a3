package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/soilmetadata/repository"
)

type metadataRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilMetadataRepository { return &metadataRepo{db: db} }

func (r *metadataRepo) WithTx(tx *gorm.DB) repository.SoilMetadataRepository { return &metadataRepo{db: tx} }

func (r *metadataRepo) FindBySite(siteID string) (*entities.SoilMetadata, error) {
	var m entities.SoilMetadata
	err := r.db.Where("site_id = ?", siteID).Take(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find soil metadata for site %s: %w", siteID, err)
	}
	if m.UserRatings == nil {
		m.UserRatings = map[string]string{}
	}
	return &m, nil
}

func (r *metadataRepo) GetOrCreate(siteID string) (*entities.SoilMetadata, error) {
	m, err := r.FindBySite(siteID)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	m = &entities.SoilMetadata{SiteID: siteID, UserRatings: map[string]string{}}
	if err := r.db.Create(m).Error; err != nil {
		return nil, fmt.Errorf("create soil metadata for site %s: %w", siteID, err)
	}
	return m, nil
}

func (r *metadataRepo) Save(m *entities.SoilMetadata) error { return r.db.Save(m).Error }

package repository

import (
	"time"

	"gorm.io/gorm"

	"soilsync/entities"
)

// PendingEntry is one push entry about to be attempted.
type PendingEntry struct {
	SiteID  string
	Changes string
}

type HistoryRepository interface {
	WithTx(tx *gorm.DB) HistoryRepository
	// CreatePending records every entry of a batch as pending, all or nothing.
	CreatePending(kind, actor string, entries []PendingEntry) ([]entities.SoilDataHistory, error)
	MarkSucceeded(id uint) error
	MarkFailed(id uint, reason string) error
	FindByID(id uint) (*entities.SoilDataHistory, error)
	ListBySite(siteID string) ([]entities.SoilDataHistory, error)
	// ListPending returns rows still pending that were created before cutoff.
	ListPending(cutoff time.Time) ([]entities.SoilDataHistory, error)
}

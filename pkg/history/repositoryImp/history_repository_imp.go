package repositoryImp

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/history/repository"
)

type historyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.HistoryRepository { return &historyRepo{db: db} }

func (r *historyRepo) WithTx(tx *gorm.DB) repository.HistoryRepository { return &historyRepo{db: tx} }

func (r *historyRepo) CreatePending(kind, actor string, entries []repository.PendingEntry) ([]entities.SoilDataHistory, error) {
	rows := make([]entities.SoilDataHistory, 0, len(entries))
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, e := range entries {
			row := entities.SoilDataHistory{Kind: kind, ChangedBy: actor, Changes: e.Changes}

			var n int64
			if err := tx.Model(&entities.Site{}).Where("id = ?", e.SiteID).Count(&n).Error; err != nil {
				return fmt.Errorf("lookup site %s: %w", e.SiteID, err)
			}
			if n > 0 {
				siteID := e.SiteID
				row.SiteID = &siteID
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create history: %w", err)
			}
			rows = append(rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *historyRepo) MarkSucceeded(id uint) error {
	return r.db.Model(&entities.SoilDataHistory{}).Where("id = ?", id).
		Updates(map[string]any{"update_succeeded": true, "update_failure_reason": nil}).Error
}

func (r *historyRepo) MarkFailed(id uint, reason string) error {
	return r.db.Model(&entities.SoilDataHistory{}).Where("id = ?", id).
		Updates(map[string]any{"update_succeeded": false, "update_failure_reason": reason}).Error
}

func (r *historyRepo) FindByID(id uint) (*entities.SoilDataHistory, error) {
	var h entities.SoilDataHistory
	if err := r.db.Where("id = ?", id).Take(&h).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *historyRepo) ListBySite(siteID string) ([]entities.SoilDataHistory, error) {
	var list []entities.SoilDataHistory
	return list, r.db.Where("site_id = ?", siteID).Order("id asc").Find(&list).Error
}

func (r *historyRepo) ListPending(cutoff time.Time) ([]entities.SoilDataHistory, error) {
	var list []entities.SoilDataHistory
	return list, r.db.
		Where("update_succeeded = ? AND update_failure_reason IS NULL AND created_at < ?", false, cutoff).
		Order("id asc").Find(&list).Error
}

package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"soilsync/entities"
	historyRepo "soilsync/pkg/history/repository"
	"soilsync/pkg/metrics"
	"soilsync/pkg/permission"
	siteRepo "soilsync/pkg/site/repository"
	soilDataSvc "soilsync/pkg/soildata/service"
	"soilsync/pkg/soilmetadata/repository"
	svc "soilsync/pkg/soilmetadata/service"
	"soilsync/pkg/validation"
)

type entryFailure struct{ reason soilDataSvc.FailureReason }

func (e *entryFailure) Error() string { return string(e.reason) }

func classify(err error) (soilDataSvc.FailureReason, bool) {
	var f *entryFailure
	if errors.As(err, &f) {
		return f.reason, true
	}
	if validation.IsInvalid(err) {
		return soilDataSvc.InvalidData, true
	}
	return "", false
}

// CheckSelection fails when more than one rating in the list is SELECTED.
func CheckSelection(ratings []svc.UserRating) error {
	selected := 0
	for _, r := range ratings {
		if r.Rating == entities.RatingSelected {
			selected++
		}
	}
	if selected > 1 {
		return validation.Rule(fmt.Sprintf("at most one rating may be %s, got %d", entities.RatingSelected, selected))
	}
	return nil
}

type service struct {
	db      *gorm.DB
	sites   siteRepo.SiteRepository
	repo    repository.SoilMetadataRepository
	history historyRepo.HistoryRepository
	perms   permission.Checker
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(
	db *gorm.DB,
	sites siteRepo.SiteRepository,
	repo repository.SoilMetadataRepository,
	history historyRepo.HistoryRepository,
	perms permission.Checker,
	m *metrics.Metrics,
	log *slog.Logger,
) svc.Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{db: db, sites: sites, repo: repo, history: history, perms: perms, metrics: m, log: log}
}

func (s *service) Get(ctx context.Context, siteID string) (*entities.SoilMetadata, error) {
	m, err := s.repo.WithTx(s.db.WithContext(ctx)).FindBySite(siteID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return m, err
}

func (s *service) PushBatch(ctx context.Context, actor string, entries []svc.PushEntry) ([]svc.PushResult, error) {
	pending := make([]historyRepo.PendingEntry, len(entries))
	for i, e := range entries {
		b, err := json.Marshal(e.UserRatings)
		if err != nil {
			return nil, fmt.Errorf("snapshot soil metadata for site %s: %w", e.SiteID, err)
		}
		pending[i] = historyRepo.PendingEntry{SiteID: e.SiteID, Changes: string(b)}
	}
	hist, err := s.history.WithTx(s.db.WithContext(ctx)).CreatePending(entities.HistoryKindSoilMetadata, actor, pending)
	if err != nil {
		return nil, fmt.Errorf("record soil metadata push: %w", err)
	}

	results := make([]svc.PushResult, 0, len(entries))
	for i, e := range entries {
		r, err := s.pushEntry(ctx, actor, e, hist[i].ID)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *service) pushEntry(ctx context.Context, actor string, e svc.PushEntry, historyID uint) (svc.PushResult, error) {
	var saved *entities.SoilMetadata
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m, err := s.apply(tx, actor, e)
		if err != nil {
			return err
		}
		if err := s.history.WithTx(tx).MarkSucceeded(historyID); err != nil {
			return fmt.Errorf("mark history %d: %w", historyID, err)
		}
		saved = m
		return nil
	})
	if err == nil {
		s.metrics.PushEntry(entities.HistoryKindSoilMetadata, "succeeded")
		return svc.PushResult{SiteID: e.SiteID, SoilMetadata: saved}, nil
	}

	reason, ok := classify(err)
	if !ok {
		return svc.PushResult{}, fmt.Errorf("push soil metadata for site %s: %w", e.SiteID, err)
	}
	if err := s.history.WithTx(s.db.WithContext(ctx)).MarkFailed(historyID, string(reason)); err != nil {
		return svc.PushResult{}, fmt.Errorf("mark history %d failed: %w", historyID, err)
	}
	s.log.Info("soil metadata push entry rejected", "site_id", e.SiteID, "reason", reason, "err", err)
	s.metrics.PushEntry(entities.HistoryKindSoilMetadata, string(reason))
	return svc.PushResult{SiteID: e.SiteID, Reason: reason}, nil
}

func (s *service) apply(tx *gorm.DB, actor string, e svc.PushEntry) (*entities.SoilMetadata, error) {
	site, err := s.sites.WithTx(tx).FindByID(e.SiteID)
	if errors.Is(err, siteRepo.ErrNotFound) {
		return nil, &entryFailure{reason: soilDataSvc.DoesNotExist}
	}
	if err != nil {
		return nil, err
	}
	ok, err := s.perms.WithTx(tx).Check(actor, permission.EnterData, permission.Context{Site: site})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &entryFailure{reason: soilDataSvc.NotAllowed}
	}

	if err := validation.Struct(e); err != nil {
		return nil, err
	}
	if err := CheckSelection(e.UserRatings); err != nil {
		return nil, err
	}

	repo := s.repo.WithTx(tx)
	m, err := repo.GetOrCreate(site.ID)
	if err != nil {
		return nil, err
	}
	ratings := make(map[string]string, len(e.UserRatings))
	var selected *string
	for _, r := range e.UserRatings {
		ratings[r.SoilMatchID] = r.Rating
	}
	for id, rating := range ratings {
		if rating == entities.RatingSelected {
			id := id
			selected = &id
		}
	}
	m.UserRatings = ratings
	m.SelectedSoilID = selected
	if err := repo.Save(m); err != nil {
		return nil, fmt.Errorf("save soil metadata: %w", err)
	}
	return m, nil
}

package serviceImp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/depth"
	historyRepo "soilsync/pkg/history/repository"
	"soilsync/pkg/metrics"
	"soilsync/pkg/permission"
	siteRepo "soilsync/pkg/site/repository"
	"soilsync/pkg/soildata/repository"
	svc "soilsync/pkg/soildata/service"
	"soilsync/pkg/validation"
)

// entryFailure aborts an entry's transaction with a reason reported to the caller.
type entryFailure struct{ reason svc.FailureReason }

func (e *entryFailure) Error() string { return string(e.reason) }

func fail(r svc.FailureReason) error { return &entryFailure{reason: r} }

// Classify maps an entry error to the reason reported for it. ok is false for
// errors that are not the entry's fault.
func Classify(err error) (reason svc.FailureReason, ok bool) {
	var f *entryFailure
	if errors.As(err, &f) {
		return f.reason, true
	}
	if validation.IsInvalid(err) {
		return svc.InvalidData, true
	}
	return "", false
}

type service struct {
	db      *gorm.DB
	sites   siteRepo.SiteRepository
	repo    repository.SoilDataRepository
	history historyRepo.HistoryRepository
	perms   permission.Checker
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(
	db *gorm.DB,
	sites siteRepo.SiteRepository,
	repo repository.SoilDataRepository,
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

func (s *service) Get(ctx context.Context, siteID string) (*entities.SoilData, error) {
	sd, err := s.repo.WithTx(s.db.WithContext(ctx)).FindBySite(siteID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return sd, err
}

func (s *service) PushBatch(ctx context.Context, actor string, entries []svc.PushEntry) ([]svc.PushResult, error) {
	pending := make([]historyRepo.PendingEntry, len(entries))
	for i, e := range entries {
		b, err := json.Marshal(e.SoilData)
		if err != nil {
			return nil, fmt.Errorf("snapshot soil data for site %s: %w", e.SiteID, err)
		}
		pending[i] = historyRepo.PendingEntry{SiteID: e.SiteID, Changes: string(b)}
	}
	hist, err := s.history.WithTx(s.db.WithContext(ctx)).CreatePending(entities.HistoryKindSoilData, actor, pending)
	if err != nil {
		return nil, fmt.Errorf("record soil data push: %w", err)
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
	var saved *entities.SoilData
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sd, err := s.apply(tx, actor, e)
		if err != nil {
			return err
		}
		if err := s.history.WithTx(tx).MarkSucceeded(historyID); err != nil {
			return fmt.Errorf("mark history %d: %w", historyID, err)
		}
		saved = sd
		return nil
	})
	if err == nil {
		s.metrics.PushEntry(entities.HistoryKindSoilData, "succeeded")
		return svc.PushResult{SiteID: e.SiteID, SoilData: saved}, nil
	}

	reason, ok := Classify(err)
	if !ok {
		return svc.PushResult{}, fmt.Errorf("push soil data for site %s: %w", e.SiteID, err)
	}
	// the entry's unit has rolled back; the failure is recorded in a unit of its own
	if err := s.history.WithTx(s.db.WithContext(ctx)).MarkFailed(historyID, string(reason)); err != nil {
		return svc.PushResult{}, fmt.Errorf("mark history %d failed: %w", historyID, err)
	}
	s.log.Info("soil data push entry rejected", "site_id", e.SiteID, "reason", reason, "err", err)
	s.metrics.PushEntry(entities.HistoryKindSoilData, string(reason))
	return svc.PushResult{SiteID: e.SiteID, Reason: reason}, nil
}

func (s *service) apply(tx *gorm.DB, actor string, e svc.PushEntry) (*entities.SoilData, error) {
	site, err := s.sites.WithTx(tx).FindByID(e.SiteID)
	if errors.Is(err, siteRepo.ErrNotFound) {
		return nil, fail(svc.DoesNotExist)
	}
	if err != nil {
		return nil, err
	}

	// a single push may touch scalars and interval structure alike, so both are required
	perms := s.perms.WithTx(tx)
	for _, action := range []permission.Action{permission.EnterData, permission.UpdateDepthInterval} {
		ok, err := perms.Check(actor, action, permission.Context{Site: site})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fail(svc.NotAllowed)
		}
	}

	in := e.SoilData
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	repo := s.repo.WithTx(tx)
	sd, err := repo.GetOrCreate(site.ID)
	if err != nil {
		return nil, err
	}

	if in.DepthIntervalPreset != nil && *in.DepthIntervalPreset != sd.DepthIntervalPreset {
		if err := applyPreset(repo, sd, depth.Preset(*in.DepthIntervalPreset)); err != nil {
			return nil, err
		}
	}
	if err := reconcileIntervals(repo, sd, in); err != nil {
		return nil, err
	}
	for i := range in.DepthDependentData {
		dd := &in.DepthDependentData[i]
		if err := depth.CheckBounds(dd.Interval); err != nil {
			return nil, err
		}
		if err := repo.UpsertDepthData(sd.ID, dd.Interval, dd.ApplyTo); err != nil {
			return nil, fmt.Errorf("save depth dependent data %s: %w", dd.Interval, err)
		}
	}
	for _, iv := range in.DeletedDepthIntervals {
		if err := repo.DeleteInterval(sd.ID, iv); err != nil {
			return nil, fmt.Errorf("delete depth interval %s: %w", iv, err)
		}
	}

	in.ApplyTo(sd)
	if err := repo.SaveScalars(sd); err != nil {
		return nil, fmt.Errorf("save soil data: %w", err)
	}
	return repo.FindBySite(site.ID)
}

// applyPreset drops every measurement and interval of sd and installs the
// preset's defaults. The caller's transaction makes it atomic with the rest of
// the entry.
func applyPreset(repo repository.SoilDataRepository, sd *entities.SoilData, p depth.Preset) error {
	if !p.Valid() {
		return validation.Rule(fmt.Sprintf("unknown depth interval preset %q", p))
	}
	if err := repo.DeleteDepthData(sd.ID); err != nil {
		return fmt.Errorf("clear depth dependent data: %w", err)
	}
	if err := repo.ReplaceIntervals(sd.ID, depth.Defaults(p)); err != nil {
		return fmt.Errorf("install %s intervals: %w", p, err)
	}
	sd.DepthIntervalPreset = string(p)
	return nil
}

// reconcileIntervals upserts the incoming intervals by (start, end). Overlap is
// checked against the stored set minus the intervals this entry deletes.
func reconcileIntervals(repo repository.SoilDataRepository, sd *entities.SoilData, in svc.SoilDataInput) error {
	existing, err := repo.ListIntervals(sd.ID)
	if err != nil {
		return fmt.Errorf("list depth intervals: %w", err)
	}
	preset := depth.Preset(sd.DepthIntervalPreset)

	if !preset.Editable() {
		for _, del := range in.DeletedDepthIntervals {
			if len(depth.Without(existing, del)) != len(existing) {
				return fmt.Errorf("delete %s under %s: %w", del, preset, depth.ErrPresetLocked)
			}
		}
	}

	current := depth.Without(existing, in.DeletedDepthIntervals...)
	for i := range in.DepthIntervals {
		iv := &in.DepthIntervals[i]
		if !preset.Editable() && !preset.Contains(iv.Interval) {
			return fmt.Errorf("add %s under %s: %w", iv.Interval, preset, depth.ErrPresetLocked)
		}
		others := depth.Without(current, iv.Interval)
		if err := depth.Validate(others, iv.Interval); err != nil {
			return err
		}
		if err := repo.UpsertInterval(sd.ID, iv.Interval, iv.ApplyTo); err != nil {
			return fmt.Errorf("save depth interval %s: %w", iv.Interval, err)
		}
		current = append(others, iv.Interval)
	}
	return nil
}

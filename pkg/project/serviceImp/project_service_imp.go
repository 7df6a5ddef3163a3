package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"soilsync/entities"
	"soilsync/pkg/depth"
	"soilsync/pkg/permission"
	"soilsync/pkg/project/repository"
	svc "soilsync/pkg/project/service"
	siteRepo "soilsync/pkg/site/repository"
	soilDataRepo "soilsync/pkg/soildata/repository"
	"soilsync/pkg/validation"
)

type service struct {
	db       *gorm.DB
	repo     repository.ProjectRepository
	sites    siteRepo.SiteRepository
	soilData soilDataRepo.SoilDataRepository
	perms    permission.Checker
	log      *slog.Logger
}

func New(
	db *gorm.DB,
	repo repository.ProjectRepository,
	sites siteRepo.SiteRepository,
	soilData soilDataRepo.SoilDataRepository,
	perms permission.Checker,
	log *slog.Logger,
) svc.Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{db: db, repo: repo, sites: sites, soilData: soilData, perms: perms, log: log}
}

func (s *service) Create(ctx context.Context, actor, name string) (*entities.Project, error) {
	if actor == "" {
		return nil, svc.ErrNotAllowed
	}
	p := &entities.Project{Name: name}
	if err := s.repo.WithTx(s.db.WithContext(ctx)).Create(p, actor); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *service) AddMember(ctx context.Context, actor, projectID, userID, role string) (*entities.ProjectMembership, error) {
	switch role {
	case entities.RoleManager, entities.RoleContributor, entities.RoleViewer:
	default:
		return nil, validation.Rule(fmt.Sprintf("unknown role %q", role))
	}
	var m *entities.ProjectMembership
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.authorize(tx, actor, permission.ManageMembers, projectID); err != nil {
			return err
		}
		var err error
		m, err = s.repo.WithTx(tx).AddMember(projectID, userID, role)
		return err
	})
	return m, err
}

func (s *service) Settings(ctx context.Context, projectID string) (*entities.ProjectSoilSettings, error) {
	var out *entities.ProjectSoilSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = s.settings(tx, projectID)
		return err
	})
	return out, err
}

func (s *service) UpdateSettings(ctx context.Context, actor, projectID string, patch svc.SettingsPatch) (*entities.ProjectSoilSettings, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}
	var out *entities.ProjectSoilSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.authorize(tx, actor, permission.UpdateRequirements, projectID); err != nil {
			return err
		}
		settings, err := s.settings(tx, projectID)
		if err != nil {
			return err
		}
		if patch.DepthIntervalPreset != nil && *patch.DepthIntervalPreset != settings.DepthIntervalPreset {
			if err := s.applyPreset(tx, settings, depth.Preset(*patch.DepthIntervalPreset)); err != nil {
				return err
			}
		}
		patch.ApplyTo(settings)
		if err := s.repo.WithTx(tx).SaveSettings(settings); err != nil {
			return fmt.Errorf("save soil settings: %w", err)
		}
		out, err = s.repo.WithTx(tx).FindSettings(projectID)
		return err
	})
	return out, err
}

func (s *service) UpdateDepthInterval(ctx context.Context, actor, projectID string, in svc.IntervalInput) (*entities.ProjectSoilSettings, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.editIntervals(ctx, actor, projectID, func(repo repository.ProjectRepository) error {
		existing, err := repo.ListIntervals(projectID)
		if err != nil {
			return err
		}
		if err := depth.Validate(depth.Without(existing, in.Interval), in.Interval); err != nil {
			return err
		}
		return repo.UpsertInterval(projectID, in.Interval, in.Label)
	})
}

func (s *service) DeleteDepthInterval(ctx context.Context, actor, projectID string, iv depth.Interval) (*entities.ProjectSoilSettings, error) {
	return s.editIntervals(ctx, actor, projectID, func(repo repository.ProjectRepository) error {
		return repo.DeleteInterval(projectID, iv)
	})
}

func (s *service) editIntervals(ctx context.Context, actor, projectID string, edit func(repository.ProjectRepository) error) (*entities.ProjectSoilSettings, error) {
	var out *entities.ProjectSoilSettings
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.authorize(tx, actor, permission.ChangeRequiredDepthInterval, projectID); err != nil {
			return err
		}
		settings, err := s.settings(tx, projectID)
		if err != nil {
			return err
		}
		if !depth.Preset(settings.DepthIntervalPreset).Editable() {
			return svc.ErrNotCustom
		}
		repo := s.repo.WithTx(tx)
		if err := edit(repo); err != nil {
			return err
		}
		out, err = repo.FindSettings(projectID)
		return err
	})
	return out, err
}

func (s *service) authorize(tx *gorm.DB, actor string, action permission.Action, projectID string) error {
	if _, err := s.repo.WithTx(tx).FindByID(projectID); err != nil {
		return err
	}
	ok, err := s.perms.WithTx(tx).Check(actor, action, permission.Context{ProjectID: projectID})
	if err != nil {
		return err
	}
	if !ok {
		return svc.ErrNotAllowed
	}
	return nil
}

func (s *service) settings(tx *gorm.DB, projectID string) (*entities.ProjectSoilSettings, error) {
	repo := s.repo.WithTx(tx)
	settings, err := repo.FindSettings(projectID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := repo.FindByID(projectID); err != nil {
		return nil, err
	}
	settings = &entities.ProjectSoilSettings{
		ProjectID:           projectID,
		DepthIntervalPreset: string(depth.PresetLandPKS),
		MeasurementUnits:    "METRIC",
	}
	if err := repo.CreateSettings(settings); err != nil {
		return nil, fmt.Errorf("create soil settings for project %s: %w", projectID, err)
	}
	if err := repo.ReplaceIntervals(projectID, depth.Defaults(depth.PresetLandPKS)); err != nil {
		return nil, fmt.Errorf("install default intervals: %w", err)
	}
	return repo.FindSettings(projectID)
}

// applyPreset swaps the project's intervals for the preset's defaults and
// clears the depth data of every site in the project.
func (s *service) applyPreset(tx *gorm.DB, settings *entities.ProjectSoilSettings, preset depth.Preset) error {
	if !preset.Valid() {
		return validation.Rule(fmt.Sprintf("unknown depth interval preset %q", preset))
	}
	if err := s.repo.WithTx(tx).ReplaceIntervals(settings.ProjectID, depth.Defaults(preset)); err != nil {
		return fmt.Errorf("replace project intervals: %w", err)
	}
	sites, err := s.sites.WithTx(tx).ListByProject(settings.ProjectID)
	if err != nil {
		return err
	}
	soilData := s.soilData.WithTx(tx)
	cleared := 0
	for _, site := range sites {
		sd, err := soilData.FindBySite(site.ID)
		if errors.Is(err, soilDataRepo.ErrNotFound) {
			continue
		}
		if err != nil {
			return err
		}
		if err := soilData.DeleteDepthData(sd.ID); err != nil {
			return fmt.Errorf("clear depth data for site %s: %w", site.ID, err)
		}
		if err := soilData.ReplaceIntervals(sd.ID, nil); err != nil {
			return fmt.Errorf("clear intervals for site %s: %w", site.ID, err)
		}
		cleared++
	}
	s.log.Info("project depth preset changed",
		"project_id", settings.ProjectID, "from", settings.DepthIntervalPreset, "to", preset, "sites_cleared", cleared)
	settings.DepthIntervalPreset = string(preset)
	return nil
}

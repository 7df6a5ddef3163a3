package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"soilsync/entities"
	"soilsync/pkg/depth"
	"soilsync/pkg/project/repository"
)

const byDepth = "project_id = ? AND depth_interval_start = ? AND depth_interval_end = ?"

type projectRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ProjectRepository { return &projectRepo{db: db} }

func (r *projectRepo) WithTx(tx *gorm.DB) repository.ProjectRepository { return &projectRepo{db: tx} }

func (r *projectRepo) Create(p *entities.Project, creator string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}
		m := entities.ProjectMembership{ProjectID: p.ID, UserID: creator, Role: entities.RoleManager}
		if err := tx.Create(&m).Error; err != nil {
			return fmt.Errorf("add project manager: %w", err)
		}
		p.Memberships = []entities.ProjectMembership{m}
		return nil
	})
}

func (r *projectRepo) FindByID(id string) (*entities.Project, error) {
	var p entities.Project
	err := r.db.Preload("Memberships").Where("id = ?", id).Take(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project %s: %w", id, err)
	}
	return &p, nil
}

func (r *projectRepo) AddMember(projectID, userID, role string) (*entities.ProjectMembership, error) {
	m := entities.ProjectMembership{ProjectID: projectID, UserID: userID, Role: role}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "project_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role"}),
	}).Create(&m).Error
	if err != nil {
		return nil, fmt.Errorf("add member %s to project %s: %w", userID, projectID, err)
	}
	return &m, nil
}

func orderByDepth(db *gorm.DB) *gorm.DB {
	return db.Order("depth_interval_start asc, depth_interval_end asc")
}

func (r *projectRepo) FindSettings(projectID string) (*entities.ProjectSoilSettings, error) {
	var s entities.ProjectSoilSettings
	err := r.db.Preload("DepthIntervals", orderByDepth).Where("project_id = ?", projectID).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find soil settings for project %s: %w", projectID, err)
	}
	return &s, nil
}

func (r *projectRepo) CreateSettings(s *entities.ProjectSoilSettings) error {
	return r.db.Omit(clause.Associations).Create(s).Error
}

func (r *projectRepo) SaveSettings(s *entities.ProjectSoilSettings) error {
	return r.db.Omit(clause.Associations).Save(s).Error
}

func (r *projectRepo) ListIntervals(projectID string) ([]depth.Interval, error) {
	var rows []entities.ProjectDepthInterval
	if err := orderByDepth(r.db.Where("project_id = ?", projectID)).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]depth.Interval, len(rows))
	for i, row := range rows {
		out[i] = depth.Interval{Start: row.DepthIntervalStart, End: row.DepthIntervalEnd}
	}
	return out, nil
}

func (r *projectRepo) ReplaceIntervals(projectID string, ivs []depth.Interval) error {
	if err := r.db.Where("project_id = ?", projectID).Delete(&entities.ProjectDepthInterval{}).Error; err != nil {
		return err
	}
	if len(ivs) == 0 {
		return nil
	}
	rows := make([]entities.ProjectDepthInterval, len(ivs))
	for i, iv := range ivs {
		rows[i] = entities.ProjectDepthInterval{ProjectID: projectID, DepthIntervalStart: iv.Start, DepthIntervalEnd: iv.End}
	}
	return r.db.Create(&rows).Error
}

func (r *projectRepo) UpsertInterval(projectID string, iv depth.Interval, label string) error {
	var row entities.ProjectDepthInterval
	err := r.db.Where(byDepth, projectID, iv.Start, iv.End).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = entities.ProjectDepthInterval{ProjectID: projectID, DepthIntervalStart: iv.Start, DepthIntervalEnd: iv.End}
	} else if err != nil {
		return err
	}
	row.Label = label
	return r.db.Save(&row).Error
}

func (r *projectRepo) DeleteInterval(projectID string, iv depth.Interval) error {
	res := r.db.Where(byDepth, projectID, iv.Start, iv.End).Delete(&entities.ProjectDepthInterval{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrIntervalNotFound
	}
	return nil
}

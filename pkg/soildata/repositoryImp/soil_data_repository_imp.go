package repositoryImp

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"soilsync/entities"
	"soilsync/pkg/depth"
	"soilsync/pkg/soildata/repository"
)

const byDepth = "soil_data_id = ? AND depth_interval_start = ? AND depth_interval_end = ?"

type soilDataRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilDataRepository { return &soilDataRepo{db: db} }

func (r *soilDataRepo) WithTx(tx *gorm.DB) repository.SoilDataRepository { return &soilDataRepo{db: tx} }

func orderByDepth(db *gorm.DB) *gorm.DB {
	return db.Order("depth_interval_start asc, depth_interval_end asc")
}

func (r *soilDataRepo) FindBySite(siteID string) (*entities.SoilData, error) {
	var sd entities.SoilData
	err := r.db.
		Preload("DepthIntervals", orderByDepth).
		Preload("DepthDependentData", orderByDepth).
		Where("site_id = ?", siteID).Take(&sd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find soil data for site %s: %w", siteID, err)
	}
	return &sd, nil
}

func (r *soilDataRepo) GetOrCreate(siteID string) (*entities.SoilData, error) {
	var sd entities.SoilData
	err := r.db.Where("site_id = ?", siteID).Take(&sd).Error
	if err == nil {
		return &sd, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load soil data for site %s: %w", siteID, err)
	}
	sd = entities.SoilData{SiteID: siteID, DepthIntervalPreset: string(depth.PresetCustom)}
	if err := r.db.Create(&sd).Error; err != nil {
		return nil, fmt.Errorf("create soil data for site %s: %w", siteID, err)
	}
	return &sd, nil
}

func (r *soilDataRepo) SaveScalars(sd *entities.SoilData) error {
	return r.db.Omit(clause.Associations).Save(sd).Error
}

func (r *soilDataRepo) ListIntervals(soilDataID uint) ([]depth.Interval, error) {
	var rows []entities.SoilDataDepthInterval
	if err := orderByDepth(r.db.Where("soil_data_id = ?", soilDataID)).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]depth.Interval, len(rows))
	for i, row := range rows {
		out[i] = depth.Interval{Start: row.DepthIntervalStart, End: row.DepthIntervalEnd}
	}
	return out, nil
}

func (r *soilDataRepo) UpsertInterval(soilDataID uint, iv depth.Interval, apply func(*entities.SoilDataDepthInterval)) error {
	var row entities.SoilDataDepthInterval
	err := r.db.Where(byDepth, soilDataID, iv.Start, iv.End).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = entities.SoilDataDepthInterval{SoilDataID: soilDataID, DepthIntervalStart: iv.Start, DepthIntervalEnd: iv.End}
	} else if err != nil {
		return err
	}
	if apply != nil {
		apply(&row)
	}
	return r.db.Save(&row).Error
}

func (r *soilDataRepo) DeleteInterval(soilDataID uint, iv depth.Interval) error {
	return r.db.Where(byDepth, soilDataID, iv.Start, iv.End).Delete(&entities.SoilDataDepthInterval{}).Error
}

func (r *soilDataRepo) ReplaceIntervals(soilDataID uint, ivs []depth.Interval) error {
	if err := r.db.Where("soil_data_id = ?", soilDataID).Delete(&entities.SoilDataDepthInterval{}).Error; err != nil {
		return err
	}
	if len(ivs) == 0 {
		return nil
	}
	rows := make([]entities.SoilDataDepthInterval, len(ivs))
	for i, iv := range ivs {
		rows[i] = entities.SoilDataDepthInterval{SoilDataID: soilDataID, DepthIntervalStart: iv.Start, DepthIntervalEnd: iv.End}
	}
	return r.db.Create(&rows).Error
}

func (r *soilDataRepo) UpsertDepthData(soilDataID uint, iv depth.Interval, apply func(*entities.DepthDependentSoilData)) error {
	var row entities.DepthDependentSoilData
	err := r.db.Where(byDepth, soilDataID, iv.Start, iv.End).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = entities.DepthDependentSoilData{SoilDataID: soilDataID, DepthIntervalStart: iv.Start, DepthIntervalEnd: iv.End}
	} else if err != nil {
		return err
	}
	if apply != nil {
		apply(&row)
	}
	return r.db.Save(&row).Error
}

func (r *soilDataRepo) DeleteDepthData(soilDataID uint) error {
	return r.db.Where("soil_data_id = ?", soilDataID).Delete(&entities.DepthDependentSoilData{}).Error
}

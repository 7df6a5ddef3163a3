package serviceImp

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"soilsync/database"
	"soilsync/entities"
	"soilsync/pkg/depth"
	"soilsync/pkg/permission"
	"soilsync/pkg/project/repository"
	projectImp "soilsync/pkg/project/repositoryImp"
	svc "soilsync/pkg/project/service"
	siteImp "soilsync/pkg/site/repositoryImp"
	soilDataImp "soilsync/pkg/soildata/repositoryImp"
	"soilsync/pkg/validation"
)

func newService(t *testing.T) (*gorm.DB, svc.Service) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	return db, New(db, projectImp.New(db), siteImp.New(db), soilDataImp.New(db), permission.New(db), nil)
}

func ptr[T any](v T) *T { return &v }

func intervals(s *entities.ProjectSoilSettings) []depth.Interval {
	out := make([]depth.Interval, len(s.DepthIntervals))
	for i, row := range s.DepthIntervals {
		out[i] = depth.Interval{Start: row.DepthIntervalStart, End: row.DepthIntervalEnd}
	}
	return out
}

func TestSettingsCreatedWithLandPKSDefaults(t *testing.T) {
	_, s := newService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, "alice", "Ridge")
	require.NoError(t, err)
	require.Len(t, p.Memberships, 1)
	assert.Equal(t, entities.RoleManager, p.Memberships[0].Role)

	settings, err := s.Settings(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(depth.PresetLandPKS), settings.DepthIntervalPreset)
	assert.Equal(t, depth.Defaults(depth.PresetLandPKS), intervals(settings))

	_, err = s.Settings(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateSettingsNeedsManager(t *testing.T) {
	_, s := newService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, "alice", "Ridge")
	require.NoError(t, err)
	_, err = s.AddMember(ctx, "alice", p.ID, "carol", entities.RoleContributor)
	require.NoError(t, err)

	_, err = s.UpdateSettings(ctx, "carol", p.ID, svc.SettingsPatch{PhRequired: ptr(true)})
	assert.ErrorIs(t, err, svc.ErrNotAllowed)
	_, err = s.AddMember(ctx, "carol", p.ID, "dave", entities.RoleManager)
	assert.ErrorIs(t, err, svc.ErrNotAllowed)

	settings, err := s.UpdateSettings(ctx, "alice", p.ID, svc.SettingsPatch{PhRequired: ptr(true), MeasurementUnits: ptr("IMPERIAL")})
	require.NoError(t, err)
	assert.True(t, settings.PhRequired)
	assert.False(t, settings.SlopeRequired)
	assert.Equal(t, "IMPERIAL", settings.MeasurementUnits)

	_, err = s.UpdateSettings(ctx, "alice", p.ID, svc.SettingsPatch{MeasurementUnits: ptr("FURLONGS")})
	assert.True(t, validation.IsInvalid(err))
}

func TestPresetChangeClearsProjectSites(t *testing.T) {
	db, s := newService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, "alice", "Ridge")
	require.NoError(t, err)
	_, err = s.UpdateSettings(ctx, "alice", p.ID, svc.SettingsPatch{DepthIntervalPreset: ptr("CUSTOM")})
	require.NoError(t, err)

	for _, id := range []string{"S1", "S2"} {
		require.NoError(t, db.Create(&entities.Site{ID: id, OwnerID: "alice", ProjectID: &p.ID}).Error)
		sd := entities.SoilData{SiteID: id, DepthIntervalPreset: string(depth.PresetCustom)}
		require.NoError(t, db.Create(&sd).Error)
		require.NoError(t, db.Create(&entities.SoilDataDepthInterval{SoilDataID: sd.ID, DepthIntervalStart: 0, DepthIntervalEnd: 7}).Error)
		require.NoError(t, db.Create(&entities.DepthDependentSoilData{SoilDataID: sd.ID, DepthIntervalStart: 0, DepthIntervalEnd: 7, Texture: ptr("CLAY")}).Error)
	}
	require.NoError(t, db.Create(&entities.Site{ID: "outside", OwnerID: "alice"}).Error)
	other := entities.SoilData{SiteID: "outside", DepthIntervalPreset: string(depth.PresetCustom)}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&entities.DepthDependentSoilData{SoilDataID: other.ID, DepthIntervalStart: 0, DepthIntervalEnd: 7}).Error)

	settings, err := s.UpdateSettings(ctx, "alice", p.ID, svc.SettingsPatch{DepthIntervalPreset: ptr("NRCS")})
	require.NoError(t, err)
	assert.Equal(t, string(depth.PresetNRCS), settings.DepthIntervalPreset)
	assert.Equal(t, depth.Defaults(depth.PresetNRCS), intervals(settings))

	var n int64
	require.NoError(t, db.Model(&entities.DepthDependentSoilData{}).Count(&n).Error)
	assert.Equal(t, int64(1), n, "only the site outside the project keeps its measurements")
	require.NoError(t, db.Model(&entities.SoilDataDepthInterval{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestProjectIntervalEditsRequireCustom(t *testing.T) {
	_, s := newService(t)
	ctx := context.Background()
	p, err := s.Create(ctx, "alice", "Ridge")
	require.NoError(t, err)

	_, err = s.UpdateDepthInterval(ctx, "alice", p.ID, svc.IntervalInput{Interval: depth.Interval{Start: 0, End: 5}})
	assert.ErrorIs(t, err, svc.ErrNotCustom)

	_, err = s.UpdateSettings(ctx, "alice", p.ID, svc.SettingsPatch{DepthIntervalPreset: ptr("CUSTOM")})
	require.NoError(t, err)

	settings, err := s.UpdateDepthInterval(ctx, "alice", p.ID, svc.IntervalInput{Interval: depth.Interval{Start: 0, End: 5}, Label: "top"})
	require.NoError(t, err)
	require.Len(t, settings.DepthIntervals, 1)
	assert.Equal(t, "top", settings.DepthIntervals[0].Label)

	settings, err = s.UpdateDepthInterval(ctx, "alice", p.ID, svc.IntervalInput{Interval: depth.Interval{Start: 0, End: 5}, Label: "renamed"})
	require.NoError(t, err)
	require.Len(t, settings.DepthIntervals, 1)
	assert.Equal(t, "renamed", settings.DepthIntervals[0].Label)

	_, err = s.UpdateDepthInterval(ctx, "alice", p.ID, svc.IntervalInput{Interval: depth.Interval{Start: 3, End: 9}})
	assert.ErrorIs(t, err, depth.ErrOverlap)

	settings, err = s.DeleteDepthInterval(ctx, "alice", p.ID, depth.Interval{Start: 0, End: 5})
	require.NoError(t, err)
	assert.Empty(t, settings.DepthIntervals)

	_, err = s.DeleteDepthInterval(ctx, "alice", p.ID, depth.Interval{Start: 0, End: 5})
	assert.ErrorIs(t, err, repository.ErrIntervalNotFound)
}

package serviceImp

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"soilsync/database"
	"soilsync/entities"
	historyImp "soilsync/pkg/history/repositoryImp"
	"soilsync/pkg/metrics"
	"soilsync/pkg/permission"
	siteImp "soilsync/pkg/site/repositoryImp"
	soilDataSvc "soilsync/pkg/soildata/service"
	metadataImp "soilsync/pkg/soilmetadata/repositoryImp"
	svc "soilsync/pkg/soilmetadata/service"
)

func newService(t *testing.T) (*gorm.DB, svc.Service, *metrics.Metrics) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	s := New(db, siteImp.New(db), metadataImp.New(db), historyImp.New(db), permission.New(db), m, nil)
	require.NoError(t, db.Create(&entities.Site{ID: "S1", OwnerID: "alice"}).Error)
	return db, s, m
}

func push(t *testing.T, s svc.Service, actor string, entries ...svc.PushEntry) []svc.PushResult {
	t.Helper()
	res, err := s.PushBatch(context.Background(), actor, entries)
	require.NoError(t, err)
	require.Len(t, res, len(entries))
	return res
}

func TestPushReplacesRatings(t *testing.T) {
	db, s, m := newService(t)

	res := push(t, s, "alice", svc.PushEntry{SiteID: "S1", UserRatings: []svc.UserRating{
		{SoilMatchID: "a", Rating: entities.RatingSelected},
		{SoilMatchID: "b", Rating: entities.RatingRejected},
	}})
	require.True(t, res[0].Succeeded(), res[0].Reason)
	require.NotNil(t, res[0].SoilMetadata.SelectedSoilID)
	assert.Equal(t, "a", *res[0].SoilMetadata.SelectedSoilID)

	res = push(t, s, "alice", svc.PushEntry{SiteID: "S1", UserRatings: []svc.UserRating{
		{SoilMatchID: "c", Rating: entities.RatingUnsure},
	}})
	require.True(t, res[0].Succeeded(), res[0].Reason)

	got, err := s.Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"c": entities.RatingUnsure}, got.UserRatings)
	assert.Nil(t, got.SelectedSoilID)

	var hist []entities.SoilDataHistory
	require.NoError(t, db.Order("id").Find(&hist).Error)
	require.Len(t, hist, 2)
	assert.Equal(t, entities.HistoryKindSoilMetadata, hist[1].Kind)
	assert.JSONEq(t, `[{"matchId":"c","rating":"UNSURE"}]`, hist[1].Changes)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PushEntries.WithLabelValues("soil_metadata", "succeeded")))
}

func TestPushRejectsSecondSelection(t *testing.T) {
	_, s, _ := newService(t)
	push(t, s, "alice", svc.PushEntry{SiteID: "S1", UserRatings: []svc.UserRating{
		{SoilMatchID: "a", Rating: entities.RatingRejected},
	}})

	res := push(t, s, "alice", svc.PushEntry{SiteID: "S1", UserRatings: []svc.UserRating{
		{SoilMatchID: "a", Rating: entities.RatingSelected},
		{SoilMatchID: "b", Rating: entities.RatingSelected},
	}})
	assert.Equal(t, soilDataSvc.InvalidData, res[0].Reason)

	got, err := s.Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": entities.RatingRejected}, got.UserRatings)
}

func TestPushMetadataFailures(t *testing.T) {
	_, s, _ := newService(t)
	res := push(t, s, "bob",
		svc.PushEntry{SiteID: "S1"},
		svc.PushEntry{SiteID: "ghost"},
	)
	assert.Equal(t, soilDataSvc.NotAllowed, res[0].Reason)
	assert.Equal(t, soilDataSvc.DoesNotExist, res[1].Reason)

	res = push(t, s, "alice", svc.PushEntry{SiteID: "S1", UserRatings: []svc.UserRating{
		{SoilMatchID: "a", Rating: "LOVED"},
	}})
	assert.Equal(t, soilDataSvc.InvalidData, res[0].Reason)

	got, err := s.Get(context.Background(), "S1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCheckSelection(t *testing.T) {
	assert.NoError(t, CheckSelection(nil))
	assert.NoError(t, CheckSelection([]svc.UserRating{{Rating: entities.RatingSelected}, {Rating: entities.RatingUnsure}}))
	assert.Error(t, CheckSelection([]svc.UserRating{{Rating: entities.RatingSelected}, {Rating: entities.RatingSelected}}))
}

func TestStoredSelectionNeverExceedsOne(t *testing.T) {
	_, s, _ := newService(t)
	ratings := []string{entities.RatingSelected, entities.RatingRejected, entities.RatingUnsure}

	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 30
	properties := gopter.NewProperties(params)
	properties.Property("at most one stored SELECTED", prop.ForAll(
		func(picks []int) bool {
			entry := svc.PushEntry{SiteID: "S1"}
			for i, p := range picks {
				entry.UserRatings = append(entry.UserRatings, svc.UserRating{
					SoilMatchID: fmt.Sprintf("m%d", i),
					Rating:      ratings[p],
				})
			}
			if _, err := s.PushBatch(context.Background(), "alice", []svc.PushEntry{entry}); err != nil {
				return false
			}
			got, err := s.Get(context.Background(), "S1")
			if err != nil || got == nil {
				return false
			}
			selected := 0
			for id, r := range got.UserRatings {
				if r == entities.RatingSelected {
					selected++
					if got.SelectedSoilID == nil || *got.SelectedSoilID != id {
						return false
					}
				}
			}
			return selected <= 1 && (selected == 1) == (got.SelectedSoilID != nil)
		},
		gen.SliceOfN(5, gen.IntRange(0, 2)),
	))
	properties.TestingRun(t)
}

package repositoryImp

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/database"
	"soilsync/entities"
	"soilsync/pkg/history/repository"
)

func TestHistoryLifecycle(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Site{ID: "s1", OwnerID: "u"}).Error)
	repo := New(db)

	rows, err := repo.CreatePending(entities.HistoryKindSoilData, "u", []repository.PendingEntry{
		{SiteID: "s1", Changes: `{"slopeAspect":10}`},
		{SiteID: "missing", Changes: `{}`},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].SiteID)
	assert.Equal(t, "s1", *rows[0].SiteID)
	assert.Nil(t, rows[1].SiteID, "unknown sites are recorded without a site reference")
	assert.True(t, rows[0].Pending())

	pending, err := repo.ListPending(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	require.NoError(t, repo.MarkSucceeded(rows[0].ID))
	require.NoError(t, repo.MarkFailed(rows[1].ID, "DOES_NOT_EXIST"))

	ok, err := repo.FindByID(rows[0].ID)
	require.NoError(t, err)
	assert.True(t, ok.UpdateSucceeded)
	assert.Nil(t, ok.UpdateFailureReason)
	assert.JSONEq(t, `{"slopeAspect":10}`, ok.Changes)

	failed, err := repo.FindByID(rows[1].ID)
	require.NoError(t, err)
	assert.False(t, failed.UpdateSucceeded)
	require.NotNil(t, failed.UpdateFailureReason)
	assert.Equal(t, "DOES_NOT_EXIST", *failed.UpdateFailureReason)

	pending, err = repo.ListPending(time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Empty(t, pending)

	bySite, err := repo.ListBySite("s1")
	require.NoError(t, err)
	assert.Len(t, bySite, 1)
}

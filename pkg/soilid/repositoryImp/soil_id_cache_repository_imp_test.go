package repositoryImp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/database"
	"soilsync/entities"
	"soilsync/pkg/soilid/repository"
)

func TestUpsertOverwritesSameCoordinates(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	r := New(db)

	_, err = r.Find(48.000001, -123.380001)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	failure := "no data"
	require.NoError(t, r.Upsert(&entities.SoilIDCache{Latitude: 48.000001, Longitude: -123.380001, FailureReason: &failure}))

	list := `{"soilList":[]}`
	require.NoError(t, r.Upsert(&entities.SoilIDCache{Latitude: 48.000001, Longitude: -123.380001, SoilListJSON: &list}))

	got, err := r.Find(48.000001, -123.380001)
	require.NoError(t, err)
	assert.Nil(t, got.FailureReason)
	require.NotNil(t, got.SoilListJSON)
	assert.Equal(t, list, *got.SoilListJSON)

	var n int64
	require.NoError(t, db.Model(&entities.SoilIDCache{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

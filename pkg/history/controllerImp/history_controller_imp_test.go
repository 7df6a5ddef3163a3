package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/database"
	"soilsync/entities"
	"soilsync/pkg/history/repositoryImp"
)

func TestPending(t *testing.T) {
	db, err := database.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	old := time.Now().Add(-time.Hour)
	failed := "NOT_ALLOWED"
	require.NoError(t, db.Create([]*entities.SoilDataHistory{
		{Kind: entities.HistoryKindSoilData, ChangedBy: "alice", Changes: "{}", CreatedAt: old},
		{Kind: entities.HistoryKindSoilData, ChangedBy: "alice", Changes: "{}"},
		{Kind: entities.HistoryKindSoilData, ChangedBy: "alice", Changes: "{}", CreatedAt: old, UpdateFailureReason: &failed},
		{Kind: entities.HistoryKindSoilMetadata, ChangedBy: "bob", Changes: "{}", CreatedAt: old},
	}).Error)
	h := New(repositoryImp.New(db))

	call := func(query string) *httptest.ResponseRecorder {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/soil-data/history/pending"+query, nil), rec)
		c.Set("uid", "alice")
		require.NoError(t, h.Pending(c))
		return rec
	}

	rec := call("?olderThan=30m")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Pending []entities.SoilDataHistory `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Pending, 1)
	assert.Equal(t, "alice", resp.Pending[0].ChangedBy)
	assert.True(t, resp.Pending[0].Pending())

	resp.Pending = nil
	require.NoError(t, json.Unmarshal(call("?olderThan=0s").Body.Bytes(), &resp))
	assert.Len(t, resp.Pending, 2)

	assert.Equal(t, http.StatusBadRequest, call("?olderThan=soon").Code)
	assert.Equal(t, http.StatusBadRequest, call("?olderThan=-1m").Code)
}

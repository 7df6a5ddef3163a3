package cache

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/database"
	"soilsync/pkg/metrics"
	"soilsync/pkg/soilid"
	"soilsync/pkg/soilid/repositoryImp"
)

func newCache(t *testing.T) (*Cache, *metrics.Metrics) {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	m := metrics.New(prometheus.NewRegistry())
	return New(repositoryImp.New(db), m), m
}

type countingFetcher struct {
	calls int
	res   soilid.ListResult
	err   error
}

func (f *countingFetcher) fetch(context.Context) (soilid.ListResult, error) {
	f.calls++
	return f.res, f.err
}

func TestGetOrFetchHitsOnRoundedKey(t *testing.T) {
	c, m := newCache(t)
	f := &countingFetcher{res: soilid.ListResult{Output: &soilid.ListOutput{
		SoilListJSON: map[string]any{"soilList": []any{map[string]any{"slope": math.NaN(), "cap": "None"}}},
		RankDataCSV:  "rank",
	}}}
	ctx := context.Background()

	first, err := c.GetOrFetch(ctx, 48.000001234, -123.380000987, f.fetch)
	require.NoError(t, err)
	second, err := c.GetOrFetch(ctx, 48.0000011, -123.3800012, f.fetch)
	require.NoError(t, err)

	assert.Equal(t, 1, f.calls)
	require.False(t, second.Failed())
	assert.Equal(t, "rank", second.Output.RankDataCSV)
	entry := second.Output.SoilListJSON["soilList"].([]any)[0].(map[string]any)
	assert.Nil(t, entry["slope"])
	assert.Nil(t, entry["cap"])
	assert.Equal(t, first.Output.SoilListJSON, second.Output.SoilListJSON)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
}

func TestGetOrFetchCachesFailure(t *testing.T) {
	c, _ := newCache(t)
	f := &countingFetcher{res: soilid.ListResult{Failure: "no data here"}}

	for i := 0; i < 2; i++ {
		res, err := c.GetOrFetch(context.Background(), 10, 20, f.fetch)
		require.NoError(t, err)
		assert.True(t, res.Failed())
		assert.Equal(t, "no data here", res.Failure)
	}
	assert.Equal(t, 1, f.calls)
}

func TestGetOrFetchDoesNotCacheErrors(t *testing.T) {
	c, _ := newCache(t)
	f := &countingFetcher{err: errors.New("connection refused")}

	_, err := c.GetOrFetch(context.Background(), 1, 2, f.fetch)
	assert.ErrorContains(t, err, "connection refused")

	f.err = nil
	f.res = soilid.ListResult{Output: &soilid.ListOutput{SoilListJSON: map[string]any{"soilList": []any{}}}}
	res, err := c.GetOrFetch(context.Background(), 1, 2, f.fetch)
	require.NoError(t, err)
	assert.False(t, res.Failed())
	assert.Equal(t, 2, f.calls)
}

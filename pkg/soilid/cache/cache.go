// Package cache fronts the ranking engine's candidate lists with a store keyed
// by coordinates rounded to 6 decimals.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"soilsync/entities"
	"soilsync/pkg/metrics"
	"soilsync/pkg/soilid"
	"soilsync/pkg/soilid/repository"
)

// Fetcher asks the engine for the candidates at a location.
type Fetcher func(ctx context.Context) (soilid.ListResult, error)

type Cache struct {
	repo    repository.CacheRepository
	metrics *metrics.Metrics
}

func New(repo repository.CacheRepository, m *metrics.Metrics) *Cache {
	return &Cache{repo: repo, metrics: m}
}

// GetOrFetch returns the stored result for the rounded coordinates, including a
// stored failure. On a miss it calls fetch once, sanitizes and stores what the
// engine reported. A fetch error is returned and nothing is stored.
func (c *Cache) GetOrFetch(ctx context.Context, lat, lon float64, fetch Fetcher) (soilid.ListResult, error) {
	lat, lon = soilid.Round6(lat), soilid.Round6(lon)
	row, err := c.repo.Find(lat, lon)
	if err == nil {
		c.metrics.CacheLookup(true)
		return decodeRow(row)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return soilid.ListResult{}, err
	}
	c.metrics.CacheLookup(false)

	res, err := fetch(ctx)
	if err != nil {
		return soilid.ListResult{}, err
	}
	row, err = encodeRow(lat, lon, res)
	if err != nil {
		return soilid.ListResult{}, err
	}
	if err := c.repo.Upsert(row); err != nil {
		return soilid.ListResult{}, err
	}
	return res, nil
}

func encodeRow(lat, lon float64, res soilid.ListResult) (*entities.SoilIDCache, error) {
	row := &entities.SoilIDCache{Latitude: lat, Longitude: lon}
	if res.Failed() {
		failure := res.Failure
		row.FailureReason = &failure
		return row, nil
	}
	out := res.Output
	if out.SoilListJSON != nil {
		out.SoilListJSON = soilid.Sanitize(out.SoilListJSON).(map[string]any)
	}
	b, err := json.Marshal(out.SoilListJSON)
	if err != nil {
		return nil, fmt.Errorf("encode soil list: %w", err)
	}
	list := string(b)
	row.SoilListJSON = &list
	row.RankDataCSV = &out.RankDataCSV
	row.MapUnitComponentDataCSV = &out.MapUnitComponentDataCSV
	return row, nil
}

func decodeRow(row *entities.SoilIDCache) (soilid.ListResult, error) {
	if row.FailureReason != nil {
		return soilid.ListResult{Failure: *row.FailureReason}, nil
	}
	out := &soilid.ListOutput{}
	if row.SoilListJSON != nil {
		if err := json.Unmarshal([]byte(*row.SoilListJSON), &out.SoilListJSON); err != nil {
			return soilid.ListResult{}, fmt.Errorf("decode cached soil list: %w", err)
		}
	}
	if row.RankDataCSV != nil {
		out.RankDataCSV = *row.RankDataCSV
	}
	if row.MapUnitComponentDataCSV != nil {
		out.MapUnitComponentDataCSV = *row.MapUnitComponentDataCSV
	}
	return soilid.ListResult{Output: out}, nil
}

// Package soilid turns the external soil ranking engine's loosely shaped output
// into location and data based soil matches.
package soilid

import (
	"context"
	"math"
	"strconv"
)

type FailureReason string

const (
	DataUnavailable  FailureReason = "DATA_UNAVAILABLE"
	AlgorithmFailure FailureReason = "ALGORITHM_FAILURE"
)

// ListOutput is the engine's candidate list for one location.
type ListOutput struct {
	SoilListJSON            map[string]any `json:"soilListJson"`
	RankDataCSV             string         `json:"rankDataCsv"`
	MapUnitComponentDataCSV string         `json:"mapUnitComponentDataCsv"`
}

// ListResult holds either list output or the failure string the engine
// reported for the location.
type ListResult struct {
	Output  *ListOutput
	Failure string
}

func (r ListResult) Failed() bool { return r.Output == nil }

// Engine is the external ranking engine. A returned error means the engine
// could not be reached or answered garbage. A location the engine has no data
// for is reported through ListResult.Failure instead.
type Engine interface {
	ListCandidates(ctx context.Context, lat, lon float64) (ListResult, error)
	RankCandidates(ctx context.Context, lat, lon float64, list *ListOutput, in RankInput) (map[string]any, error)
}

// Round6 rounds a coordinate to 6 decimal places, the cache key precision.
func Round6(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	r, _ := strconv.ParseFloat(strconv.FormatFloat(x, 'f', 6, 64), 64)
	return r
}

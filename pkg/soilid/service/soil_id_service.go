package service

import (
	"context"

	"soilsync/pkg/soilid"
)

// LocationResult carries either matches or the reason there are none.
type LocationResult struct {
	Matches []soilid.LocationMatch `json:"matches,omitempty"`
	Reason  soilid.FailureReason   `json:"reason,omitempty"`
}

type DataResult struct {
	Matches []soilid.DataMatch   `json:"matches,omitempty"`
	Reason  soilid.FailureReason `json:"reason,omitempty"`
}

// Service never returns an error: every failure becomes a Reason.
type Service interface {
	LocationMatches(ctx context.Context, lat, lon float64) LocationResult
	DataMatches(ctx context.Context, lat, lon float64, in soilid.InputData) DataResult
}

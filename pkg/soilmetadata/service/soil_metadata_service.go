package service

import (
	"context"

	"soilsync/entities"
	soilDataSvc "soilsync/pkg/soildata/service"
)

type UserRating struct {
	SoilMatchID string `json:"matchId" validate:"required"`
	Rating      string `json:"rating" validate:"required,oneof=SELECTED REJECTED UNSURE"`
}

// PushEntry replaces a site's ratings wholesale.
type PushEntry struct {
	SiteID      string       `json:"siteId"`
	UserRatings []UserRating `json:"userRatings" validate:"dive"`
}

type PushResult struct {
	SiteID       string                    `json:"siteId"`
	SoilMetadata *entities.SoilMetadata    `json:"soilMetadata,omitempty"`
	Reason       soilDataSvc.FailureReason `json:"reason,omitempty"`
}

func (r PushResult) Succeeded() bool { return r.Reason == "" }

type Service interface {
	PushBatch(ctx context.Context, actor string, entries []PushEntry) ([]PushResult, error)
	// Get returns nil when the site has no metadata yet.
	Get(ctx context.Context, siteID string) (*entities.SoilMetadata, error)
}

// Package service combines the soil data and soil metadata pushes behind one
// request.
package service

import (
	"context"
	"errors"

	soilDataSvc "soilsync/pkg/soildata/service"
	metadataSvc "soilsync/pkg/soilmetadata/service"
)

var ErrEmptyPush = errors.New("push has no soil data or soil metadata entries")

type PushRequest struct {
	SoilDataEntries     []soilDataSvc.PushEntry `json:"entries"`
	SoilMetadataEntries []metadataSvc.PushEntry `json:"metadataEntries"`
}

// PushResponse carries each group's results, or the error that stopped the
// group. A group that was not requested is left empty.
type PushResponse struct {
	SoilData          []soilDataSvc.PushResult `json:"results,omitempty"`
	SoilDataError     string                   `json:"error,omitempty"`
	SoilMetadata      []metadataSvc.PushResult `json:"metadataResults,omitempty"`
	SoilMetadataError string                   `json:"metadataError,omitempty"`
}

type Service interface {
	Push(ctx context.Context, actor string, req PushRequest) (*PushResponse, error)
}

package serviceImp

import (
	"context"
	"log/slog"

	svc "soilsync/pkg/sitedata/service"
	soilDataSvc "soilsync/pkg/soildata/service"
	metadataSvc "soilsync/pkg/soilmetadata/service"
)

type service struct {
	soilData soilDataSvc.Service
	metadata metadataSvc.Service
	log      *slog.Logger
}

func New(soilData soilDataSvc.Service, metadata metadataSvc.Service, log *slog.Logger) svc.Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{soilData: soilData, metadata: metadata, log: log}
}

func (s *service) Push(ctx context.Context, actor string, req svc.PushRequest) (*svc.PushResponse, error) {
	if len(req.SoilDataEntries) == 0 && len(req.SoilMetadataEntries) == 0 {
		return nil, svc.ErrEmptyPush
	}

	resp := &svc.PushResponse{}
	if len(req.SoilDataEntries) > 0 {
		results, err := s.soilData.PushBatch(ctx, actor, req.SoilDataEntries)
		if err != nil {
			s.log.Error("soil data push failed", "actor", actor, "err", err)
			resp.SoilDataError = err.Error()
		} else {
			resp.SoilData = results
		}
	}
	if len(req.SoilMetadataEntries) > 0 {
		results, err := s.metadata.PushBatch(ctx, actor, req.SoilMetadataEntries)
		if err != nil {
			s.log.Error("soil metadata push failed", "actor", actor, "err", err)
			resp.SoilMetadataError = err.Error()
		} else {
			resp.SoilMetadata = results
		}
	}
	return resp, nil
}

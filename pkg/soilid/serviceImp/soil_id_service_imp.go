package serviceImp

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"soilsync/pkg/metrics"
	"soilsync/pkg/soilid"
	"soilsync/pkg/soilid/cache"
	svc "soilsync/pkg/soilid/service"
)

type service struct {
	engine  soilid.Engine
	cache   *cache.Cache
	metrics *metrics.Metrics
	log     *slog.Logger
}

func New(engine soilid.Engine, c *cache.Cache, m *metrics.Metrics, log *slog.Logger) svc.Service {
	if log == nil {
		log = slog.Default()
	}
	return &service{engine: engine, cache: c, metrics: m, log: log}
}

func (s *service) LocationMatches(ctx context.Context, lat, lon float64) (res svc.LocationResult) {
	defer s.recoverInto(lat, lon, func(r soilid.FailureReason) { res = svc.LocationResult{Reason: r} })

	list, reason := s.list(ctx, lat, lon)
	if reason != "" {
		return svc.LocationResult{Reason: reason}
	}
	matches, err := soilid.ResolveLocationMatches(list.SoilListJSON)
	if err != nil {
		return svc.LocationResult{Reason: s.algorithmFailure(lat, lon, err)}
	}
	return svc.LocationResult{Matches: matches}
}

func (s *service) DataMatches(ctx context.Context, lat, lon float64, in soilid.InputData) (res svc.DataResult) {
	defer s.recoverInto(lat, lon, func(r soilid.FailureReason) { res = svc.DataResult{Reason: r} })

	list, reason := s.list(ctx, lat, lon)
	if reason != "" {
		return svc.DataResult{Reason: reason}
	}
	rank, err := s.engine.RankCandidates(ctx, lat, lon, list, soilid.ParseRankInput(in))
	if err != nil {
		return svc.DataResult{Reason: s.algorithmFailure(lat, lon, fmt.Errorf("rank candidates: %w", err))}
	}
	rank, _ = soilid.Sanitize(rank).(map[string]any)
	matches, err := soilid.ResolveDataMatches(list.SoilListJSON, rank)
	if err != nil {
		return svc.DataResult{Reason: s.algorithmFailure(lat, lon, err)}
	}
	return svc.DataResult{Matches: matches}
}

func (s *service) list(ctx context.Context, lat, lon float64) (*soilid.ListOutput, soilid.FailureReason) {
	res, err := s.cache.GetOrFetch(ctx, lat, lon, func(ctx context.Context) (soilid.ListResult, error) {
		return s.engine.ListCandidates(ctx, lat, lon)
	})
	if err != nil {
		return nil, s.algorithmFailure(lat, lon, fmt.Errorf("list candidates: %w", err))
	}
	if res.Failed() {
		s.log.Debug("soil id data unavailable", "lat", lat, "lon", lon, "failure", res.Failure)
		s.metrics.SoilIDFailure(string(soilid.DataUnavailable))
		return nil, soilid.DataUnavailable
	}
	return res.Output, ""
}

func (s *service) algorithmFailure(lat, lon float64, err error) soilid.FailureReason {
	s.log.Error("soil id algorithm failure", "lat", lat, "lon", lon, "err", err, "stack", string(debug.Stack()))
	s.metrics.SoilIDFailure(string(soilid.AlgorithmFailure))
	return soilid.AlgorithmFailure
}

func (s *service) recoverInto(lat, lon float64, set func(soilid.FailureReason)) {
	if r := recover(); r != nil {
		set(s.algorithmFailure(lat, lon, fmt.Errorf("panic: %v", r)))
	}
}

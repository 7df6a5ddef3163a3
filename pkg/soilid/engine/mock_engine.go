package engine

import (
	"context"
	_ "embed"

	"soilsync/pkg/soilid"
)

var (
	//go:embed sample/soil_list.json
	sampleList []byte
	//go:embed sample/soil_rank.json
	sampleRank []byte
)

// OutOfRange is the failure the mock reports south of the equator.
const OutOfRange = "Soil ID not available in this area"

type mockEngine struct{}

// NewMock serves the bundled sample candidates for every northern location.
func NewMock() soilid.Engine { return &mockEngine{} }

func (m *mockEngine) ListCandidates(_ context.Context, lat, _ float64) (soilid.ListResult, error) {
	if lat < 0 {
		return soilid.ListResult{Failure: OutOfRange}, nil
	}
	var list map[string]any
	if err := soilid.Decode(sampleList, &list); err != nil {
		return soilid.ListResult{}, err
	}
	return soilid.ListResult{Output: &soilid.ListOutput{SoilListJSON: list}}, nil
}

func (m *mockEngine) RankCandidates(context.Context, float64, float64, *soilid.ListOutput, soilid.RankInput) (map[string]any, error) {
	var rank map[string]any
	if err := soilid.Decode(sampleRank, &rank); err != nil {
		return nil, err
	}
	return rank, nil
}

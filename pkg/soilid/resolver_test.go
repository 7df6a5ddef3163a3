package soilid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soilsync/pkg/depth"
)

func loadSample(t *testing.T, name string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("engine", "sample", name))
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, Decode(data, &out))
	return Sanitize(out).(map[string]any)
}

func str(s string) *string { return &s }

func TestResolveTexture(t *testing.T) {
	assert.Equal(t, str("CLAY_LOAM"), ResolveTexture("Clay loam"))
	assert.Equal(t, str("SANDY_CLAY_LOAM"), ResolveTexture("sandy clay loam"))
	assert.Nil(t, ResolveTexture(""))
	assert.Nil(t, ResolveTexture(nil))
	assert.Nil(t, ResolveTexture(3.0))
}

func TestResolveRockFragmentVolume(t *testing.T) {
	cases := []struct {
		in   any
		want *string
	}{
		{0.0, str(Volume0To1)},
		{1, str(Volume0To1)},
		{1.5, str(Volume1To15)},
		{15.0, str(Volume1To15)},
		{35.0, str(Volume15To35)},
		{60.0, str(Volume35To60)},
		{60.1, str(Volume60)},
		{"", nil},
		{nil, nil},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ResolveRockFragmentVolume(c.in), "%v", c.in)
	}
}

func TestResolveLocationMatches(t *testing.T) {
	matches, err := ResolveLocationMatches(loadSample(t, "soil_list.json"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	randall := matches[0]
	assert.Equal(t, "SSURGO", randall.DataSource)
	assert.Equal(t, 0.0, randall.DistanceToNearestMapUnitM)
	assert.Equal(t, MatchInfo{Score: 0.9, Rank: 0}, randall.Match)
	assert.Equal(t, SoilSeries{
		Name:               "Randall",
		TaxonomySubgroup:   "Ustic Epiaquerts",
		Description:        "The Randall series consists of very deep, poorly drained soils.",
		FullDescriptionURL: "https://casoilresource.lawr.ucdavis.edu/sde/?series=randall",
	}, randall.SoilInfo.SoilSeries)
	assert.Nil(t, randall.SoilInfo.EcologicalSite)
	assert.Equal(t, LandCapabilityClass{CapabilityClass: "6", SubClass: "w"}, randall.SoilInfo.LandCapabilityClass)

	soil := randall.SoilInfo.SoilData
	require.NotNil(t, soil.Slope)
	assert.Equal(t, 0.5, *soil.Slope)
	assert.Equal(t, []MatchDepthData{
		{DepthInterval: depth.Interval{Start: 0, End: 30}, RockFragmentVolume: str(Volume0To1), MunsellColorString: str("10YR 4/1")},
		{DepthInterval: depth.Interval{Start: 30, End: 94}, Texture: str("CLAY_LOAM"), MunsellColorString: str("10YR 5/1")},
		{DepthInterval: depth.Interval{Start: 94, End: 203}, RockFragmentVolume: str(Volume0To1), MunsellColorString: str("2.5Y 5/1")},
	}, soil.DepthDependentData)

	acuff := matches[1]
	assert.Equal(t, MatchInfo{Score: 0.1, Rank: 1}, acuff.Match)
	assert.Equal(t, 90.0, acuff.DistanceToNearestMapUnitM)
	assert.Nil(t, acuff.SoilInfo.SoilData.Slope)
	assert.Equal(t, &EcologicalSite{Name: "Mesic Udic Riparian Forest", ID: "AX001X02X001", URL: ""}, acuff.SoilInfo.EcologicalSite)
	assert.Nil(t, acuff.SoilInfo.SoilData.DepthDependentData[1].MunsellColorString)
}

func TestResolveDataMatches(t *testing.T) {
	matches, err := ResolveDataMatches(loadSample(t, "soil_list.json"), loadSample(t, "soil_rank.json"))
	require.NoError(t, err)
	require.Len(t, matches, 2)

	randall := matches[0]
	assert.Equal(t, "Randall", randall.SoilInfo.SoilSeries.Name)
	assert.Equal(t, MatchInfo{Score: 1.0, Rank: 0}, randall.LocationMatch)
	assert.Equal(t, MatchInfo{Score: 0.5, Rank: 1}, randall.DataMatch)
	assert.Equal(t, MatchInfo{Score: 0.21, Rank: 1}, randall.CombinedMatch)

	assert.Equal(t, "Acuff", matches[1].SoilInfo.SoilSeries.Name)
	assert.Equal(t, 0, matches[1].CombinedMatch.Rank)
}

func TestResolveHiddenCandidateLandCapability(t *testing.T) {
	list := loadSample(t, "soil_list.json")
	hidden := list["soilList"].([]any)[2].(map[string]any)
	hidden["id"].(map[string]any)["rank_loc"] = "3"

	matches, err := ResolveLocationMatches(list)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, LandCapabilityClass{}, matches[2].SoilInfo.LandCapabilityClass)
	assert.Nil(t, matches[2].SoilInfo.EcologicalSite)
	assert.Equal(t, str(Volume60), matches[2].SoilInfo.SoilData.DepthDependentData[0].RockFragmentVolume)
}

func TestResolveMalformedInput(t *testing.T) {
	_, err := ResolveLocationMatches(map[string]any{})
	assert.Error(t, err)

	_, err = ResolveLocationMatches(map[string]any{"soilList": []any{
		map[string]any{"id": map[string]any{"rank_loc": "one", "score_loc": 1.0}},
	}})
	assert.Error(t, err)

	list := loadSample(t, "soil_list.json")
	_, err = ResolveDataMatches(list, map[string]any{"soilRank": []any{
		map[string]any{"componentID": 1.0, "rank_loc": "1", "rank_data": "1", "rank_data_loc": "1"},
	}})
	assert.ErrorContains(t, err, "no candidate with component 1")
}

package soilid

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"soilsync/pkg/depth"
)

const notDisplayed = "Not Displayed"

// Rock fragment volume bands.
const (
	Volume0To1   = "VOLUME_0_1"
	Volume1To15  = "VOLUME_1_15"
	Volume15To35 = "VOLUME_15_35"
	Volume35To60 = "VOLUME_35_60"
	Volume60     = "VOLUME_60"
)

type MatchInfo struct {
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

type SoilSeries struct {
	Name               string `json:"name"`
	TaxonomySubgroup   string `json:"taxonomySubgroup"`
	Description        string `json:"description"`
	FullDescriptionURL string `json:"fullDescriptionUrl"`
}

type EcologicalSite struct {
	Name string `json:"name"`
	ID   string `json:"id"`
	URL  string `json:"url"`
}

type LandCapabilityClass struct {
	CapabilityClass string `json:"capabilityClass"`
	SubClass        string `json:"subClass"`
}

type MatchDepthData struct {
	DepthInterval      depth.Interval `json:"depthInterval"`
	Texture            *string        `json:"texture"`
	RockFragmentVolume *string        `json:"rockFragmentVolume"`
	MunsellColorString *string        `json:"munsellColorString"`
}

type MatchSoilData struct {
	Slope              *float64         `json:"slope"`
	DepthDependentData []MatchDepthData `json:"depthDependentData"`
}

type SoilInfo struct {
	SoilSeries          SoilSeries          `json:"soilSeries"`
	EcologicalSite      *EcologicalSite     `json:"ecologicalSite"`
	LandCapabilityClass LandCapabilityClass `json:"landCapabilityClass"`
	SoilData            MatchSoilData       `json:"soilData"`
}

type LocationMatch struct {
	DataSource                string    `json:"dataSource"`
	DistanceToNearestMapUnitM float64   `json:"distanceToNearestMapUnitM"`
	Match                     MatchInfo `json:"match"`
	SoilInfo                  SoilInfo  `json:"soilInfo"`
}

type DataMatch struct {
	DataSource                string    `json:"dataSource"`
	DistanceToNearestMapUnitM float64   `json:"distanceToNearestMapUnitM"`
	LocationMatch             MatchInfo `json:"locationMatch"`
	DataMatch                 MatchInfo `json:"dataMatch"`
	CombinedMatch             MatchInfo `json:"combinedMatch"`
	SoilInfo                  SoilInfo  `json:"soilInfo"`
}

// ResolveTexture turns "Clay loam" into "CLAY_LOAM". Non-string and empty
// values are absent.
func ResolveTexture(v any) *string {
	s, ok := v.(string)
	if !ok || s == "" {
		return nil
	}
	t := strings.ReplaceAll(strings.ToUpper(s), " ", "_")
	return &t
}

// ResolveRockFragmentVolume bands a percentage. Non-numeric values are absent.
func ResolveRockFragmentVolume(v any) *string {
	f, ok := number(v)
	if !ok {
		return nil
	}
	var band string
	switch {
	case f <= 1:
		band = Volume0To1
	case f <= 15:
		band = Volume1To15
	case f <= 35:
		band = Volume15To35
	case f <= 60:
		band = Volume35To60
	default:
		band = Volume60
	}
	return &band
}

func candidates(soilList map[string]any) ([]map[string]any, error) {
	raw, ok := soilList["soilList"].([]any)
	if !ok {
		return nil, fmt.Errorf("soilList: not a list")
	}
	out := make([]map[string]any, len(raw))
	for i, c := range raw {
		m, ok := c.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("soilList[%d]: not an object", i)
		}
		out[i] = m
	}
	return out, nil
}

func matchInfo(score, rank any) (MatchInfo, error) {
	s, ok := number(score)
	if !ok {
		return MatchInfo{}, fmt.Errorf("score %v is not a number", score)
	}
	r, ok := integer(rank)
	if !ok {
		return MatchInfo{}, fmt.Errorf("rank %v is not an integer", rank)
	}
	return MatchInfo{Score: s, Rank: r - 1}, nil
}

// ResolveLocationMatches keeps every candidate whose location rank is shown.
func ResolveLocationMatches(soilList map[string]any) ([]LocationMatch, error) {
	list, err := candidates(soilList)
	if err != nil {
		return nil, err
	}
	matches := make([]LocationMatch, 0, len(list))
	for i, c := range list {
		id, err := lookupMap(c, "id")
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		if id["rank_loc"] == notDisplayed {
			continue
		}
		site, err := lookupMap(c, "site", "siteData")
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		info, err := matchInfo(id["score_loc"], id["rank_loc"])
		if err != nil {
			return nil, fmt.Errorf("candidate %d location match: %w", i, err)
		}
		distance, err := requireNumber(site, "minCompDistance")
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		soil, err := resolveSoilInfo(c)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		matches = append(matches, LocationMatch{
			DataSource:                optString(site, "dataSource"),
			DistanceToNearestMapUnitM: distance,
			Match:                     info,
			SoilInfo:                  soil,
		})
	}
	return matches, nil
}

// ResolveDataMatches keeps every ranked entry whose three ranks are all shown
// and joins it to its candidate by component id.
func ResolveDataMatches(soilList, rank map[string]any) ([]DataMatch, error) {
	list, err := candidates(soilList)
	if err != nil {
		return nil, err
	}
	ranked, ok := rank["soilRank"].([]any)
	if !ok {
		return nil, fmt.Errorf("soilRank: not a list")
	}

	byComponent := make(map[int]map[string]any, len(list))
	for i, c := range list {
		site, err := lookupMap(c, "site", "siteData")
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", i, err)
		}
		if id, ok := integer(site["componentID"]); ok {
			if _, seen := byComponent[id]; !seen {
				byComponent[id] = c
			}
		}
	}

	matches := make([]DataMatch, 0, len(ranked))
	for i, raw := range ranked {
		r, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("soilRank[%d]: not an object", i)
		}
		if r["rank_loc"] == notDisplayed || r["rank_data"] == notDisplayed || r["rank_data_loc"] == notDisplayed {
			continue
		}
		componentID, ok := integer(r["componentID"])
		if !ok {
			return nil, fmt.Errorf("soilRank[%d]: componentID %v is not an integer", i, r["componentID"])
		}
		c, ok := byComponent[componentID]
		if !ok {
			return nil, fmt.Errorf("soilRank[%d]: no candidate with component %d", i, componentID)
		}

		m := DataMatch{}
		if m.LocationMatch, err = matchInfo(r["score_loc"], r["rank_loc"]); err != nil {
			return nil, fmt.Errorf("soilRank[%d] location match: %w", i, err)
		}
		if m.DataMatch, err = matchInfo(r["score_data"], r["rank_data"]); err != nil {
			return nil, fmt.Errorf("soilRank[%d] data match: %w", i, err)
		}
		if m.CombinedMatch, err = matchInfo(r["score_data_loc"], r["rank_data_loc"]); err != nil {
			return nil, fmt.Errorf("soilRank[%d] combined match: %w", i, err)
		}
		site, _ := lookupMap(c, "site", "siteData")
		m.DataSource = optString(site, "dataSource")
		if m.DistanceToNearestMapUnitM, err = requireNumber(site, "minCompDistance"); err != nil {
			return nil, fmt.Errorf("component %d: %w", componentID, err)
		}
		if m.SoilInfo, err = resolveSoilInfo(c); err != nil {
			return nil, fmt.Errorf("component %d: %w", componentID, err)
		}
		matches = append(matches, m)
	}
	return matches, nil
}

func resolveSoilInfo(c map[string]any) (SoilInfo, error) {
	id, err := lookupMap(c, "id")
	if err != nil {
		return SoilInfo{}, err
	}
	site, err := lookupMap(c, "site")
	if err != nil {
		return SoilInfo{}, err
	}
	siteData, err := lookupMap(site, "siteData")
	if err != nil {
		return SoilInfo{}, err
	}
	soil, err := resolveSoilData(c, siteData)
	if err != nil {
		return SoilInfo{}, err
	}
	esd, err := resolveEcologicalSite(c)
	if err != nil {
		return SoilInfo{}, err
	}
	return SoilInfo{
		SoilSeries: SoilSeries{
			Name:               optString(id, "component"),
			TaxonomySubgroup:   optString(siteData, "taxsubgrp"),
			Description:        optString(site, "siteDescription"),
			FullDescriptionURL: optString(siteData, "sdeURL"),
		},
		EcologicalSite: esd,
		LandCapabilityClass: LandCapabilityClass{
			CapabilityClass: capability(siteData["nirrcapcl"]),
			SubClass:        capability(siteData["nirrcapscl"]),
		},
		SoilData: soil,
	}, nil
}

func capability(v any) string {
	s, ok := v.(string)
	if !ok || s == "None" || s == "nan" {
		return ""
	}
	return s
}

func resolveEcologicalSite(c map[string]any) (*EcologicalSite, error) {
	esd, err := lookupMap(c, "esd", "ESD")
	if err != nil {
		return nil, err
	}
	id := firstString(esd["ecoclassid"])
	if id == "" {
		return nil, nil
	}
	url := firstString(esd["esd_url"])
	if url == "" {
		url = firstString(esd["edit_url"])
	}
	return &EcologicalSite{Name: firstString(esd["ecoclassname"]), ID: id, URL: url}, nil
}

// resolveSoilData rebuilds the candidate's horizons from its index keyed
// bottom depths, each horizon starting where the previous one ended.
func resolveSoilData(c, siteData map[string]any) (MatchSoilData, error) {
	bottoms, err := lookupMap(c, "bottom_depth")
	if err != nil {
		return MatchSoilData{}, err
	}

	keys := make([]string, 0, len(bottoms))
	for k := range bottoms {
		if _, err := strconv.Atoi(k); err != nil {
			return MatchSoilData{}, fmt.Errorf("bottom_depth: key %q is not an index", k)
		}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	out := MatchSoilData{DepthDependentData: make([]MatchDepthData, 0, len(keys))}
	prev := 0
	for _, k := range keys {
		bottom, ok := integer(bottoms[k])
		if !ok {
			return MatchSoilData{}, fmt.Errorf("bottom_depth[%s]: %v is not a depth", k, bottoms[k])
		}
		row := MatchDepthData{
			DepthInterval:      depth.Interval{Start: prev, End: bottom},
			Texture:            ResolveTexture(indexed(c["texture"], k)),
			RockFragmentVolume: ResolveRockFragmentVolume(indexed(c["rock_fragments"], k)),
		}
		if s, ok := indexed(c["munsell"], k).(string); ok {
			row.MunsellColorString = &s
		}
		out.DepthDependentData = append(out.DepthDependentData, row)
		prev = bottom
	}
	if slope, ok := number(siteData["slope"]); ok {
		out.Slope = &slope
	}
	return out, nil
}

package soilid

import (
	"strings"

	"soilsync/pkg/depth"
)

const deepVerticalCracking = "DEEP_VERTICAL_CRACKING"

type LABColor struct {
	L float64 `json:"L"`
	A float64 `json:"A"`
	B float64 `json:"B"`
}

type InputDepthData struct {
	DepthInterval      depth.Interval `json:"depthInterval"`
	Texture            *string        `json:"texture" validate:"omitempty,uppercase"`
	RockFragmentVolume *string        `json:"rockFragmentVolume" validate:"omitempty,oneof=VOLUME_0_1 VOLUME_1_15 VOLUME_15_35 VOLUME_35_60 VOLUME_60"`
	ColorLAB           *LABColor      `json:"colorLAB"`
}

// InputData is the soil data a client submits for data based matching.
type InputData struct {
	Slope              *float64         `json:"slope"`
	SurfaceCracks      *string          `json:"surfaceCracks"`
	DepthDependentData []InputDepthData `json:"depthDependentData" validate:"dive"`
}

// RankInput is the keyword set the engine's ranking call takes.
type RankInput struct {
	SoilHorizon  []*string   `json:"soilHorizon"`
	HorizonDepth []int       `json:"horizonDepth"`
	RFVDepth     []*string   `json:"rfvDepth"`
	LabColor     [][]float64 `json:"lab_Color"`
	PSlope       *float64    `json:"pSlope"`
	PElev        *float64    `json:"pElev"`
	Bedrock      *int        `json:"bedrock"`
	Cracks       *bool       `json:"cracks"`
}

// ParseRankInput converts client soil data to the engine's ranking input. When
// the first horizon does not start at the surface it is sent as an empty
// horizon ending at its own bottom depth.
func ParseRankInput(in InputData) RankInput {
	out := RankInput{
		SoilHorizon:  []*string{},
		HorizonDepth: []int{},
		RFVDepth:     []*string{},
		LabColor:     [][]float64{},
		PSlope:       in.Slope,
	}
	if in.SurfaceCracks != nil {
		cracks := *in.SurfaceCracks == deepVerticalCracking
		out.Cracks = &cracks
	}

	rows := in.DepthDependentData
	if len(rows) > 0 && rows[0].DepthInterval.Start != 0 {
		out.HorizonDepth = append(out.HorizonDepth, rows[0].DepthInterval.End)
		out.SoilHorizon = append(out.SoilHorizon, nil)
		out.RFVDepth = append(out.RFVDepth, nil)
		out.LabColor = append(out.LabColor, nil)
		rows = rows[1:]
	}
	for _, r := range rows {
		out.HorizonDepth = append(out.HorizonDepth, r.DepthInterval.End)
		out.SoilHorizon = append(out.SoilHorizon, textureName(r.Texture))
		out.RFVDepth = append(out.RFVDepth, rockFragmentRange(r.RockFragmentVolume))
		var lab []float64
		if r.ColorLAB != nil {
			lab = []float64{r.ColorLAB.L, r.ColorLAB.A, r.ColorLAB.B}
		}
		out.LabColor = append(out.LabColor, lab)
	}
	return out
}

func textureName(t *string) *string {
	if t == nil {
		return nil
	}
	s := strings.ToLower(strings.ReplaceAll(*t, "_", " "))
	return &s
}

func rockFragmentRange(v *string) *string {
	if v == nil {
		return nil
	}
	var s string
	switch *v {
	case Volume0To1:
		s = "0-1%"
	case Volume1To15:
		s = "1-15%"
	case Volume15To35:
		s = "15-35%"
	case Volume35To60:
		s = "35-60%"
	default:
		s = ">60%"
	}
	return &s
}

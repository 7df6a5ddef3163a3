package depth

import "errors"

type Preset string

const (
	PresetLandPKS Preset = "LANDPKS"
	PresetNRCS    Preset = "NRCS"
	PresetCustom  Preset = "CUSTOM"
	PresetNone    Preset = "NONE"
)

var landPKSDefaults = []Interval{
	{Start: 0, End: 10},
	{Start: 10, End: 20},
	{Start: 20, End: 50},
	{Start: 50, End: 70},
	{Start: 70, End: 100},
	{Start: 100, End: 200},
}

var nrcsDefaults = []Interval{
	{Start: 0, End: 5},
	{Start: 5, End: 15},
	{Start: 15, End: 30},
	{Start: 30, End: 60},
	{Start: 60, End: 100},
	{Start: 100, End: 200},
}

func (p Preset) Valid() bool {
	switch p {
	case PresetLandPKS, PresetNRCS, PresetCustom, PresetNone:
		return true
	}
	return false
}

// Fixed reports whether the preset carries a non-editable default partition.
func (p Preset) Fixed() bool { return p == PresetLandPKS || p == PresetNRCS }

// Defaults returns a fresh copy of the intervals a preset installs. CUSTOM and
// NONE install nothing.
func Defaults(p Preset) []Interval {
	if !p.Fixed() {
		return nil
	}
	src := landPKSDefaults
	if p == PresetNRCS {
		src = nrcsDefaults
	}
	out := make([]Interval, len(src))
	copy(out, src)
	return out
}

// ErrPresetLocked is returned when an edit targets intervals that only a CUSTOM
// preset may change.
var ErrPresetLocked = errors.New("depth intervals of this preset cannot be edited")

// Editable reports whether intervals may be added or removed freely.
func (p Preset) Editable() bool { return p == PresetCustom }

// Contains reports whether iv is one of the preset's own intervals.
func (p Preset) Contains(iv Interval) bool {
	for _, d := range Defaults(p) {
		if d == iv {
			return true
		}
	}
	return false
}

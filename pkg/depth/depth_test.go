package depth

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBounds(t *testing.T) {
	cases := []struct {
		name string
		iv   Interval
		ok   bool
	}{
		{"whole column", Interval{0, 200}, true},
		{"negative start", Interval{-1, 10}, false},
		{"past bottom", Interval{190, 201}, false},
		{"empty", Interval{10, 10}, false},
		{"inverted", Interval{20, 10}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(nil, tc.iv)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var be *BoundsError
			require.ErrorAs(t, err, &be)
			assert.Equal(t, tc.iv, be.Interval)
			assert.True(t, errors.Is(err, ErrBounds))
		})
	}
}

func TestValidateOverlap(t *testing.T) {
	existing := []Interval{{0, 10}, {20, 30}}

	assert.NoError(t, Validate(existing, Interval{10, 20}), "touching intervals share no point")

	err := Validate(existing, Interval{5, 15})
	var oe *OverlapError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, Interval{0, 10}, oe.Existing)
	assert.ErrorIs(t, err, ErrOverlap)

	assert.ErrorIs(t, Validate(existing, Interval{25, 26}), ErrOverlap)
	assert.ErrorIs(t, Validate(existing, Interval{0, 200}), ErrOverlap)
}

func TestDefaults(t *testing.T) {
	lp := Defaults(PresetLandPKS)
	require.Len(t, lp, 6)
	assert.Equal(t, Interval{0, 10}, lp[0])
	assert.Equal(t, Interval{100, 200}, lp[5])

	nrcs := Defaults(PresetNRCS)
	assert.Equal(t, []Interval{{0, 5}, {5, 15}, {15, 30}, {30, 60}, {60, 100}, {100, 200}}, nrcs)

	assert.Empty(t, Defaults(PresetCustom))
	assert.Empty(t, Defaults(PresetNone))

	lp[0].End = 99
	assert.Equal(t, 10, Defaults(PresetLandPKS)[0].End, "defaults are copied")
}

func TestDefaultsAreValidPartitions(t *testing.T) {
	for _, p := range []Preset{PresetLandPKS, PresetNRCS} {
		var accepted []Interval
		for _, iv := range Defaults(p) {
			require.NoError(t, Validate(accepted, iv), "%s %s", p, iv)
			accepted = append(accepted, iv)
		}
	}
}

func TestPreset(t *testing.T) {
	assert.True(t, PresetCustom.Valid())
	assert.False(t, Preset("BOGUS").Valid())
	assert.True(t, PresetNRCS.Fixed())
	assert.False(t, PresetNone.Fixed())
}

func TestWithout(t *testing.T) {
	set := []Interval{{0, 10}, {10, 20}, {20, 30}}
	assert.Equal(t, []Interval{{0, 10}, {20, 30}}, Without(set, Interval{10, 20}))
	assert.Len(t, set, 3)
}

func genInterval() gopter.Gen {
	return gopter.CombineGens(gen.IntRange(-20, 220), gen.IntRange(-20, 220)).
		Map(func(vs []interface{}) Interval {
			return Interval{Start: vs[0].(int), End: vs[1].(int)}
		})
}

func TestValidatorProperties(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 300
	properties := gopter.NewProperties(params)

	properties.Property("accepted candidates are in bounds and overlap nothing", prop.ForAll(
		func(existing []Interval, candidate Interval) bool {
			if Validate(existing, candidate) != nil {
				return true
			}
			if candidate.Start < 0 || candidate.End > 200 || candidate.Start >= candidate.End {
				return false
			}
			for _, o := range existing {
				if candidate.Start < o.End && o.Start < candidate.End {
					return false
				}
			}
			return true
		},
		gen.SliceOf(genInterval()),
		genInterval(),
	))

	properties.Property("sets built through Validate never overlap", prop.ForAll(
		func(candidates []Interval) bool {
			var set []Interval
			for _, c := range candidates {
				if Validate(set, c) == nil {
					set = append(set, c)
				}
			}
			for i := range set {
				if set[i].Start >= set[i].End {
					return false
				}
				for j := i + 1; j < len(set); j++ {
					if set[i].Overlaps(set[j]) {
						return false
					}
				}
			}
			return true
		},
		gen.SliceOf(genInterval()),
	))

	properties.TestingRun(t)
}

func TestPresetEditing(t *testing.T) {
	assert.True(t, PresetCustom.Editable())
	assert.False(t, PresetLandPKS.Editable())
	assert.False(t, PresetNone.Editable())
	assert.True(t, PresetNRCS.Contains(Interval{5, 15}))
	assert.False(t, PresetNRCS.Contains(Interval{0, 10}))
	assert.False(t, PresetCustom.Contains(Interval{0, 10}))
}

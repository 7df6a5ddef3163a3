// Package depth models the soil column partition shared by site soil data and
// project soil settings.
package depth

import (
	"errors"
	"fmt"
)

const (
	MinDepth = 0
	MaxDepth = 200
)

var (
	ErrBounds  = errors.New("depth interval out of bounds")
	ErrOverlap = errors.New("depth interval overlaps an existing interval")
)

// Interval is a half-open range [Start, End) in centimetres.
type Interval struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (iv Interval) String() string { return fmt.Sprintf("[%d, %d)", iv.Start, iv.End) }

func (iv Interval) Overlaps(o Interval) bool {
	return iv.Start < o.End && o.Start < iv.End
}

type BoundsError struct{ Interval Interval }

func (e *BoundsError) Error() string {
	return fmt.Sprintf("depth interval %s must satisfy %d <= start < end <= %d", e.Interval, MinDepth, MaxDepth)
}

func (e *BoundsError) Unwrap() error { return ErrBounds }

type OverlapError struct {
	Candidate Interval
	Existing  Interval
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("depth interval %s overlaps %s", e.Candidate, e.Existing)
}

func (e *OverlapError) Unwrap() error { return ErrOverlap }

// CheckBounds reports a *BoundsError unless 0 <= start < end <= 200.
func CheckBounds(iv Interval) error {
	if iv.Start < MinDepth || iv.End > MaxDepth || iv.Start >= iv.End {
		return &BoundsError{Interval: iv}
	}
	return nil
}

// Validate checks candidate against its own bounds and every interval already
// in the owning set. It has no side effects.
func Validate(existing []Interval, candidate Interval) error {
	if err := CheckBounds(candidate); err != nil {
		return err
	}
	for _, other := range existing {
		if candidate.Overlaps(other) {
			return &OverlapError{Candidate: candidate, Existing: other}
		}
	}
	return nil
}

// Without returns the intervals of set that are not named in drop.
func Without(set []Interval, drop ...Interval) []Interval {
	out := make([]Interval, 0, len(set))
next:
	for _, iv := range set {
		for _, d := range drop {
			if iv == d {
				continue next
			}
		}
		out = append(out, iv)
	}
	return out
}

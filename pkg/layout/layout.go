// Package layout assigns entries to non-colliding lanes along a scale.
//
// Entries are ordered by axis position and packed greedily: each entry goes
// into the lowest lane whose previous entry is at least the minimum
// separation away, and a new lane is opened when none qualifies. On points
// sorted along a line this first-fit packing uses the fewest lanes possible.
package layout

import (
	"math"
	"sort"

	"github.com/matzehuels/magnitude/pkg/dataset"
	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/scale"
)

// PlacedEntry is a normalized entry with its axis position and lane.
type PlacedEntry struct {
	dataset.NormalizedEntry
	Position float64 // In [0, 1]
	Lane     int     // >= 0, 0 is closest to the axis
}

// Resolve places every entry on s. The result is ordered by position, with
// ties kept in input order, and has one element per input entry.
//
// minSeparation is the smallest distance allowed between two entries sharing
// a lane. It must be finite and non-negative; zero puts everything in lane 0.
func Resolve(entries []dataset.NormalizedEntry, s scale.Scale, minSeparation float64) ([]PlacedEntry, error) {
	if err := ValidateSeparation(minSeparation); err != nil {
		return nil, err
	}

	placed := make([]PlacedEntry, len(entries))
	for i, e := range entries {
		placed[i] = PlacedEntry{NormalizedEntry: e, Position: s.Position(e.Exponent)}
	}
	sort.SliceStable(placed, func(i, j int) bool {
		return placed[i].Position < placed[j].Position
	})

	var lanes []float64 // last position placed in each lane
	for i := range placed {
		p := placed[i].Position
		lane := len(lanes)
		for l, last := range lanes {
			if p-last >= minSeparation {
				lane = l
				break
			}
		}
		if lane == len(lanes) {
			lanes = append(lanes, p)
		} else {
			lanes[lane] = p
		}
		placed[i].Lane = lane
	}
	return placed, nil
}

// ValidateSeparation checks a minimum separation value.
func ValidateSeparation(minSeparation float64) error {
	if math.IsNaN(minSeparation) || math.IsInf(minSeparation, 0) || minSeparation < 0 {
		return errors.New(errors.ErrCodeInvalidInput,
			"minimum separation must be a finite number >= 0, got %v", minSeparation)
	}
	return nil
}

// LaneCount returns the number of lanes used by placed.
func LaneCount(placed []PlacedEntry) int {
	n := 0
	for _, p := range placed {
		n = max(n, p.Lane+1)
	}
	return n
}

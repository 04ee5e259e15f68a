// Package scale maps order-of-magnitude exponents onto a normalized axis.
//
// A [Scale] spans the smallest to the largest exponent observed in a
// dataset. [Scale.Position] places an exponent on [0, 1], linearly in the
// exponent and therefore logarithmically in the underlying value.
package scale

import (
	"strconv"

	"github.com/matzehuels/magnitude/pkg/dataset"
	"github.com/matzehuels/magnitude/pkg/errors"
)

// Center is the position of every exponent on a single-point axis.
const Center = 0.5

// Scale is the exponent range of an axis. MinExponent <= MaxExponent.
type Scale struct {
	MinExponent int
	MaxExponent int
}

// Tick marks one integer exponent on the axis.
type Tick struct {
	Exponent int
	Position float64
	Label    string // "10^e"
}

// Build returns the smallest scale covering every exponent.
func Build(exponents []int) (Scale, error) {
	if len(exponents) == 0 {
		return Scale{}, &errors.EmptyDatasetError{}
	}
	s := Scale{MinExponent: exponents[0], MaxExponent: exponents[0]}
	for _, e := range exponents[1:] {
		s.MinExponent = min(s.MinExponent, e)
		s.MaxExponent = max(s.MaxExponent, e)
	}
	return s, nil
}

// FromEntries builds the scale of normalized entries. The dataset name is
// only used to label an [errors.EmptyDatasetError].
func FromEntries(name string, entries []dataset.NormalizedEntry) (Scale, error) {
	if len(entries) == 0 {
		return Scale{}, &errors.EmptyDatasetError{Dataset: name}
	}
	exps := make([]int, len(entries))
	for i, e := range entries {
		exps[i] = e.Exponent
	}
	return Build(exps)
}

// Degenerate reports whether the axis covers a single exponent.
func (s Scale) Degenerate() bool {
	return s.MaxExponent <= s.MinExponent
}

// Span is the number of decades covered by the axis.
func (s Scale) Span() int {
	return s.MaxExponent - s.MinExponent
}

// Position maps exponent e onto [0, 1]. Exponents outside the scale map
// outside that interval. On a degenerate scale every exponent maps to
// [Center].
func (s Scale) Position(e int) float64 {
	if s.Degenerate() {
		return Center
	}
	return float64(e-s.MinExponent) / float64(s.MaxExponent-s.MinExponent)
}

// Ticks returns one tick per integer exponent from MinExponent to
// MaxExponent inclusive.
func (s Scale) Ticks() []Tick {
	ticks := make([]Tick, 0, s.Span()+1)
	for e := s.MinExponent; e <= s.MaxExponent; e++ {
		ticks = append(ticks, Tick{Exponent: e, Position: s.Position(e), Label: "10^" + strconv.Itoa(e)})
	}
	return ticks
}

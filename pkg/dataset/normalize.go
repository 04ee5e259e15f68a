package dataset

import (
	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/units"
)

// NormalizedEntry is an Entry with its value expressed in a base unit.
type NormalizedEntry struct {
	Entry
	BaseValue float64 // Always > 0
	BaseUnit  string
	Exponent  int // floor(log10(BaseValue)), the axis exponent

	// Display notation: Mantissa x 10^DisplayExponent. DisplayExponent may
	// exceed Exponent by one when the mantissa rounds up to 10.
	Mantissa        string
	DisplayExponent int
}

// Normalize converts every entry into baseUnit. An empty baseUnit selects the
// base unit of the first entry's dimension. Entries of a different dimension
// fail with [errors.UnsupportedUnitError].
func Normalize(entries []Entry, baseUnit string) ([]NormalizedEntry, error) {
	out := make([]NormalizedEntry, 0, len(entries))
	for _, e := range entries {
		target := baseUnit
		if target == "" {
			u, err := units.Lookup(e.Unit)
			if err != nil {
				return nil, entryErr(e, err)
			}
			base, _ := units.Base(u.Dimension)
			baseUnit = base.Symbol
			target = baseUnit
		}
		q, err := units.ConvertTo(e.Value, e.Unit, target)
		if err != nil {
			return nil, entryErr(e, err)
		}
		mantissa, exp := units.Scientific(q.BaseValue)
		out = append(out, NormalizedEntry{
			Entry:           e,
			BaseValue:       q.BaseValue,
			BaseUnit:        q.BaseUnit.Symbol,
			Exponent:        q.Exponent,
			Mantissa:        mantissa,
			DisplayExponent: exp,
		})
	}
	return out, nil
}

// Normalize converts the dataset's entries into its declared unit, or the
// base unit of its dimension when none is declared.
func (d Dataset) Normalize() ([]NormalizedEntry, error) {
	return Normalize(d.Entries, d.Unit)
}

func entryErr(e Entry, err error) error {
	return &errors.EntryError{Source: e.Source, Index: e.Index, Label: e.Label, Err: err}
}

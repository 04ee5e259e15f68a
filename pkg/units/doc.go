// Package units converts quantities into a canonical base unit and reports
// their order of magnitude.
//
// # Unit Table
//
// The set of supported units is closed and statically known. Every unit belongs
// to one [Dimension] and carries a factor relative to that dimension's base unit:
//
//   - Length, base "m": from the Planck length through femtometres and
//     ångströms up to gigaparsecs, plus the imperial units
//   - Time, base "s": from the Planck time through attoseconds up to
//     gigayears
//
// Common spellings ("metre", "angstrom", "year", "µm") resolve to the
// canonical symbol through an alias table. Anything else fails with
// [errors.UnsupportedUnitError].
//
// # Order of Magnitude
//
// [Exponent] returns floor(log10(v)) for a positive finite v. It is computed
// from the shortest decimal representation of v, so exact powers of ten never
// drift across a boundary the way a floating-point logarithm can:
//
//	units.Exponent(100)   // 2
//	units.Exponent(1e-10) // -10
//	units.Exponent(999.9) // 2
//
// # Usage
//
//	q, err := units.Normalize(1.27e4, "km")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(q.BaseValue, q.Exponent) // 1.27e+07 7
//
// [errors.UnsupportedUnitError]: github.com/matzehuels/magnitude/pkg/errors.UnsupportedUnitError
package units

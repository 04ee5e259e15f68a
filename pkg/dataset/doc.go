// Package dataset loads labeled quantities from structured data files.
//
// # Document Format
//
// A dataset document is a mapping with a title, an optional base unit, an
// optional default category and a list of entries:
//
//	title: Lengths
//	unit: m
//	entries:
//	  - label: Width of a hydrogen atom
//	    value: 1.06e-10
//	    unit: m
//	    category: atomic
//	  - label: Diameter of the Earth
//	    value: 12742
//	    unit: km
//
// YAML (.yml, .yaml), TOML (.toml) and JSON (.json) documents share this
// schema. For compatibility with older datasets, "observables" is accepted
// in place of "entries" and "name" in place of "label".
//
// # Validation
//
// Loading fails fast with a typed error naming the offending entry:
//
//   - [errors.SchemaError]: a required field is missing or has the wrong type
//   - [errors.InvalidValueError]: a value is zero, negative, non-finite or not numeric
//   - [errors.UnsupportedUnitError]: a unit is not in the unit table
//   - [errors.DuplicateLabelError]: two entries share a label within one category
//
// Duplicate detection runs over the merged sequence of all sources, so the
// same label may appear once per category across the whole site.
//
// # Ordering
//
// [Load] merges sources into one sequence: source order first, then
// declaration order within a source. Entries are never reordered or
// mutated after loading.
//
// [errors.SchemaError]: github.com/matzehuels/magnitude/pkg/errors.SchemaError
// [errors.InvalidValueError]: github.com/matzehuels/magnitude/pkg/errors.InvalidValueError
// [errors.UnsupportedUnitError]: github.com/matzehuels/magnitude/pkg/errors.UnsupportedUnitError
// [errors.DuplicateLabelError]: github.com/matzehuels/magnitude/pkg/errors.DuplicateLabelError
package dataset

package errors

import (
	"fmt"
	"strconv"
)

// InvalidValueError reports a quantity that is zero, negative, non-finite or
// not numeric.
type InvalidValueError struct {
	Value  string // Offending value as written in the source
	Reason string
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %s: %s", e.Value, e.Reason)
}

// Code returns the error code for this error type.
func (e *InvalidValueError) Code() Code { return ErrCodeInvalidValue }

// UnsupportedUnitError reports a unit outside the closed unit table, or a
// conversion into a base unit of another dimension.
type UnsupportedUnitError struct {
	Unit   string
	Target string // Base unit the conversion was attempted into (optional)
}

// Error implements the error interface.
func (e *UnsupportedUnitError) Error() string {
	if e.Target != "" {
		return fmt.Sprintf("unit %q cannot convert to %q", e.Unit, e.Target)
	}
	return fmt.Sprintf("unsupported unit %q", e.Unit)
}

// Code returns the error code for this error type.
func (e *UnsupportedUnitError) Code() Code { return ErrCodeUnsupportedUnit }

// SchemaError reports a dataset record with a missing or ill-typed field.
// Index is -1 for document-level problems.
type SchemaError struct {
	Source string
	Index  int
	Label  string
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	where := e.Source
	if e.Index >= 0 {
		where += " entry " + strconv.Itoa(e.Index)
		if e.Label != "" {
			where += fmt.Sprintf(" (%q)", e.Label)
		}
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: field %q %s", where, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s", where, e.Reason)
}

// Code returns the error code for this error type.
func (e *SchemaError) Code() Code { return ErrCodeSchema }

// DuplicateLabelError reports two entries sharing a label within one category.
type DuplicateLabelError struct {
	Label       string
	Category    string
	Source      string
	Index       int
	FirstSource string // Source of the earlier entry with the same label
	FirstIndex  int
}

// Error implements the error interface.
func (e *DuplicateLabelError) Error() string {
	cat := e.Category
	if cat == "" {
		cat = "(none)"
	}
	return fmt.Sprintf("%s entry %d: duplicate label %q in category %s (first declared in %s entry %d)",
		e.Source, e.Index, e.Label, cat, e.FirstSource, e.FirstIndex)
}

// Code returns the error code for this error type.
func (e *DuplicateLabelError) Code() Code { return ErrCodeDuplicateLabel }

// EmptyDatasetError reports that no entries were available to build a scale.
type EmptyDatasetError struct {
	Dataset string
}

// Error implements the error interface.
func (e *EmptyDatasetError) Error() string {
	if e.Dataset != "" {
		return fmt.Sprintf("dataset %q has no entries", e.Dataset)
	}
	return "dataset has no entries"
}

// Code returns the error code for this error type.
func (e *EmptyDatasetError) Code() Code { return ErrCodeEmptyDataset }

// TemplateError reports a template placeholder that cannot be substituted.
type TemplateError struct {
	Template    string // Fragment name, e.g. "entry"
	Placeholder string
	Reason      string
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	if e.Placeholder != "" {
		return fmt.Sprintf("template %s: placeholder %q %s", e.Template, e.Placeholder, e.Reason)
	}
	return fmt.Sprintf("template %s: %s", e.Template, e.Reason)
}

// Code returns the error code for this error type.
func (e *TemplateError) Code() Code { return ErrCodeTemplate }

// EntryError attaches the offending entry to a normalization failure raised
// while loading a dataset.
type EntryError struct {
	Source string
	Index  int
	Label  string
	Err    error
}

// Error implements the error interface.
func (e *EntryError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("%s entry %d (%q): %v", e.Source, e.Index, e.Label, e.Err)
	}
	return fmt.Sprintf("%s entry %d: %v", e.Source, e.Index, e.Err)
}

// Unwrap returns the underlying normalization error.
func (e *EntryError) Unwrap() error { return e.Err }

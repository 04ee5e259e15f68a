package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/units"
)

// FormatFromPath infers the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported dataset format %q for %s (must be .yml, .yaml, .toml or .json)", filepath.Ext(path), path)
}

// Decode reads one dataset document from r. The name identifies the source
// in error messages and in [Entry.Source].
func Decode(r io.Reader, format Format, name string) (Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Dataset{}, fmt.Errorf("read %s: %w", name, err)
	}
	return decodeBytes(data, format, name)
}

func decodeBytes(data []byte, format Format, name string) (Dataset, error) {
	var (
		raw any
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &raw)
	case FormatTOML:
		var m map[string]any
		err = toml.Unmarshal(data, &m)
		raw = m
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		err = dec.Decode(&raw)
	default:
		return Dataset{}, errors.New(errors.ErrCodeInvalidFormat, "unsupported dataset format %q", format)
	}
	if err != nil {
		return Dataset{}, &errors.SchemaError{Source: name, Index: -1, Reason: fmt.Sprintf("malformed %s: %v", format, err)}
	}

	return parseDocument(raw, name)
}

func parseDocument(raw any, source string) (Dataset, error) {
	doc, ok := raw.(map[string]any)
	if !ok {
		return Dataset{}, &errors.SchemaError{Source: source, Index: -1,
			Reason: "top-level document must be a mapping with an 'entries' key"}
	}

	ds := Dataset{Source: source}

	title, ok := doc["title"].(string)
	if !ok {
		return Dataset{}, &errors.SchemaError{Source: source, Index: -1, Field: "title", Reason: "must be a string"}
	}
	ds.Title = title

	if v, present := doc["unit"]; present {
		unit, ok := v.(string)
		if !ok {
			return Dataset{}, &errors.SchemaError{Source: source, Index: -1, Field: "unit", Reason: "must be a string"}
		}
		u, err := units.Lookup(unit)
		if err != nil {
			return Dataset{}, fmt.Errorf("%s: %w", source, err)
		}
		ds.Unit = u.Symbol
	}

	if v, present := doc["category"]; present {
		category, ok := v.(string)
		if !ok {
			return Dataset{}, &errors.SchemaError{Source: source, Index: -1, Field: "category", Reason: "must be a string"}
		}
		ds.Category = category
	}

	key := "entries"
	if _, present := doc[key]; !present {
		key = "observables"
	}
	items, ok := asList(doc[key])
	if !ok {
		return Dataset{}, &errors.SchemaError{Source: source, Index: -1, Field: "entries", Reason: "must be a list"}
	}

	ds.Entries = make([]Entry, 0, len(items))
	for i, item := range items {
		e, err := parseEntry(item, i, source, ds.Category)
		if err != nil {
			return Dataset{}, err
		}
		ds.Entries = append(ds.Entries, e)
	}

	// Surface dimension mismatches and out-of-range conversions at load time.
	if _, err := ds.Normalize(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func parseEntry(item any, index int, source, defaultCategory string) (Entry, error) {
	fields, ok := item.(map[string]any)
	if !ok {
		return Entry{}, &errors.SchemaError{Source: source, Index: index, Reason: "must be a mapping"}
	}

	schemaErr := func(label, field, reason string) error {
		return &errors.SchemaError{Source: source, Index: index, Label: label, Field: field, Reason: reason}
	}

	labelKey := "label"
	if _, present := fields[labelKey]; !present {
		labelKey = "name"
	}
	rawLabel, present := fields[labelKey]
	if !present {
		return Entry{}, schemaErr("", "label", "is missing")
	}
	label, ok := rawLabel.(string)
	if !ok {
		return Entry{}, schemaErr("", "label", "must be a string")
	}
	if err := errors.ValidateLabel(label); err != nil {
		return Entry{}, schemaErr(label, "label", errors.UserMessage(err))
	}

	e := Entry{Label: label, Category: defaultCategory, Source: source, Index: index}

	for _, field := range []string{"value", "unit"} {
		if _, present := fields[field]; !present {
			return Entry{}, schemaErr(label, field, "is missing")
		}
	}

	value, err := parseValue(fields["value"])
	if err != nil {
		if errors.Is(err, errors.ErrCodeSchema) {
			return Entry{}, schemaErr(label, "value", "must be a number")
		}
		return Entry{}, &errors.EntryError{Source: source, Index: index, Label: label, Err: err}
	}
	e.Value = value

	unit, ok := fields["unit"].(string)
	if !ok {
		return Entry{}, schemaErr(label, "unit", "must be a string")
	}
	u, err := units.Lookup(unit)
	if err != nil {
		return Entry{}, &errors.EntryError{Source: source, Index: index, Label: label, Err: err}
	}
	e.Unit = u.Symbol

	optional := []struct {
		field string
		dst   *string
	}{
		{"category", &e.Category},
		{"description", &e.Description},
	}
	for _, opt := range optional {
		v, present := fields[opt.field]
		if !present {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return Entry{}, schemaErr(label, opt.field, "must be a string")
		}
		*opt.dst = s
	}

	return e, nil
}

// parseValue accepts every numeric representation the decoders produce, plus
// numeric strings. Booleans and composite values are schema violations.
func parseValue(v any) (float64, error) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return units.ParseValue(n.String())
	case string:
		return units.ParseValue(n)
	default:
		return 0, errors.New(errors.ErrCodeSchema, "value must be a number")
	}
	if err := units.ValidateValue(f); err != nil {
		return 0, err
	}
	return f, nil
}

// asList accepts both generic lists and the typed table arrays produced by
// the TOML decoder.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	}
	return nil, false
}

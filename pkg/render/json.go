package render

import (
	"encoding/json"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	ticks  bool
	source bool
}

// WithJSONTicks includes the axis ticks of every section.
func WithJSONTicks() JSONOption { return func(r *jsonRenderer) { r.ticks = true } }

// WithJSONSource includes per-entry provenance (source name and declaration
// index) in the output.
func WithJSONSource() JSONOption { return func(r *jsonRenderer) { r.source = true } }

type jsonOutput struct {
	Title    string        `json:"title"`
	Count    int           `json:"count"`
	Sections []jsonSection `json:"sections"`
}

type jsonSection struct {
	Title       string      `json:"title"`
	Unit        string      `json:"unit"`
	MinExponent int         `json:"min_exponent"`
	MaxExponent int         `json:"max_exponent"`
	Lanes       int         `json:"lanes"`
	Ticks       []jsonTick  `json:"ticks,omitempty"`
	Entries     []jsonEntry `json:"entries"`
}

type jsonTick struct {
	Exponent int     `json:"exponent"`
	Position float64 `json:"position"`
}

type jsonEntry struct {
	Label       string  `json:"label"`
	Value       float64 `json:"value"`
	Unit        string  `json:"unit"`
	BaseValue   float64 `json:"base_value"`
	Exponent    int     `json:"exponent"`
	Mantissa    string  `json:"mantissa"`
	Display     int     `json:"display_exponent"`
	Position    float64 `json:"position"`
	Lane        int     `json:"lane"`
	Category    string  `json:"category,omitempty"`
	Description string  `json:"description,omitempty"`
	Source      string  `json:"source,omitempty"`
	Index       *int    `json:"index,omitempty"`
}

// RenderJSON exports the laid-out document as a pretty-printed JSON document
// for tooling that wants positions and lanes without the page markup. The
// output is deterministic for identical input.
func RenderJSON(doc Document, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}
	out := jsonOutput{Title: title, Count: doc.EntryCount(), Sections: make([]jsonSection, 0, len(doc.Sections))}

	for _, s := range doc.Sections {
		js := jsonSection{
			Title:       s.Title,
			Unit:        s.Unit,
			MinExponent: s.Scale.MinExponent,
			MaxExponent: s.Scale.MaxExponent,
			Lanes:       s.Lanes(),
			Entries:     make([]jsonEntry, 0, len(s.Entries)),
		}
		if r.ticks {
			for _, t := range s.Scale.Ticks() {
				js.Ticks = append(js.Ticks, jsonTick{Exponent: t.Exponent, Position: t.Position})
			}
		}
		for _, e := range s.Entries {
			je := jsonEntry{
				Label:       e.Label,
				Value:       e.Value,
				Unit:        e.Unit,
				BaseValue:   e.BaseValue,
				Exponent:    e.Exponent,
				Mantissa:    e.Mantissa,
				Display:     e.DisplayExponent,
				Position:    e.Position,
				Lane:        e.Lane,
				Category:    e.Category,
				Description: e.Description,
			}
			if r.source {
				idx := e.Index
				je.Source, je.Index = e.Source, &idx
			}
			js.Entries = append(js.Entries, je)
		}
		out.Sections = append(out.Sections, js)
	}

	return json.MarshalIndent(out, "", "  ")
}

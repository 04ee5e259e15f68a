package render

import (
	"html"
	"strconv"
	"strings"

	"github.com/matzehuels/magnitude/pkg/layout"
	"github.com/matzehuels/magnitude/pkg/scale"
)

// Artifact is the rendered output: the page markup and its stylesheet.
type Artifact struct {
	Markup     []byte
	Stylesheet []byte
}

// Render fills tmpl with doc. Output is byte-identical for identical input.
//
// Page placeholders: title, css_href, sections, count, section_count.
// Section placeholders: title, slug, unit, source, lanes, count, min_exponent,
// max_exponent, ticks, entries.
// Entry placeholders: label, position, percent, lane, category, exponent,
// display_exponent, mantissa, unit, description, value, original, index.
// Tick placeholders: exponent, position, percent, label.
// Stylesheet placeholders: lanes, section_count.
//
// Text values are HTML-escaped. Unknown placeholders, and fragments lacking
// a placeholder [Template.Validate] requires, fail with [errors.TemplateError].
func Render(doc Document, tmpl Template) (Artifact, error) {
	if err := tmpl.Validate(); err != nil {
		return Artifact{}, err
	}

	title := doc.Title
	if title == "" {
		title = DefaultTitle
	}

	slugs := doc.slugs()
	sections := make([]string, 0, len(doc.Sections))
	for i, s := range doc.Sections {
		out, err := renderSection(s, slugs[i], tmpl)
		if err != nil {
			return Artifact{}, err
		}
		sections = append(sections, out)
	}

	markup, err := Substitute(FragmentPage, tmpl.Page, map[string]string{
		"title":         html.EscapeString(title),
		"css_href":      html.EscapeString(doc.CSSHref),
		"sections":      strings.Join(sections, "\n\n"),
		"count":         itoa(doc.EntryCount()),
		"section_count": itoa(len(doc.Sections)),
	})
	if err != nil {
		return Artifact{}, err
	}

	stylesheet, err := Substitute(FragmentStylesheet, tmpl.Stylesheet, map[string]string{
		"lanes":         itoa(max(doc.MaxLanes(), 1)),
		"section_count": itoa(len(doc.Sections)),
	})
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{Markup: []byte(markup), Stylesheet: []byte(stylesheet)}, nil
}

func renderSection(s Section, slug string, tmpl Template) (string, error) {
	ticks := make([]string, 0, s.Scale.Span()+1)
	for _, t := range s.Scale.Ticks() {
		out, err := renderTick(t, tmpl)
		if err != nil {
			return "", err
		}
		ticks = append(ticks, out)
	}

	entries := make([]string, 0, len(s.Entries))
	for i, e := range s.Entries {
		out, err := renderEntry(i, e, tmpl)
		if err != nil {
			return "", err
		}
		entries = append(entries, out)
	}

	return Substitute(FragmentSection, strings.TrimRight(tmpl.Section, "\n"), map[string]string{
		"title":        html.EscapeString(s.Title),
		"slug":         slug,
		"unit":         html.EscapeString(s.Unit),
		"source":       html.EscapeString(s.Source),
		"lanes":        itoa(max(s.Lanes(), 1)),
		"count":        itoa(len(s.Entries)),
		"min_exponent": itoa(s.Scale.MinExponent),
		"max_exponent": itoa(s.Scale.MaxExponent),
		"ticks":        strings.Join(ticks, "\n"),
		"entries":      strings.Join(entries, "\n"),
	})
}

func renderEntry(index int, e layout.PlacedEntry, tmpl Template) (string, error) {
	unit := html.EscapeString(e.BaseUnit)
	value := e.Mantissa + " &times; 10<sup>" + itoa(e.DisplayExponent) + "</sup> " + unit
	original := strconv.FormatFloat(e.Value, 'g', -1, 64) + " " + html.EscapeString(e.Unit)

	return Substitute(FragmentEntry, strings.TrimRight(tmpl.Entry, "\n"), map[string]string{
		"label":            html.EscapeString(e.Label),
		"position":         fixed(e.Position, 4),
		"percent":          fixed(e.Position*100, 2),
		"lane":             itoa(e.Lane),
		"category":         html.EscapeString(e.Category),
		"exponent":         itoa(e.Exponent),
		"display_exponent": itoa(e.DisplayExponent),
		"mantissa":         e.Mantissa,
		"unit":             unit,
		"description":      html.EscapeString(e.Description),
		"value":            value,
		"original":         original,
		"index":            itoa(index),
	})
}

func renderTick(t scale.Tick, tmpl Template) (string, error) {
	return Substitute(FragmentTick, strings.TrimRight(tmpl.Tick, "\n"), map[string]string{
		"exponent": itoa(t.Exponent),
		"position": fixed(t.Position, 4),
		"percent":  fixed(t.Position*100, 2),
		"label":    html.EscapeString(t.Label),
	})
}

func itoa(n int) string { return strconv.Itoa(n) }

func fixed(v float64, prec int) string { return strconv.FormatFloat(v, 'f', prec, 64) }

package render

import (
	"strings"
	"unicode"

	"github.com/matzehuels/magnitude/pkg/layout"
	"github.com/matzehuels/magnitude/pkg/scale"
)

// DefaultTitle is the page title used when a document has none.
const DefaultTitle = "Orders of Magnitude"

// Document is a fully laid-out page ready for rendering.
type Document struct {
	Title    string
	CSSHref  string // Stylesheet href as written into the page
	Sections []Section
}

// Section is one dataset placed on its own scale.
type Section struct {
	Title   string
	Unit    string // Base unit of every entry
	Source  string
	Scale   scale.Scale
	Entries []layout.PlacedEntry // In layout order
}

// Lanes returns the number of lanes the section uses.
func (s Section) Lanes() int {
	return layout.LaneCount(s.Entries)
}

// EntryCount returns the number of entries across all sections.
func (d Document) EntryCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}

// MaxLanes returns the largest lane count of any section.
func (d Document) MaxLanes() int {
	n := 0
	for _, s := range d.Sections {
		n = max(n, s.Lanes())
	}
	return n
}

// slugs returns an HTML id per section, unique within the document. Repeats
// get the first free "-N" suffix, skipping ids other titles already took.
func (d Document) slugs() []string {
	out := make([]string, len(d.Sections))
	taken := map[string]bool{}
	next := map[string]int{}
	for i, s := range d.Sections {
		base := slugify(s.Title)
		if base == "" {
			base = "section"
		}
		slug := base
		for n := max(next[base], 1); taken[slug]; {
			n++
			slug = base + "-" + itoa(n)
			next[base] = n
		}
		taken[slug] = true
		out[i] = slug
	}
	return out
}

func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

package pipeline

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/magnitude/pkg/render"
)

// Document assembles the page for laid-out sections.
func Document(sections []render.Section, opts Options) render.Document {
	return render.Document{
		Title:    opts.Title,
		CSSHref:  opts.StylesheetHref(),
		Sections: sections,
	}
}

// Render generates output artifacts in the requested formats, keyed by
// format. The HTML artifact is the JSON encoding of a [render.Artifact] so
// that page and stylesheet travel together.
func Render(doc render.Document, tmpl render.Template, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatHTML:
			var art render.Artifact
			if art, err = render.Render(doc, tmpl); err == nil {
				data, err = json.Marshal(art)
			}
		case FormatJSON:
			data, err = render.RenderJSON(doc, render.WithJSONTicks(), render.WithJSONSource())
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

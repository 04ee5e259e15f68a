package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/magnitude/pkg/dataset"
	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/layout"
	"github.com/matzehuels/magnitude/pkg/scale"
)

func testDocument(t *testing.T) Document {
	t.Helper()
	entries, err := dataset.Normalize([]dataset.Entry{
		{Label: "atom", Value: 1e-10, Unit: "m", Category: "physics", Source: "l.yml", Index: 0},
		{Label: "football field", Value: 105, Unit: "m", Source: "l.yml", Index: 1},
		{Label: `Earth "diameter" <approx>`, Value: 12742, Unit: "km", Description: "R&D", Source: "l.yml", Index: 2},
	}, "m")
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	s, err := scale.FromEntries("Lengths", entries)
	if err != nil {
		t.Fatalf("FromEntries: %v", err)
	}
	placed, err := layout.Resolve(entries, s, 0.05)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	return Document{
		Title:    "Orders & Scales",
		CSSHref:  "css/site.css",
		Sections: []Section{{Title: "Lengths", Unit: "m", Source: "l.yml", Scale: s, Entries: placed}},
	}
}

func TestRenderDeterministic(t *testing.T) {
	doc := testDocument(t)
	tmpl := DefaultTemplate()

	first, err := Render(doc, tmpl)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := Render(doc, tmpl)
		if err != nil {
			t.Fatalf("Render: %v", err)
		}
		if !bytes.Equal(first.Markup, again.Markup) || !bytes.Equal(first.Stylesheet, again.Stylesheet) {
			t.Fatal("render output differs between runs")
		}
	}
}

func TestRenderDefaultTemplate(t *testing.T) {
	art, err := Render(testDocument(t), DefaultTemplate())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	markup := string(art.Markup)

	for _, want := range []string{
		"<title>Orders &amp; Scales</title>",
		`href="css/site.css"`,
		`<section class="dataset" id="lengths">`,
		"Earth &#34;diameter&#34; &lt;approx&gt;",
		"R&amp;D",
		"1.27 &times; 10<sup>7</sup> m",
		`data-position="0.7059"`,
		"--position: 70.59%",
		"10<sup>-10</sup> to 10<sup>7</sup> m",
		"3 quantities in 1 scales",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("markup missing %q", want)
		}
	}
	if strings.Contains(markup, "{{") {
		t.Error("markup contains unsubstituted placeholders")
	}
	if got := strings.Count(markup, `<li class="tick"`); got != 18 {
		t.Errorf("got %d ticks, want 18", got)
	}
	// Blocks are indented to the placeholder's column.
	if !strings.Contains(markup, "\n      <section class=\"dataset\"") {
		t.Error("section block not indented")
	}
	if !strings.Contains(string(art.Stylesheet), "--max-lanes: 1;") {
		t.Errorf("stylesheet lanes not substituted")
	}
	if !strings.Contains(string(art.Stylesheet), "var(--lanes, var(--max-lanes))") {
		t.Error("scale height does not fall back to --max-lanes")
	}
}

func TestRenderMissingPlaceholder(t *testing.T) {
	tmpl := DefaultTemplate()
	tmpl.Entry = `<li data-lane="{{ lane }}" data-category="{{ category }}" style="--position: {{ percent }}%">{{ label }} {{ weight }}</li>`

	_, err := Render(testDocument(t), tmpl)
	var te *errors.TemplateError
	if !asTemplateError(err, &te) {
		t.Fatalf("err = %v, want TemplateError", err)
	}
	if te.Template != FragmentEntry || te.Placeholder != "weight" {
		t.Errorf("got %+v", te)
	}
}

func TestRenderRequiredPlaceholders(t *testing.T) {
	tests := []struct {
		name        string
		edit        func(*Template)
		fragment    string
		placeholder string
	}{
		{"static page", func(tm *Template) { tm.Page = "<html><body>static</body></html>" }, FragmentPage, "sections"},
		{"page without stylesheet", func(tm *Template) { tm.Page = "<main>{{ sections }}</main>" }, FragmentPage, "css_href"},
		{"section without entries", func(tm *Template) { tm.Section = `<section id="{{ slug }}">{{ ticks }}</section>` }, FragmentSection, "entries"},
		{"static entry", func(tm *Template) { tm.Entry = "<li>nothing</li>" }, FragmentEntry, "label"},
		{"entry without position", func(tm *Template) {
			tm.Entry = `<li class="lane-{{ lane }} {{ category }}">{{ label }}</li>`
		}, FragmentEntry, "position"},
		{"entry without lane", func(tm *Template) {
			tm.Entry = `<li style="left: {{ percent }}%" data-category="{{ category }}">{{ label }}</li>`
		}, FragmentEntry, "lane"},
		{"entry without category", func(tm *Template) {
			tm.Entry = `<li data-position="{{ position }}" data-lane="{{ lane }}">{{ label }}</li>`
		}, FragmentEntry, "category"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := DefaultTemplate()
			tt.edit(&tmpl)

			art, err := Render(testDocument(t), tmpl)
			var te *errors.TemplateError
			if !asTemplateError(err, &te) {
				t.Fatalf("err = %v, want TemplateError", err)
			}
			if te.Template != tt.fragment || te.Placeholder != tt.placeholder {
				t.Errorf("got %+v, want %s/%s", te, tt.fragment, tt.placeholder)
			}
			if !strings.Contains(te.Error(), "required") {
				t.Errorf("message %q does not say required", te.Error())
			}
			if len(art.Markup) != 0 {
				t.Error("markup produced for an invalid template")
			}
		})
	}
}

func TestValidateDefaultTemplate(t *testing.T) {
	if err := DefaultTemplate().Validate(); err != nil {
		t.Fatalf("default template invalid: %v", err)
	}
	tmpl := DefaultTemplate()
	tmpl.Entry = `<li data-position="{{ position }}" data-lane="{{ lane }}" data-category="{{ category }}">{{ label }}</li>`
	if err := tmpl.Validate(); err != nil {
		t.Errorf("position alone should satisfy the entry fragment: %v", err)
	}
}

func asTemplateError(err error, target **errors.TemplateError) bool {
	te, ok := err.(*errors.TemplateError)
	if ok {
		*target = te
	}
	return ok
}

func TestRenderEmptyDocument(t *testing.T) {
	art, err := Render(Document{}, DefaultTemplate())
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(art.Markup), "<title>"+DefaultTitle+"</title>") {
		t.Error("default title not used")
	}
}

func TestSlugsUnique(t *testing.T) {
	doc := Document{Sections: []Section{{Title: "Times"}, {Title: "times!"}, {Title: "***"}}}
	got := strings.Join(doc.slugs(), ",")
	if got != "times,times-2,section" {
		t.Errorf("slugs = %s", got)
	}

	clash := Document{Sections: []Section{{Title: "Times"}, {Title: "Times"}, {Title: "Times 2"}, {Title: "Times"}}}
	got = strings.Join(clash.slugs(), ",")
	if got != "times,times-2,times-2-2,times-3" {
		t.Errorf("slugs = %s", got)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tick.html"), []byte("<i>{{ exponent }}</i>"), 0o644); err != nil {
		t.Fatal(err)
	}
	tmpl, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	if tmpl.Tick != "<i>{{ exponent }}</i>" {
		t.Errorf("tick override not applied: %q", tmpl.Tick)
	}
	if tmpl.Page != DefaultTemplate().Page {
		t.Error("page should fall back to the default")
	}

	bad := t.TempDir()
	if err := os.WriteFile(filepath.Join(bad, "page.html"), []byte("<html><body>static</body></html>"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = LoadDir(bad)
	if !errors.Is(err, errors.ErrCodeTemplate) {
		t.Fatalf("LoadDir(static page) err = %v, want TEMPLATE", err)
	}

	missing := filepath.Join(dir, "nope")
	_, err = LoadDir(missing)
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Fatalf("err = %v, want FILE_NOT_FOUND", err)
	}
	if !strings.Contains(errors.UserMessage(err), missing) {
		t.Errorf("message %q does not name the path", errors.UserMessage(err))
	}
}

func TestStylesheetHref(t *testing.T) {
	tests := []struct {
		html, css, want string
	}{
		{"out/index.html", "out/style.css", "style.css"},
		{"out/index.html", "out/css/style.css", "css/style.css"},
		{"out/site/index.html", "out/style.css", "../style.css"},
		{"index.html", "style.css", "style.css"},
	}
	for _, tt := range tests {
		t.Run(tt.html+"->"+tt.css, func(t *testing.T) {
			if got := StylesheetHref(tt.html, tt.css); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderJSON(t *testing.T) {
	doc := testDocument(t)
	data, err := RenderJSON(doc, WithJSONTicks(), WithJSONSource())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}
	again, _ := RenderJSON(doc, WithJSONTicks(), WithJSONSource())
	if !bytes.Equal(data, again) {
		t.Error("JSON output differs between runs")
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 3 || len(out.Sections) != 1 {
		t.Fatalf("got %+v", out)
	}
	sec := out.Sections[0]
	if len(sec.Ticks) != 18 || sec.MinExponent != -10 || sec.MaxExponent != 7 {
		t.Errorf("section = %+v", sec)
	}
	if e := sec.Entries[2]; e.Exponent != 7 || e.Position != 1 || e.Source != "l.yml" || e.Index == nil || *e.Index != 2 {
		t.Errorf("entry = %+v", e)
	}

	plain, _ := RenderJSON(doc)
	if bytes.Contains(plain, []byte(`"ticks"`)) || bytes.Contains(plain, []byte(`"source"`)) {
		t.Error("ticks and source should be omitted by default")
	}
}

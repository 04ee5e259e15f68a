package render

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/magnitude/pkg/errors"
)

// Fragment names.
const (
	FragmentPage       = "page"
	FragmentSection    = "section"
	FragmentEntry      = "entry"
	FragmentTick       = "tick"
	FragmentStylesheet = "stylesheet"
)

// Fragment file names inside a template directory.
var fragmentFiles = []struct {
	name, file string
}{
	{FragmentPage, "page.html"},
	{FragmentSection, "section.html"},
	{FragmentEntry, "entry.html"},
	{FragmentTick, "tick.html"},
	{FragmentStylesheet, "style.css"},
}

// requiredPlaceholders lists, per fragment, the placeholders a template must
// use. Each inner slice is satisfied by any one of its names.
var requiredPlaceholders = []struct {
	fragment string
	names    [][]string
}{
	{FragmentPage, [][]string{{"sections"}, {"css_href"}}},
	{FragmentSection, [][]string{{"entries"}}},
	{FragmentEntry, [][]string{{"label"}, {"position", "percent"}, {"lane"}, {"category"}}},
}

//go:embed templates/*
var defaults embed.FS

// Template is a set of fragment templates using {{ name }} placeholders.
// Fragments contain no logic; repetition is driven by the renderer.
type Template struct {
	Page       string
	Section    string
	Entry      string
	Tick       string
	Stylesheet string
}

// DefaultTemplate returns the embedded default fragments.
func DefaultTemplate() Template {
	t, err := LoadFS(defaults, "templates")
	if err != nil {
		// Embedded at build time; cannot be missing.
		panic(err)
	}
	return t
}

// LoadDir reads fragments from dir. Fragments absent from dir fall back to
// the embedded defaults. A missing dir is an error naming the path.
func LoadDir(dir string) (Template, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return Template{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "missing template directory at %s", dir)
	}
	if !info.IsDir() {
		return Template{}, errors.New(errors.ErrCodeInvalidPath, "template path %s is not a directory", dir)
	}

	t := DefaultTemplate()
	for _, f := range fragmentFiles {
		data, err := os.ReadFile(filepath.Join(dir, f.file))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Template{}, err
		}
		*t.field(f.name) = string(data)
	}
	if err := t.Validate(); err != nil {
		return Template{}, err
	}
	return t, nil
}

// LoadFS reads every fragment from dir within fsys. Unlike [LoadDir], all
// fragments must be present.
func LoadFS(fsys fs.FS, dir string) (Template, error) {
	var t Template
	for _, f := range fragmentFiles {
		p := f.file
		if dir != "" && dir != "." {
			p = dir + "/" + f.file
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return Template{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "missing %s template at %s", f.name, p)
		}
		*t.field(f.name) = string(data)
	}
	return t, nil
}

// Validate checks that every fragment uses the placeholders that carry page
// data. A fragment missing one fails with [errors.TemplateError].
func (t Template) Validate() error {
	for _, req := range requiredPlaceholders {
		used := map[string]bool{}
		for _, name := range Placeholders(*t.field(req.fragment)) {
			used[name] = true
		}
		for _, names := range req.names {
			if !usesAny(used, names) {
				return requiredError(req.fragment, names)
			}
		}
	}
	return nil
}

func usesAny(used map[string]bool, names []string) bool {
	for _, n := range names {
		if used[n] {
			return true
		}
	}
	return false
}

func requiredError(fragment string, names []string) error {
	reason := "is required"
	if len(names) > 1 {
		alt := make([]string, 0, len(names)-1)
		for _, n := range names[1:] {
			alt = append(alt, strconv.Quote(n))
		}
		reason = "or " + strings.Join(alt, " or ") + " is required"
	}
	return &errors.TemplateError{Template: fragment, Placeholder: names[0], Reason: reason}
}

// Fragments returns the fragment sources keyed by fragment name, in a fixed
// order suitable for hashing.
func (t Template) Fragments() [][2]string {
	out := make([][2]string, 0, len(fragmentFiles))
	for _, f := range fragmentFiles {
		out = append(out, [2]string{f.name, *t.field(f.name)})
	}
	return out
}

func (t *Template) field(name string) *string {
	switch name {
	case FragmentPage:
		return &t.Page
	case FragmentSection:
		return &t.Section
	case FragmentEntry:
		return &t.Entry
	case FragmentTick:
		return &t.Tick
	default:
		return &t.Stylesheet
	}
}

// DefaultFile returns the raw content of an embedded default fragment file,
// e.g. "style.css".
func DefaultFile(name string) ([]byte, error) {
	return defaults.ReadFile("templates/" + name)
}

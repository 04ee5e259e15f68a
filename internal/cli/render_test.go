package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/magnitude/pkg/observability"
	"github.com/matzehuels/magnitude/pkg/pipeline"
	"github.com/matzehuels/magnitude/pkg/render"
)

// execute runs the root command with args and returns its stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(observability.Reset)
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(redisURLEnv, "")

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to html", "", []string{"html"}},
		{"single format", "json", []string{"json"}},
		{"multiple formats", "html,json", []string{"html", "json"}},
		{"spaces and empties", " html , ,json", []string{"html", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSiblingPath(t *testing.T) {
	tests := []struct{ in, want string }{
		{"orders-of-magnitude.html", "orders-of-magnitude.json"},
		{"public/index.htm", "public/index.json"},
		{"page", "page.json"},
	}
	for _, tt := range tests {
		if got := siblingPath(tt.in, ".json"); got != tt.want {
			t.Errorf("siblingPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputFiles(t *testing.T) {
	result := &pipeline.Result{
		Artifact: render.Artifact{Markup: []byte("<html>"), Stylesheet: []byte("body{}")},
		JSON:     []byte("{}"),
	}
	opts := pipeline.Options{
		Formats:  []string{pipeline.FormatHTML, pipeline.FormatJSON},
		HTMLPath: "out/page.html",
		CSSPath:  "out/page.css",
	}

	files := outputFiles(result, opts, "")
	var got []string
	for _, f := range files {
		got = append(got, f.path+"="+string(f.data))
	}
	want := "out/page.html=<html> out/page.css=body{} out/page.json={}"
	if strings.Join(got, " ") != want {
		t.Errorf("outputFiles() = %v, want %s", got, want)
	}

	files = outputFiles(result, opts, "export.json")
	if files[2].path != "export.json" {
		t.Errorf("explicit json path ignored: %q", files[2].path)
	}
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	html := filepath.Join(dir, "site", "index.html")
	css := filepath.Join(dir, "site", "assets", "style.css")

	if _, err := execute(t, "render", "--html", html, "--css", css, "-f", "html,json", "--title", "Scales"); err != nil {
		t.Fatalf("render error: %v", err)
	}

	page, err := os.ReadFile(html)
	if err != nil {
		t.Fatalf("page not written: %v", err)
	}
	for _, want := range []string{`href="assets/style.css"`, "<title>Scales</title>", "Lengths", "Times"} {
		if !strings.Contains(string(page), want) {
			t.Errorf("page missing %q", want)
		}
	}

	stylesheet, err := os.ReadFile(css)
	if err != nil {
		t.Fatalf("stylesheet not written: %v", err)
	}
	if !strings.Contains(string(stylesheet), "--max-lanes:") {
		t.Error("stylesheet missing lane variable")
	}
	if strings.Contains(string(stylesheet), "{{") {
		t.Error("stylesheet has unsubstituted placeholders")
	}

	if _, err := os.Stat(filepath.Join(dir, "site", "index.json")); err != nil {
		t.Errorf("json export not written: %v", err)
	}
}

func TestRenderCommandIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	var pages [2][]byte
	for i := range pages {
		html := filepath.Join(dir, "page.html")
		if _, err := execute(t, "render", "--no-cache", "--html", html, "--css", filepath.Join(dir, "page.css")); err != nil {
			t.Fatalf("render error: %v", err)
		}
		data, err := os.ReadFile(html)
		if err != nil {
			t.Fatal(err)
		}
		pages[i] = data
	}
	if !bytes.Equal(pages[0], pages[1]) {
		t.Error("two renders of the same input differ")
	}
}

func TestRenderCommandErrors(t *testing.T) {
	dir := t.TempDir()
	dup := filepath.Join(dir, "dup.yml")
	if err := os.WriteFile(dup, []byte(`
title: Dup
entries:
  - {label: Atom, value: 1e-10, unit: m}
  - {label: Atom, value: 2e-10, unit: m}
`), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid format", []string{"render", "-f", "svg"}, "invalid format"},
		{"negative separation", []string{"render", "--min-separation", "-1"}, "separation"},
		{"missing dataset", []string{"render", filepath.Join(dir, "missing.yml")}, "missing dataset"},
		{"duplicate label", []string{"render", "--no-cache", dup}, "Atom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "--html", filepath.Join(dir, "out.html"), "--css", filepath.Join(dir, "out.css"))
			_, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := execute(t, "cache", "path")
	if err != nil {
		t.Fatalf("cache path error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), appName) {
		t.Errorf("cache path = %q", out)
	}
}

func TestCompletionCommand(t *testing.T) {
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "magnitude") {
		t.Error("bash completion should mention the command name")
	}
}

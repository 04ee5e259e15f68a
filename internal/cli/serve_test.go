package cli

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/observability"
	"github.com/matzehuels/magnitude/pkg/pipeline"
)

func newTestRouter(t *testing.T, opts pipeline.Options) http.Handler {
	t.Helper()
	opts.CSSHref = stylesheetRoute
	opts.Formats = []string{pipeline.FormatHTML, pipeline.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("options: %v", err)
	}
	logger := log.New(io.Discard)
	return newPreviewRouter(pipeline.NewRunner(nil, nil, logger), opts, logger)
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestPreviewRoutes(t *testing.T) {
	h := newTestRouter(t, pipeline.Options{})

	tests := []struct {
		path        string
		status      int
		contentType string
		contains    string
	}{
		{"/", http.StatusOK, "text/html; charset=utf-8", `href="/style.css"`},
		{stylesheetRoute, http.StatusOK, "text/css; charset=utf-8", "--max-lanes:"},
		{documentRoute, http.StatusOK, "application/json", `"sections"`},
		{"/healthz", http.StatusOK, "", "ok"},
		{"/missing", http.StatusNotFound, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(t, h, tt.path)
			if rec.Code != tt.status {
				t.Fatalf("GET %s status = %d, want %d", tt.path, rec.Code, tt.status)
			}
			if tt.contentType != "" && rec.Header().Get("Content-Type") != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.contentType)
			}
			if tt.contentType != "" && !strings.HasPrefix(rec.Header().Get("X-Generator"), "magnitude ") {
				t.Errorf("X-Generator = %q", rec.Header().Get("X-Generator"))
			}
			if !strings.Contains(rec.Body.String(), tt.contains) {
				t.Errorf("GET %s body missing %q", tt.path, tt.contains)
			}
		})
	}
}

func TestPreviewRereadsSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yml")
	writeDataset := func(label string) {
		content := "title: Demo\nentries:\n  - {label: " + label + ", value: 1, unit: m}\n"
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	writeDataset("Metre stick")
	h := newTestRouter(t, pipeline.Options{Sources: []string{path}})
	if body := get(t, h, "/").Body.String(); !strings.Contains(body, "Metre stick") {
		t.Fatal("first render missing label")
	}

	writeDataset("Door")
	if body := get(t, h, "/").Body.String(); !strings.Contains(body, "Door") {
		t.Error("edited dataset not picked up on reload")
	}
}

func TestPreviewErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yml")
	if err := os.WriteFile(bad, []byte("title: Bad\nentries:\n  - {label: X, value: -1, unit: m}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		source string
		status int
	}{
		{"missing file", filepath.Join(dir, "missing.yml"), http.StatusNotFound},
		{"invalid value", bad, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t, pipeline.Options{Sources: []string{tt.source}})
			if rec := get(t, h, "/"); rec.Code != tt.status {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errors.New(errors.ErrCodeFileNotFound, "x"), http.StatusNotFound},
		{errors.New(errors.ErrCodeTemplate, "x"), http.StatusUnprocessableEntity},
		{errors.New(errors.ErrCodeInternal, "x"), http.StatusInternalServerError},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, method, path string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, method+" "+path+" "+http.StatusText(status))
}

func TestObserveRequests(t *testing.T) {
	hooks := &recordingHTTPHooks{}
	observability.SetHTTPHooks(hooks)
	t.Cleanup(observability.Reset)

	h := newTestRouter(t, pipeline.Options{})
	get(t, h, "/healthz")
	get(t, h, "/missing")

	want := "GET /healthz OK,GET /missing Not Found"
	if got := strings.Join(hooks.events, ","); got != want {
		t.Errorf("events = %q, want %q", got, want)
	}
}

package cli

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/magnitude/pkg/buildinfo"
	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/observability"
	"github.com/matzehuels/magnitude/pkg/pipeline"
)

const (
	defaultServeAddr = "127.0.0.1:8080"
	stylesheetRoute  = "/style.css"
	documentRoute    = "/document.json"
	shutdownTimeout  = 5 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		flags pipelineFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "serve [dataset...]",
		Short: "Preview the rendered page in a browser",
		Long: `Serve the rendered page, its stylesheet and the JSON export over HTTP.

Sources and templates are read again on every request, so edits show up on
reload. Nothing is written to disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd, args)
			if err != nil {
				return err
			}
			opts.CSSHref = stylesheetRoute
			opts.Formats = []string{pipeline.FormatHTML, pipeline.FormatJSON}
			if err := opts.ValidateAndSetDefaults(); err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), flags.cache)
			if err != nil {
				return err
			}
			defer runner.Close()

			return serve(cmd.Context(), addr, newPreviewRouter(runner, opts, c.Logger), c.Logger)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", defaultServeAddr, "listen address")

	return cmd
}

// serve runs the HTTP server until ctx is cancelled.
func serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "listen on %s", addr)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printSuccess("Serving on %s", StyleLink.Render("http://"+ln.Addr().String()))
	printDetail("Press Ctrl+C to stop")

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Debug("shutting down preview server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return ctx.Err()
}

// =============================================================================
// Preview handlers
// =============================================================================

type previewServer struct {
	runner *pipeline.Runner
	opts   pipeline.Options
	logger *log.Logger
}

// newPreviewRouter returns the preview routes. opts must already be validated.
func newPreviewRouter(runner *pipeline.Runner, opts pipeline.Options, logger *log.Logger) http.Handler {
	s := &previewServer{runner: runner, opts: opts, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(observeRequests)

	r.Get("/", s.page)
	r.Get(stylesheetRoute, s.stylesheet)
	r.Get(documentRoute, s.document)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok\n"))
	})

	return r
}

func (s *previewServer) page(w http.ResponseWriter, r *http.Request) {
	if result, ok := s.execute(w, r); ok {
		write(w, "text/html; charset=utf-8", result.Artifact.Markup)
	}
}

func (s *previewServer) stylesheet(w http.ResponseWriter, r *http.Request) {
	if result, ok := s.execute(w, r); ok {
		write(w, "text/css; charset=utf-8", result.Artifact.Stylesheet)
	}
}

func (s *previewServer) document(w http.ResponseWriter, r *http.Request) {
	if result, ok := s.execute(w, r); ok {
		write(w, "application/json", result.JSON)
	}
}

// execute runs the pipeline for a request, answering with the error on failure.
func (s *previewServer) execute(w http.ResponseWriter, r *http.Request) (*pipeline.Result, bool) {
	result, err := s.runner.Execute(r.Context(), s.opts)
	if err != nil {
		s.logger.Error("render failed", "path", r.URL.Path, "error", err)
		http.Error(w, errors.UserMessage(err), statusFor(err))
		return nil, false
	}
	return result, true
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInternal, "":
		return http.StatusInternalServerError
	default:
		return http.StatusUnprocessableEntity
	}
}

func write(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Generator", buildinfo.Generator())
	w.Write(data)
}

// observeRequests reports every request to the HTTP hooks.
func observeRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

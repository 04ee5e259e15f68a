package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/magnitude/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	pipelineFlags
	formats  string // comma-separated output formats
	jsonPath string // output path of the JSON export
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [dataset...]",
		Short: "Render datasets to an HTML page and stylesheet",
		Long: `Render datasets to an HTML page and stylesheet.

Each dataset (YAML, TOML or JSON) becomes one section of the page with its own
logarithmic axis. Without arguments the embedded lengths and times datasets are
rendered.`,
		Example: `  magnitude render
  magnitude render data/lengths.yml data/times.toml --html public/index.html --css public/style.css
  magnitude render -f html,json --min-separation 0.08`,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := opts.options(cmd, args)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(popts.Formats) == 0 {
				popts.Formats = parseFormats(opts.formats)
			}
			return c.runRender(cmd.Context(), popts, opts)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatHTML, "output format(s): html, json (comma-separated)")
	cmd.Flags().StringVar(&opts.jsonPath, "json", "", "output path of the JSON export (default: next to the page)")

	return cmd
}

// runRender executes the pipeline and writes every requested output.
func (c *CLI) runRender(ctx context.Context, popts pipeline.Options, opts renderOpts) error {
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, os.Stderr, "Rendering "+strings.Join(popts.SourceNames(), ", ")+"...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	paths, err := writeOutputs(result, popts, opts.jsonPath)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Wrote %d files", len(paths)))

	printSuccess("Rendered %s", popts.Title)
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats, result.CacheInfo)
	printNextStep("Preview", appName+" serve")
	return nil
}

// outputFile is one file produced by the render command.
type outputFile struct {
	path string
	data []byte
}

// outputFiles lists the files to write for the requested formats.
func outputFiles(result *pipeline.Result, opts pipeline.Options, jsonPath string) []outputFile {
	var files []outputFile
	for _, format := range opts.Formats {
		switch format {
		case pipeline.FormatHTML:
			files = append(files,
				outputFile{opts.HTMLPath, result.Artifact.Markup},
				outputFile{opts.CSSPath, result.Artifact.Stylesheet},
			)
		case pipeline.FormatJSON:
			if jsonPath == "" {
				jsonPath = siblingPath(opts.HTMLPath, ".json")
			}
			files = append(files, outputFile{jsonPath, result.JSON})
		}
	}
	return files
}

// writeOutputs writes the rendered artifacts and returns the written paths.
func writeOutputs(result *pipeline.Result, opts pipeline.Options, jsonPath string) ([]string, error) {
	files := outputFiles(result, opts, jsonPath)
	paths := make([]string, 0, len(files))
	for _, f := range files {
		if err := writeFile(f.path, f.data); err != nil {
			return paths, err
		}
		paths = append(paths, f.path)
	}
	return paths, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// siblingPath swaps the extension of path.
func siblingPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}

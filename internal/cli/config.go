package cli

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/magnitude/pkg/errors"
	"github.com/matzehuels/magnitude/pkg/pipeline"
)

// defaultConfigFile is read from the working directory when --config is not given.
const defaultConfigFile = appName + ".toml"

// fileConfig is the content of a magnitude.toml project file.
//
//	title = "Orders of Magnitude"
//	sources = ["data/lengths.yml", "data/times.yml"]
//	min_separation = 0.05
//	templates = "templates"
//	html = "public/index.html"
//	css = "public/style.css"
//	formats = ["html", "json"]
//
// Relative paths are resolved against the directory holding the file.
type fileConfig struct {
	Title         string   `toml:"title"`
	Sources       []string `toml:"sources"`
	MinSeparation float64  `toml:"min_separation"`
	Templates     string   `toml:"templates"`
	HTML          string   `toml:"html"`
	CSS           string   `toml:"css"`
	Formats       []string `toml:"formats"`
	RedisURL      string   `toml:"redis_url"`
}

// loadConfig reads a project file. A missing default file yields an empty
// config; a missing explicit file is an error.
func loadConfig(path string) (fileConfig, string, error) {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	var cfg fileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			if explicit {
				return fileConfig{}, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "missing config file at %s", path)
			}
			return fileConfig{}, "", nil
		}
		return fileConfig{}, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fileConfig{}, "", errors.New(errors.ErrCodeInvalidInput, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	cfg.resolvePaths(filepath.Dir(path))
	return cfg, path, nil
}

func (cfg *fileConfig) resolvePaths(dir string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	for i, s := range cfg.Sources {
		cfg.Sources[i] = resolve(s)
	}
	cfg.Templates = resolve(cfg.Templates)
	cfg.HTML = resolve(cfg.HTML)
	cfg.CSS = resolve(cfg.CSS)
}

// =============================================================================
// Shared pipeline flags
// =============================================================================

// pipelineFlags are the flags every command running the pipeline accepts.
type pipelineFlags struct {
	config        string
	title         string
	minSeparation float64
	templates     string
	html          string
	css           string
	refresh       bool
	cache         cacheFlags
}

func (f *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.config, "config", "c", "", "project file (default ./"+defaultConfigFile+" if present)")
	cmd.Flags().StringVar(&f.title, "title", "", "page title")
	cmd.Flags().Float64Var(&f.minSeparation, "min-separation", pipeline.DefaultMinSeparation, "minimum axis distance between entries sharing a lane, as a fraction of the axis; 0 selects the default")
	cmd.Flags().StringVar(&f.templates, "templates", "", "directory overriding the embedded templates")
	cmd.Flags().StringVar(&f.html, "html", pipeline.DefaultHTMLPath, "output path of the page")
	cmd.Flags().StringVar(&f.css, "css", pipeline.DefaultCSSPath, "output path of the stylesheet")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	f.cache.register(cmd)
}

// options merges the project file with command-line flags. Flags the user
// set explicitly win over the file; positional sources replace its sources.
func (f *pipelineFlags) options(cmd *cobra.Command, args []string) (pipeline.Options, error) {
	cfg, path, err := loadConfig(f.config)
	if err != nil {
		return pipeline.Options{}, err
	}
	if path != "" {
		loggerFromContext(cmd.Context()).Debug("loaded config", "path", path)
	}

	changed := func(name string) bool { return cmd.Flags().Changed(name) }
	pick := func(flag, flagValue, fileValue string) string {
		if changed(flag) || fileValue == "" {
			return flagValue
		}
		return fileValue
	}

	opts := pipeline.Options{
		Sources:       cfg.Sources,
		Refresh:       f.refresh,
		MinSeparation: f.minSeparation,
		Formats:       cfg.Formats,
		Title:         pick("title", f.title, cfg.Title),
		HTMLPath:      pick("html", f.html, cfg.HTML),
		CSSPath:       pick("css", f.css, cfg.CSS),
		TemplateDir:   pick("templates", f.templates, cfg.Templates),
		Logger:        loggerFromContext(cmd.Context()),
	}
	if len(args) > 0 {
		opts.Sources = args
	}
	if !changed("min-separation") && cfg.MinSeparation != 0 {
		opts.MinSeparation = cfg.MinSeparation
	}
	if f.cache.redisURL == "" {
		f.cache.redisURL = cfg.RedisURL
	}
	return opts, nil
}

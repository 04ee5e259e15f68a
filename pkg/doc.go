// Package pkg provides the core libraries for magnitude, a renderer that
// places real-world quantities on a logarithmic scale.
//
// # Overview
//
// A dataset lists labeled quantities such as the diameter of an atom or the
// age of the universe. Magnitude converts each value into its dimension's
// base unit, positions it by order of magnitude on a shared axis and assigns
// lanes so neighboring labels do not collide. The result is a static HTML
// page and stylesheet.
//
// # Architecture
//
// Data flows through the packages in one direction:
//
//	YAML / TOML / JSON dataset
//	         ↓
//	    [dataset] package (decode, validate, check label uniqueness)
//	         ↓
//	    [units] package (normalize to base unit, compute exponent)
//	         ↓
//	    [scale] package (axis bounds and positions)
//	         ↓
//	    [layout] package (greedy first-fit lane assignment)
//	         ↓
//	    [render] package (template substitution, JSON export)
//	         ↓
//	    HTML + CSS / JSON output
//
// No package imports a later stage. [pipeline] runs the stages with caching
// through the [cache] backends and reports progress through [observability].
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/magnitude/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Sources: []string{"lengths.yml"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("orders-of-magnitude.html", result.Artifact.Markup, 0o644)
//	os.WriteFile("orders-of-magnitude.css", result.Artifact.Stylesheet, 0o644)
//
// # Packages
//
//   - [units]: closed unit table, normalization and scientific notation
//   - [dataset]: dataset documents, embedded defaults and normalized entries
//   - [scale]: logarithmic axis built from entry exponents
//   - [layout]: lane assignment honoring a minimum separation
//   - [render]: placeholder templates, HTML/CSS and JSON output
//   - [pipeline]: load → layout → render orchestration with caching
//   - [cache]: file, Redis and null cache backends
//   - [errors]: error codes and typed domain errors
//   - [observability]: pipeline, cache and HTTP hooks
//   - [buildinfo]: version information injected at build time
//
// [units]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/units
// [dataset]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/dataset
// [scale]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/magnitude/pkg/buildinfo
package pkg

package dataset

import (
	"embed"
	"io/fs"
	"os"
	"path"

	"github.com/matzehuels/magnitude/pkg/errors"
)

//go:embed data/*.yml
var builtin embed.FS

// BuiltinSources lists the embedded datasets in render order.
var BuiltinSources = []string{"data/lengths.yml", "data/times.yml"}

// Load reads every source and returns the merged entry sequence.
func Load(sources ...string) ([]Entry, error) {
	datasets, err := LoadDatasets(sources...)
	if err != nil {
		return nil, err
	}
	return Flatten(datasets), nil
}

// LoadDatasets reads every source from disk, preserving source order, and
// validates label uniqueness across all of them.
func LoadDatasets(sources ...string) ([]Dataset, error) {
	return load(sources, ReadSource)
}

// LoadFS reads sources from fsys.
func LoadFS(fsys fs.FS, sources ...string) ([]Dataset, error) {
	return load(sources, func(name string) ([]byte, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "missing dataset at %s", name)
		}
		return data, nil
	})
}

// Builtin loads the datasets embedded in the binary.
func Builtin() ([]Dataset, error) {
	return LoadFS(builtin, BuiltinSources...)
}

// BuiltinFile returns the raw content of an embedded dataset.
func BuiltinFile(name string) ([]byte, error) {
	data, err := fs.ReadFile(builtin, path.Clean(name))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "missing dataset at %s", name)
	}
	return data, nil
}

// ReadSource reads a dataset file from disk. A missing file is reported
// with [errors.ErrCodeFileNotFound] and names the path.
func ReadSource(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "missing dataset at %s", name)
		}
		return nil, err
	}
	return data, nil
}

// DecodeFile decodes the content of a dataset file, inferring its format
// from the name.
func DecodeFile(name string, data []byte) (Dataset, error) {
	format, err := FormatFromPath(name)
	if err != nil {
		return Dataset{}, err
	}
	return decodeBytes(data, format, name)
}

func load(sources []string, read func(string) ([]byte, error)) ([]Dataset, error) {
	if len(sources) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one dataset source is required")
	}

	datasets := make([]Dataset, 0, len(sources))
	for _, src := range sources {
		if _, err := FormatFromPath(src); err != nil {
			return nil, err
		}
		data, err := read(src)
		if err != nil {
			return nil, err
		}
		ds, err := DecodeFile(src, data)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}

	if err := CheckDuplicates(Flatten(datasets)); err != nil {
		return nil, err
	}
	return datasets, nil
}

// Flatten merges datasets into one sequence: dataset order, then
// declaration order.
func Flatten(datasets []Dataset) []Entry {
	var n int
	for _, ds := range datasets {
		n += len(ds.Entries)
	}
	out := make([]Entry, 0, n)
	for _, ds := range datasets {
		out = append(out, ds.Entries...)
	}
	return out
}

// CheckDuplicates fails with [errors.DuplicateLabelError] on the first entry
// whose label was already used within the same category.
func CheckDuplicates(entries []Entry) error {
	type key struct{ category, label string }
	seen := make(map[key]Entry, len(entries))
	for _, e := range entries {
		k := key{e.Category, e.Label}
		if first, dup := seen[k]; dup {
			return &errors.DuplicateLabelError{
				Label:       e.Label,
				Category:    e.Category,
				Source:      e.Source,
				Index:       e.Index,
				FirstSource: first.Source,
				FirstIndex:  first.Index,
			}
		}
		seen[k] = e
	}
	return nil
}

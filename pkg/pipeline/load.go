package pipeline

import (
	"github.com/matzehuels/magnitude/pkg/dataset"
)

// source is a dataset source and its raw content.
type source struct {
	Name string
	Data []byte
}

// readSources reads the raw content of every configured source.
func readSources(opts Options) ([]source, error) {
	read := dataset.ReadSource
	if opts.UsesBuiltin() {
		read = dataset.BuiltinFile
	}
	names := opts.SourceNames()
	out := make([]source, 0, len(names))
	for _, name := range names {
		if _, err := dataset.FormatFromPath(name); err != nil {
			return nil, err
		}
		data, err := read(name)
		if err != nil {
			return nil, err
		}
		out = append(out, source{Name: name, Data: data})
	}
	return out, nil
}

// decodeSources decodes raw sources and checks label uniqueness across them.
func decodeSources(sources []source) ([]dataset.Dataset, error) {
	datasets := make([]dataset.Dataset, 0, len(sources))
	for _, src := range sources {
		ds, err := dataset.DecodeFile(src.Name, src.Data)
		if err != nil {
			return nil, err
		}
		datasets = append(datasets, ds)
	}
	if err := dataset.CheckDuplicates(dataset.Flatten(datasets)); err != nil {
		return nil, err
	}
	return datasets, nil
}

// Load reads and decodes the configured sources without caching.
func Load(opts Options) ([]dataset.Dataset, error) {
	sources, err := readSources(opts)
	if err != nil {
		return nil, err
	}
	return decodeSources(sources)
}

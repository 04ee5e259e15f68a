package pipeline

import (
	"fmt"

	"github.com/matzehuels/magnitude/pkg/dataset"
	"github.com/matzehuels/magnitude/pkg/layout"
	"github.com/matzehuels/magnitude/pkg/render"
	"github.com/matzehuels/magnitude/pkg/scale"
)

// GenerateLayout places every dataset on its own scale. Each dataset becomes
// one section, in source order.
func GenerateLayout(datasets []dataset.Dataset, opts Options) ([]render.Section, error) {
	sections := make([]render.Section, 0, len(datasets))
	for _, ds := range datasets {
		section, err := LayoutDataset(ds, opts.MinSeparation)
		if err != nil {
			return nil, err
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// LayoutDataset normalizes one dataset, builds its scale and resolves lanes.
func LayoutDataset(ds dataset.Dataset, minSeparation float64) (render.Section, error) {
	entries, err := ds.Normalize()
	if err != nil {
		return render.Section{}, err
	}
	s, err := scale.FromEntries(ds.Title, entries)
	if err != nil {
		return render.Section{}, fmt.Errorf("%s: %w", ds.Source, err)
	}
	placed, err := layout.Resolve(entries, s, minSeparation)
	if err != nil {
		return render.Section{}, err
	}

	unit := ds.Unit
	if len(entries) > 0 {
		unit = entries[0].BaseUnit
	}
	return render.Section{
		Title:   ds.Title,
		Unit:    unit,
		Source:  ds.Source,
		Scale:   s,
		Entries: placed,
	}, nil
}

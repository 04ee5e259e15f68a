package dataset

// Entry is a single labeled quantity as declared in a dataset.
type Entry struct {
	Label       string
	Value       float64
	Unit        string // Canonical unit symbol
	Category    string
	Description string

	Source string // Name of the source the entry was declared in
	Index  int    // Declaration index within Source
}

// Dataset is the content of one source document.
type Dataset struct {
	Title    string
	Unit     string // Optional base unit every entry is normalized into
	Category string // Default category for entries without one
	Source   string
	Entries  []Entry
}

// Format identifies a dataset document encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

package changelog

// DefaultEntryTemplate is the entry template used when nothing else is
// configured.
const DefaultEntryTemplate = "{scope}: {description} ({shortHash})"

// DefaultTitle is the document title used when none is configured.
const DefaultTitle = "Changelog"

// Document is a classified changelog ready for rendering.
// Sections keep configured type order; entries keep commit order.
type Document struct {
	Title           string
	Subtitle        string
	BreakingChanges []string
	Sections        []Section
	OtherChanges    []string
}

// Section is one configured commit type and its formatted entries.
type Section struct {
	Title   string
	Entries []string
}

// IsEmpty returns true if the document has no entries at all.
func (d *Document) IsEmpty() bool {
	return d.Count() == 0
}

// Count returns the total number of entries across breaking changes,
// sections and other changes.
func (d *Document) Count() int {
	n := len(d.BreakingChanges) + len(d.OtherChanges)
	for _, s := range d.Sections {
		n += len(s.Entries)
	}
	return n
}

// TypeTitle maps a commit type to the section title it is rendered under.
type TypeTitle struct {
	Type  string
	Title string
}

// Templates holds the per-block entry templates. Blank templates fall back
// to Default.
type Templates struct {
	Section         string
	BreakingChanges string
	OtherTypes      string
	Default         string
}

// Options controls classification.
type Options struct {
	Title               string
	Types               []TypeTitle
	ShowOtherTypes      bool
	ShowBreakingChanges bool
	Templates           Templates
}

// DefaultOptions returns the options used when no configuration is present.
func DefaultOptions() Options {
	return Options{
		Title:          DefaultTitle,
		ShowOtherTypes: true,
		Types: []TypeTitle{
			{Type: "feat", Title: "Features"},
			{Type: "fix", Title: "Bug Fixes"},
		},
		Templates: Templates{Default: DefaultEntryTemplate},
	}
}

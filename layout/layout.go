// Package layout describes the two static-site content layouts the editor
// understands and detects which one a repository uses.
package layout

import (
	"log/slog"
	"path"

	"github.com/spf13/afero"
)

// Field identifies a header field in emission order.
type Field int

const (
	FieldTitle Field = iota
	FieldSummary
	FieldDate
	FieldTags
	FieldKind
	FieldDraft
)

// Layout is the constant table for one supported content layout. Values are
// selected once at startup and passed to every component that needs them.
type Layout struct {
	Name     string   // "astro" or "hugo"
	Dir      string   // content directory, slash separated, relative to the repo root
	Ext      string   // extension used when writing
	ReadExts []string // extensions accepted for listing and reading

	Fields []Field // header emission order

	SummaryKey      string
	SummaryAltKeys  []string // read-only fallbacks for the summary
	SummaryRequired bool

	DateKey  string   // key written on encode
	DateKeys []string // keys tried on decode, first non-empty wins

	DraftKey      string
	DraftInverted bool // true when the key stores "published" rather than "draft"
}

// Astro keeps posts as .mdx files under src/content/blog and stores an
// inverted published flag instead of draft.
var Astro = Layout{
	Name:            "astro",
	Dir:             "src/content/blog",
	Ext:             ".mdx",
	ReadExts:        []string{".md", ".mdx"},
	Fields:          []Field{FieldTitle, FieldSummary, FieldDate, FieldTags, FieldKind, FieldDraft},
	SummaryKey:      "description",
	SummaryRequired: true,
	DateKey:         "pubDate",
	DateKeys:        []string{"pubDate"},
	DraftKey:        "published",
	DraftInverted:   true,
}

// Hugo keeps posts as .md files under content/blog.
var Hugo = Layout{
	Name:           "hugo",
	Dir:            "content/blog",
	Ext:            ".md",
	ReadExts:       []string{".md"},
	Fields:         []Field{FieldTitle, FieldDate, FieldSummary, FieldTags, FieldKind, FieldDraft},
	SummaryKey:     "summary",
	SummaryAltKeys: []string{"description"},
	DateKey:        "date",
	DateKeys:       []string{"date", "publishDate", "pubDate"},
	DraftKey:       "draft",
}

// All lists the supported layouts.
var All = []Layout{Astro, Hugo}

// ByName returns the layout with the given name.
func ByName(name string) (Layout, bool) {
	for _, l := range All {
		if l.Name == name {
			return l, true
		}
	}
	return Layout{}, false
}

// Detect selects Hugo when its content directory exists on fsys, otherwise
// Astro. Probe errors are treated as "not found".
func Detect(fsys afero.Fs, logger *slog.Logger) Layout {
	if logger == nil {
		logger = slog.Default()
	}
	ok, err := afero.DirExists(fsys, Hugo.Dir)
	if err != nil {
		logger.Warn("layout probe failed, using default", "dir", Hugo.Dir, "layout", Astro.Name, "error", err)
		return Astro
	}
	if ok {
		return Hugo
	}
	return Astro
}

// AcceptsExt reports whether ext may be listed and read under this layout.
func (l Layout) AcceptsExt(ext string) bool {
	for _, e := range l.ReadExts {
		if e == ext {
			return true
		}
	}
	return false
}

// FilePath returns the repo-relative, slash separated path of name.
func (l Layout) FilePath(name string) string {
	return path.Join(l.Dir, name)
}

// Info is the public description of the active layout.
type Info struct {
	Mode      string `json:"mode"`
	BlogDir   string `json:"blogDir"`
	Extension string `json:"extension"`
}

// Info returns the layout name, content directory and write extension.
func (l Layout) Info() Info {
	return Info{Mode: l.Name, BlogDir: l.Dir, Extension: l.Ext}
}

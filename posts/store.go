package posts

import (
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"

	"github.com/eringen/blogeditor/frontmatter"
	"github.com/eringen/blogeditor/layout"
)

// Store reads and writes post files in the layout's content directory. The
// filesystem is rooted at the repository root.
type Store struct {
	fs     afero.Fs
	layout layout.Layout
	logger *slog.Logger
}

// NewStore creates a Store over fsys for the given layout.
func NewStore(fsys afero.Fs, l layout.Layout, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{fs: fsys, layout: l, logger: logger}
}

// Layout returns the layout the store was created with.
func (s *Store) Layout() layout.Layout {
	return s.layout
}

// RelPath returns the repository-relative path of a post file.
func (s *Store) RelPath(name string) string {
	return filepath.FromSlash(s.layout.FilePath(name))
}

// List returns all visible posts ordered by date descending. Posts without
// a usable date sort last.
func (s *Store) List() ([]Summary, error) {
	entries, err := afero.ReadDir(s.fs, s.layout.Dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Summary{}, nil
		}
		return nil, readError(s.layout.Dir, err)
	}

	posts := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Mode().IsRegular() || !s.visible(name) {
			continue
		}
		raw, err := afero.ReadFile(s.fs, s.layout.FilePath(name))
		if err != nil {
			return nil, readError(name, err)
		}
		meta, _, err := frontmatter.Decode(raw, s.layout)
		if err != nil {
			return nil, readError(name, err)
		}
		title := meta.Title
		if title == "" {
			title = name
		}
		posts = append(posts, Summary{File: name, Title: title, PubDate: meta.Date})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PubDate > posts[j].PubDate
	})
	return posts, nil
}

// Read loads a single post. Only the base name of name is used, and hidden
// names or foreign extensions are rejected before touching the filesystem.
func (s *Store) Read(name string) (Post, error) {
	base := filepath.Base(name)
	if base == "." || base == ".." || base == string(filepath.Separator) || strings.HasPrefix(base, ReservedPrefix) {
		return Post{}, validationError("invalid file name", CodeInvalidFileName)
	}
	if !s.layout.AcceptsExt(filepath.Ext(base)) {
		return Post{}, validationError("invalid file type", CodeInvalidFileType)
	}

	raw, err := afero.ReadFile(s.fs, s.layout.FilePath(base))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Post{}, notFoundError(base, err)
		}
		return Post{}, readError(base, err)
	}
	meta, body, err := frontmatter.Decode(raw, s.layout)
	if err != nil {
		return Post{}, readError(base, err)
	}
	return Post{File: base, Data: meta, Content: body}, nil
}

// Write sanitizes slug, validates meta and writes the post, replacing any
// existing file with the same name. It returns the file name.
func (s *Store) Write(slug string, meta frontmatter.Metadata, body string) (string, error) {
	slug, meta, err := s.prepare(slug, meta)
	if err != nil {
		return "", err
	}

	name := slug + s.layout.Ext
	content := frontmatter.Encode(meta, s.layout) + "\n\n" + body + "\n"

	if err := s.fs.MkdirAll(s.layout.Dir, 0o755); err != nil {
		return "", writeError(name, err)
	}
	if err := afero.WriteFile(s.fs, s.layout.FilePath(name), []byte(content), 0o644); err != nil {
		return "", writeError(name, err)
	}
	s.logger.Info("post written", "file", name, "layout", s.layout.Name, "bytes", len(content))
	return name, nil
}

// Check runs the validation Write performs without touching the filesystem.
func (s *Store) Check(slug string, meta frontmatter.Metadata) error {
	_, _, err := s.prepare(slug, meta)
	return err
}

func (s *Store) prepare(slug string, meta frontmatter.Metadata) (string, frontmatter.Metadata, error) {
	slug = Sanitize(slug)
	if slug == "" {
		return "", meta, validationError("slug is required", CodeSlugRequired)
	}
	meta = normalizeMetadata(meta)
	if err := s.validate(meta); err != nil {
		return "", meta, err
	}
	return slug, meta, nil
}

func (s *Store) visible(name string) bool {
	return !strings.HasPrefix(name, ReservedPrefix) && s.layout.AcceptsExt(filepath.Ext(name))
}

func (s *Store) validate(meta frontmatter.Metadata) error {
	err := validation.ValidateStruct(&meta,
		validation.Field(&meta.Title, validation.Required),
		validation.Field(&meta.Date, validation.Required),
		validation.Field(&meta.Summary, validation.When(s.layout.SummaryRequired, validation.Required)),
	)
	if err != nil {
		return goerrors.FromOzzoValidation(err, "missing required fields").
			WithTextCode(CodeMetadataInvalid)
	}
	return nil
}

func normalizeMetadata(m frontmatter.Metadata) frontmatter.Metadata {
	m.Title = strings.TrimSpace(m.Title)
	m.Summary = strings.TrimSpace(m.Summary)
	m.Kind = strings.TrimSpace(m.Kind)
	m.Date = frontmatter.NormalizeDate(m.Date)
	m.Tags = filterEmpty(m.Tags)
	return m
}

// filterEmpty trims tags and drops blank ones, keeping order.
func filterEmpty(vals []string) []string {
	var out []string
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

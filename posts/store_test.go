package posts

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/afero"

	"github.com/eringen/blogeditor/frontmatter"
	"github.com/eringen/blogeditor/layout"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingFs records every filesystem call that reaches the wrapped Fs.
type countingFs struct {
	afero.Fs
	opens  []string
	writes []string
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens = append(c.opens, name)
	return c.Fs.Open(name)
}

func (c *countingFs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	c.writes = append(c.writes, name)
	return c.Fs.OpenFile(name, flag, perm)
}

func (c *countingFs) Create(name string) (afero.File, error) {
	c.writes = append(c.writes, name)
	return c.Fs.Create(name)
}

func (c *countingFs) MkdirAll(path string, perm os.FileMode) error {
	c.writes = append(c.writes, path)
	return c.Fs.MkdirAll(path, perm)
}

func (c *countingFs) Stat(name string) (os.FileInfo, error) {
	c.opens = append(c.opens, name)
	return c.Fs.Stat(name)
}

func writeFile(t *testing.T, fsys afero.Fs, name, content string) {
	t.Helper()
	if err := afero.WriteFile(fsys, name, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	fsys := afero.NewMemMapFs()
	dir := layout.Hugo.Dir
	writeFile(t, fsys, dir+"/a.md", "---\ntitle: Older\ndate: 2024-05-01\n---\nbody\n")
	writeFile(t, fsys, dir+"/b.md", "---\ntitle: Newer\ndate: 2024-06-01\n---\nbody\n")
	writeFile(t, fsys, dir+"/c.md", "---\ntitle: Undated\ndate: whenever\n---\nbody\n")
	writeFile(t, fsys, dir+"/_draft.md", "---\ntitle: Hidden\ndate: 2030-01-01\n---\n")
	writeFile(t, fsys, dir+"/notes.txt", "not a post")
	if err := fsys.MkdirAll(dir+"/nested.md", 0o755); err != nil {
		t.Fatal(err)
	}

	store := NewStore(fsys, layout.Hugo, discardLogger())
	got, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []Summary{
		{File: "b.md", Title: "Newer", PubDate: "2024-06-01"},
		{File: "a.md", Title: "Older", PubDate: "2024-05-01"},
		{File: "c.md", Title: "Undated", PubDate: ""},
	}
	if len(got) != len(want) {
		t.Fatalf("List returned %d posts, want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("post %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestListTitleFallsBackToFileName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, layout.Astro.Dir+"/untitled.mdx", "---\npubDate: 2024-01-01\n---\n")

	got, err := NewStore(fsys, layout.Astro, discardLogger()).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].Title != "untitled.mdx" {
		t.Errorf("List = %#v", got)
	}
}

func TestListAstroReadsBothExtensions(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, layout.Astro.Dir+"/one.md", "---\ntitle: One\npubDate: 2024-01-01\n---\n")
	writeFile(t, fsys, layout.Astro.Dir+"/two.mdx", "---\ntitle: Two\npubDate: 2024-01-02\n---\n")

	got, err := NewStore(fsys, layout.Astro, discardLogger()).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].File != "two.mdx" || got[1].File != "one.md" {
		t.Errorf("List = %#v", got)
	}
}

func TestListMissingDirectory(t *testing.T) {
	got, err := NewStore(afero.NewMemMapFs(), layout.Astro, discardLogger()).List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("List = %#v, want empty non-nil slice", got)
	}
}

func TestListMalformedFileFails(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, layout.Hugo.Dir+"/bad.md", "---\ntitle: [unclosed\n---\n")

	_, err := NewStore(fsys, layout.Hugo, discardLogger()).List()
	if err == nil {
		t.Fatal("expected error")
	}
	if IsValidation(err) {
		t.Errorf("decode failure during listing should be internal, got %v", err)
	}
}

func TestReadScenario(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewStore(fsys, layout.Astro, discardLogger())
	name, err := store.Write("My First Post", frontmatter.Metadata{
		Title:   "My First Post",
		Summary: "intro",
		Date:    "2024-01-15",
	}, "Hello")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if name != "my-first-post.mdx" {
		t.Fatalf("name = %q", name)
	}

	raw, err := afero.ReadFile(fsys, "src/content/blog/my-first-post.mdx")
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "---\n" +
		"title: \"My First Post\"\n" +
		"description: \"intro\"\n" +
		"pubDate: \"2024-01-15\"\n" +
		"---\n\nHello\n"
	if string(raw) != want {
		t.Errorf("file =\n%q\nwant\n%q", raw, want)
	}

	post, err := store.Read("my-first-post.mdx")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if post.File != name || post.Data.Title != "My First Post" || post.Data.Summary != "intro" || post.Data.Date != "2024-01-15" {
		t.Errorf("Read = %#v", post)
	}
	if post.Content != "Hello\n" {
		t.Errorf("Content = %q", post.Content)
	}
}

func TestReadUsesBaseName(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeFile(t, fsys, layout.Hugo.Dir+"/passwd.md", "---\ntitle: Inside\n---\nok\n")
	writeFile(t, fsys, "passwd.md", "---\ntitle: Outside\n---\nsecret\n")

	post, err := NewStore(fsys, layout.Hugo, discardLogger()).Read("../../passwd.md")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if post.File != "passwd.md" || post.Data.Title != "Inside" {
		t.Errorf("Read = %#v", post)
	}
}

func TestReadRejectsWithoutTouchingFilesystem(t *testing.T) {
	tests := []struct {
		name string
		file string
		code string
	}{
		{"reserved prefix", "_draft.md", CodeInvalidFileName},
		{"reserved prefix after traversal", "../_draft.md", CodeInvalidFileName},
		{"empty", "", CodeInvalidFileName},
		{"dot dot", "..", CodeInvalidFileName},
		{"foreign extension", "notes.txt", CodeInvalidFileType},
		{"astro extension on hugo", "post.mdx", CodeInvalidFileType},
		{"no extension", "README", CodeInvalidFileType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := &countingFs{Fs: afero.NewMemMapFs()}
			_, err := NewStore(fsys, layout.Hugo, discardLogger()).Read(tt.file)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var e *goerrors.Error
			if !goerrors.As(err, &e) || e.TextCode != tt.code {
				t.Errorf("code = %v, want %s", err, tt.code)
			}
			if len(fsys.opens)+len(fsys.writes) != 0 {
				t.Errorf("filesystem touched: opens=%v writes=%v", fsys.opens, fsys.writes)
			}
		})
	}
}

func TestReadNotFound(t *testing.T) {
	_, err := NewStore(afero.NewMemMapFs(), layout.Astro, discardLogger()).Read("missing.mdx")
	if !IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestWriteValidation(t *testing.T) {
	valid := frontmatter.Metadata{Title: "T", Summary: "s", Date: "2024-01-01"}
	tests := []struct {
		name   string
		layout layout.Layout
		slug   string
		mutate func(*frontmatter.Metadata)
		code   string
	}{
		{"empty slug", layout.Astro, "", nil, CodeSlugRequired},
		{"slug with nothing usable", layout.Astro, "!!!", nil, CodeSlugRequired},
		{"empty title", layout.Astro, "ok", func(m *frontmatter.Metadata) { m.Title = "" }, CodeMetadataInvalid},
		{"blank title", layout.Hugo, "ok", func(m *frontmatter.Metadata) { m.Title = "   " }, CodeMetadataInvalid},
		{"empty date", layout.Hugo, "ok", func(m *frontmatter.Metadata) { m.Date = "" }, CodeMetadataInvalid},
		{"unparseable date", layout.Hugo, "ok", func(m *frontmatter.Metadata) { m.Date = "soon" }, CodeMetadataInvalid},
		{"astro needs summary", layout.Astro, "ok", func(m *frontmatter.Metadata) { m.Summary = "" }, CodeMetadataInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := &countingFs{Fs: afero.NewMemMapFs()}
			m := valid
			if tt.mutate != nil {
				tt.mutate(&m)
			}
			store := NewStore(fsys, tt.layout, discardLogger())
			if err := store.Check(tt.slug, m); !IsValidation(err) {
				t.Fatalf("Check: expected validation error, got %v", err)
			}
			_, err := store.Write(tt.slug, m, "body")
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var e *goerrors.Error
			if !goerrors.As(err, &e) || e.TextCode != tt.code {
				t.Errorf("code = %v, want %s", err, tt.code)
			}
			if len(fsys.writes) != 0 {
				t.Errorf("filesystem written: %v", fsys.writes)
			}
		})
	}
}

func TestCheckAcceptsValidPostWithoutWriting(t *testing.T) {
	fsys := &countingFs{Fs: afero.NewMemMapFs()}
	store := NewStore(fsys, layout.Hugo, discardLogger())
	meta := frontmatter.Metadata{Title: " T ", Date: "Jan 2, 2024"}
	if err := store.Check("Hello World", meta); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(fsys.opens) != 0 || len(fsys.writes) != 0 {
		t.Errorf("filesystem touched: opens=%v writes=%v", fsys.opens, fsys.writes)
	}
}

func TestWriteHugoWithoutSummary(t *testing.T) {
	fsys := afero.NewMemMapFs()
	name, err := NewStore(fsys, layout.Hugo, discardLogger()).Write("Notes", frontmatter.Metadata{
		Title: "Notes",
		Date:  "2024-02-03T10:00:00Z",
		Tags:  []string{" go ", "", "web"},
		Draft: true,
	}, "text")
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err := afero.ReadFile(fsys, "content/blog/"+name)
	if err != nil {
		t.Fatal(err)
	}
	got := string(raw)
	for _, want := range []string{`date: "2024-02-03"`, `tags: ["go", "web"]`, "draft: true"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in\n%s", want, got)
		}
	}
	if strings.Contains(got, "summary") {
		t.Errorf("unexpected summary in\n%s", got)
	}
}

func TestWriteOverwrites(t *testing.T) {
	fsys := afero.NewMemMapFs()
	store := NewStore(fsys, layout.Hugo, discardLogger())
	m := frontmatter.Metadata{Title: "T", Date: "2024-01-01"}
	if _, err := store.Write("same", m, "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Write("same", m, "second"); err != nil {
		t.Fatal(err)
	}
	post, err := store.Read("same.md")
	if err != nil {
		t.Fatal(err)
	}
	if post.Content != "second\n" {
		t.Errorf("Content = %q", post.Content)
	}
}

func TestRelPath(t *testing.T) {
	store := NewStore(afero.NewMemMapFs(), layout.Astro, discardLogger())
	if got := store.RelPath("x.mdx"); got != "src/content/blog/x.mdx" {
		t.Errorf("RelPath = %q", got)
	}
}

// Package frontmatter encodes and decodes the YAML header block at the top
// of a post file, using the key names of the active layout.
package frontmatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/araddon/dateparse"
	goerrors "github.com/goliatone/go-errors"

	"github.com/eringen/blogeditor/layout"
)

const (
	delimiter       = "---"
	dateLayout      = "2006-01-02"
	invalidTextCode = "FRONTMATTER_INVALID"
)

// Metadata is the structured header of a post.
type Metadata struct {
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Date    string   `json:"date"`
	Tags    []string `json:"tags"`
	Kind    string   `json:"kind"`
	Draft   bool     `json:"draft"`
}

// Encode renders m as a fenced header block for l. The result has no
// trailing newline.
func Encode(m Metadata, l layout.Layout) string {
	lines := []string{delimiter}
	for _, f := range l.Fields {
		switch f {
		case layout.FieldTitle:
			lines = append(lines, "title: "+Quote(m.Title))
		case layout.FieldDate:
			lines = append(lines, l.DateKey+": "+Quote(m.Date))
		case layout.FieldSummary:
			if l.SummaryRequired || m.Summary != "" {
				lines = append(lines, l.SummaryKey+": "+Quote(m.Summary))
			}
		case layout.FieldTags:
			if len(m.Tags) > 0 {
				quoted := make([]string, len(m.Tags))
				for i, t := range m.Tags {
					quoted[i] = Quote(t)
				}
				lines = append(lines, "tags: ["+strings.Join(quoted, ", ")+"]")
			}
		case layout.FieldKind:
			if m.Kind != "" {
				lines = append(lines, "kind: "+Quote(m.Kind))
			}
		case layout.FieldDraft:
			// Absence of the key is the canonical "not a draft".
			if m.Draft {
				lines = append(lines, l.DraftKey+": "+strconv.FormatBool(!l.DraftInverted))
			}
		}
	}
	lines = append(lines, delimiter)
	return strings.Join(lines, "\n")
}

// Quote returns s as a double-quoted YAML scalar.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

// Decode splits raw into its header and body and maps the header onto
// Metadata using l's key names. Leading blank lines of the body are dropped.
func Decode(raw []byte, l layout.Layout) (Metadata, string, error) {
	var data map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(raw), &data)
	if err != nil {
		return Metadata{}, "", goerrors.Wrap(err, goerrors.CategoryBadInput, "parse frontmatter").
			WithTextCode(invalidTextCode)
	}

	m := Metadata{
		Title: stringValue(data["title"]),
		Kind:  stringValue(data["kind"]),
		Tags:  tagsValue(data["tags"]),
		Date:  NormalizeDate(firstValue(data, l.DateKeys)),
	}
	summaryKeys := append([]string{l.SummaryKey}, l.SummaryAltKeys...)
	m.Summary = stringValue(firstValue(data, summaryKeys))

	if v, ok := data[l.DraftKey].(bool); ok {
		m.Draft = v != l.DraftInverted
	}
	return m, trimLeadingBlankLines(string(body)), nil
}

// NormalizeDate converts a header date value to YYYY-MM-DD in UTC. Values
// that cannot be parsed normalize to the empty string.
func NormalizeDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case time.Time:
		if d.IsZero() {
			return ""
		}
		return d.UTC().Format(dateLayout)
	}
	s := strings.TrimSpace(stringValue(v))
	if s == "" {
		return ""
	}
	t, err := dateparse.ParseAny(s)
	if err != nil || t.IsZero() {
		return ""
	}
	return t.UTC().Format(dateLayout)
}

func firstValue(data map[string]any, keys []string) any {
	for _, k := range keys {
		v, ok := data[k]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && s == "" {
			continue
		}
		return v
	}
	return nil
}

func stringValue(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}

func tagsValue(v any) []string {
	switch t := v.(type) {
	case []any:
		tags := make([]string, 0, len(t))
		for _, item := range t {
			if s := stringValue(item); s != "" {
				tags = append(tags, s)
			}
		}
		return tags
	case []string:
		return append([]string{}, t...)
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	default:
		return []string{}
	}
}

func trimLeadingBlankLines(s string) string {
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			if strings.TrimSpace(s) == "" {
				return ""
			}
			return s
		}
		if strings.TrimSpace(s[:i]) != "" {
			return s
		}
		s = s[i+1:]
	}
}

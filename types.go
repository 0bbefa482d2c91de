package blogeditor

import (
	"github.com/eringen/blogeditor/layout"
	"github.com/eringen/blogeditor/posts"
)

// ConfigResponse is the body of GET /api/config.
type ConfigResponse struct {
	OK bool `json:"ok"`
	layout.Info
}

// PostsResponse is the body of GET /api/posts.
type PostsResponse struct {
	OK    bool            `json:"ok"`
	Posts []posts.Summary `json:"posts"`
}

// PostResponse is the body of GET /api/post.
type PostResponse struct {
	OK   bool       `json:"ok"`
	Post posts.Post `json:"post"`
}

// PreviewRequest is the body of POST /api/preview.
type PreviewRequest struct {
	Markdown string `json:"markdown"`
}

// PreviewResponse is the body of a successful preview.
type PreviewResponse struct {
	OK   bool   `json:"ok"`
	HTML string `json:"html"`
}

// SaveResponse is the body of POST /api/save.
type SaveResponse struct {
	OK bool `json:"ok"`
	posts.SaveResult
}

// ErrorResponse is the body of every failed API call. File and Saved are
// set when a save wrote the post but a later git step failed.
type ErrorResponse struct {
	OK      bool              `json:"ok"`
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
	File    string            `json:"file,omitempty"`
	Saved   bool              `json:"saved,omitempty"`
}

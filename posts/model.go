package posts

import "github.com/eringen/blogeditor/frontmatter"

// ReservedPrefix marks hidden files that are never listed or read.
const ReservedPrefix = "_"

// Summary is one entry of a post listing.
type Summary struct {
	File    string `json:"file"`
	Title   string `json:"title"`
	PubDate string `json:"pubDate"`
}

// Post is a decoded post file.
type Post struct {
	File    string               `json:"file"`
	Data    frontmatter.Metadata `json:"data"`
	Content string               `json:"content"`
}

// SaveRequest is the input of a save, optionally followed by commit and push.
type SaveRequest struct {
	Slug string `json:"slug"`
	frontmatter.Metadata
	Content       string `json:"content"`
	CommitMessage string `json:"commitMessage"`
	Commit        bool   `json:"commit"`
	Push          bool   `json:"push"`
}

// SaveResult reports which steps of a save completed. File and Saved are
// set as soon as the file is on disk, even if a later git step fails.
type SaveResult struct {
	File      string `json:"file"`
	Saved     bool   `json:"saved"`
	Committed bool   `json:"committed"`
	Pushed    bool   `json:"pushed"`
	Branch    string `json:"branch,omitempty"`
}

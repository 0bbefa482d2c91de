package blogeditor

import (
	"log/slog"
	"time"

	"github.com/spf13/afero"

	"github.com/eringen/blogeditor/vcs"
)

// EditorConfig holds all configuration for an editor server.
type EditorConfig struct {
	RepoRoot  string // Site repository root (default ".")
	Addr      string // Listen address (default "127.0.0.1:4322")
	StaticDir string // Editor UI files, relative to RepoRoot unless absolute (default "tools/blog-editor/public")

	Layout string // Force "astro" or "hugo" instead of detecting

	Remote     string        // Push remote (default "origin")
	GitBinary  string        // git executable (default "git")
	GitTimeout time.Duration // Limit for the whole git sequence of one save; 0 means none

	GitRateLimit int // Saves that run git, per client per minute (default 10)

	ListCacheTTL time.Duration // Post list cache TTL (default 30s)
	BodyLimit    string        // Max request body (default "4M")
}

func (c *EditorConfig) setDefaults() {
	if c.RepoRoot == "" {
		c.RepoRoot = "."
	}
	if c.Addr == "" {
		c.Addr = "127.0.0.1:4322"
	}
	if c.StaticDir == "" {
		c.StaticDir = "tools/blog-editor/public"
	}
	if c.Remote == "" {
		c.Remote = vcs.DefaultRemote
	}
	if c.GitBinary == "" {
		c.GitBinary = "git"
	}
	if c.GitRateLimit == 0 {
		c.GitRateLimit = 10
	}
	if c.ListCacheTTL == 0 {
		c.ListCacheTTL = 30 * time.Second
	}
	if c.BodyLimit == "" {
		c.BodyLimit = "4M"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithFs replaces the repository filesystem. The filesystem must be rooted
// at the repository root.
func WithFs(fsys afero.Fs) Option {
	return func(a *App) {
		a.fs = fsys
	}
}

// WithRunner replaces the git command runner.
func WithRunner(r vcs.Runner) Option {
	return func(a *App) {
		a.runner = r
	}
}

// WithLogger sets the logger used by the app and its components.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback runs after the built-in routes are registered.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

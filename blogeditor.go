// Package blogeditor is a local editing server for Markdown posts kept in a
// static-site repository. It serves a small JSON API to list, read, preview
// and save posts, and can commit and push each save with git.
//
// The repository layout (Astro or Hugo) is detected once at startup and
// decides where posts live and how their frontmatter is written.
package blogeditor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"

	"github.com/eringen/blogeditor/layout"
	"github.com/eringen/blogeditor/posts"
	"github.com/eringen/blogeditor/vcs"
)

// App is the editor application. It wires together the post service, list
// cache, handlers and middleware.
type App struct {
	Config EditorConfig
	Echo   *echo.Echo
	Logger *slog.Logger
	Layout layout.Layout
	Posts  *posts.Service
	Cache  *ListCache

	fs           afero.Fs
	staticFs     afero.Fs
	runner       vcs.Runner
	gitLimiter   *GitLimiter
	customRoutes []func(*App)
	ready        bool
}

// New creates an editor App with the given configuration.
func New(cfg EditorConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Logger == nil {
		a.Logger = slog.Default()
	}
	return a
}

// Init resolves the layout, builds the post service and registers
// middleware and routes. Start calls it; tests may call it directly and
// drive a.Echo with httptest.
func (a *App) Init() error {
	if a.ready {
		return nil
	}
	if a.fs == nil {
		fsys, root, err := RepoFs(a.Config.RepoRoot)
		if err != nil {
			return err
		}
		a.fs = fsys
		a.Config.RepoRoot = root
	} else if root, err := filepath.Abs(a.Config.RepoRoot); err == nil {
		a.Config.RepoRoot = root
	}
	if filepath.IsAbs(a.Config.StaticDir) {
		a.staticFs = afero.NewBasePathFs(afero.NewOsFs(), a.Config.StaticDir)
	} else {
		a.staticFs = afero.NewBasePathFs(a.fs, a.Config.StaticDir)
	}

	if a.Config.Layout != "" {
		l, ok := layout.ByName(a.Config.Layout)
		if !ok {
			return fmt.Errorf("blogeditor: unknown layout %q", a.Config.Layout)
		}
		a.Layout = l
	} else {
		a.Layout = layout.Detect(a.fs, a.Logger)
	}

	if a.runner == nil {
		a.runner = &vcs.GitRunner{Binary: a.Config.GitBinary, Dir: a.Config.RepoRoot}
	}
	store := posts.NewStore(a.fs, a.Layout, a.Logger)
	seq := vcs.NewSequencer(a.runner, a.Config.Remote, a.Logger)
	a.Posts = posts.NewService(store, seq, a.Logger)
	a.Cache = NewListCache(a.Posts, a.Config.ListCacheTTL)
	a.gitLimiter = NewGitLimiter(a.Config.GitRateLimit, time.Minute)

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}

	a.ready = true
	a.Logger.Info("editor configured",
		"layout", a.Layout.Name,
		"blog_dir", a.Layout.Dir,
		"repo_root", a.Config.RepoRoot,
	)
	return nil
}

// Start initializes the app and serves until the server is closed.
func (a *App) Start() error {
	if err := a.Init(); err != nil {
		return err
	}
	a.Logger.Info("blog editor listening", "addr", "http://"+a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	if a.gitLimiter != nil {
		a.gitLimiter.Close()
	}
	return a.Echo.Shutdown(ctx)
}

// Close stops the server immediately and releases background resources.
func (a *App) Close() error {
	if a.gitLimiter != nil {
		a.gitLimiter.Close()
	}
	return a.Echo.Close()
}

func (a *App) setupRoutes() {
	e := a.Echo

	api := e.Group("/api")
	api.GET("/config", a.handleConfig)
	api.GET("/posts", a.handleListPosts)
	api.GET("/post", a.handleGetPost)
	api.POST("/preview", a.handlePreview)
	api.POST("/save", a.handleSave)

	e.GET("/", a.staticFile("index.html"))
	e.GET("/app.js", a.staticFile("app.js"))
	e.GET("/style.css", a.staticFile("style.css"))
}

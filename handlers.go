package blogeditor

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/labstack/echo/v4"
	"github.com/spf13/afero"

	"github.com/eringen/blogeditor/markdown"
	"github.com/eringen/blogeditor/posts"
)

func (a *App) handleConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, ConfigResponse{OK: true, Info: a.Layout.Info()})
}

func (a *App) handleListPosts(c echo.Context) error {
	list, err := a.Cache.List(c.Request().Context())
	if err != nil {
		return a.respondError(c, err)
	}
	return c.JSON(http.StatusOK, PostsResponse{OK: true, Posts: list})
}

func (a *App) handleGetPost(c echo.Context) error {
	file := strings.TrimSpace(c.QueryParam("file"))
	if file == "" {
		return a.respondError(c, badRequest("Missing file", codeMissingFile))
	}
	post, err := a.Posts.Read(c.Request().Context(), file)
	if err != nil {
		return a.respondError(c, err)
	}
	return c.JSON(http.StatusOK, PostResponse{OK: true, Post: post})
}

func (a *App) handlePreview(c echo.Context) error {
	var req PreviewRequest
	if err := c.Bind(&req); err != nil {
		a.Logger.Debug("preview bind failed", "error", err)
		return a.respondError(c, badRequest("Invalid JSON", codeInvalidJSON))
	}
	html, err := RenderHTML(c.Request().Context(), markdown.Markdown(req.Markdown))
	if err != nil {
		return a.respondError(c, err)
	}
	return c.JSON(http.StatusOK, PreviewResponse{OK: true, HTML: html})
}

func (a *App) handleSave(c echo.Context) error {
	var req posts.SaveRequest
	if err := c.Bind(&req); err != nil {
		a.Logger.Debug("save bind failed", "error", err)
		return a.respondError(c, badRequest("Invalid JSON", codeInvalidJSON))
	}

	if err := a.Posts.Check(req); err != nil {
		return a.respondError(c, err)
	}
	if req.Commit && !a.gitLimiter.Allow(c.RealIP()) {
		return a.respondError(c, goerrors.New("too many git operations, try again later", goerrors.CategoryRateLimit).
			WithTextCode(codeRateLimited))
	}

	ctx := c.Request().Context()
	if a.Config.GitTimeout > 0 && req.Commit {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.GitTimeout)
		defer cancel()
	}

	res, err := a.Posts.Save(ctx, req)
	if res.Saved {
		a.Cache.Invalidate()
	}
	if err != nil {
		status, body := errorResponse(err)
		body.File = res.File
		body.Saved = res.Saved
		return c.JSON(status, body)
	}
	return c.JSON(http.StatusOK, SaveResponse{OK: true, SaveResult: res})
}

// staticFile serves one file of the editor UI.
func (a *App) staticFile(name string) echo.HandlerFunc {
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return func(c echo.Context) error {
		b, err := afero.ReadFile(a.staticFs, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return echo.ErrNotFound
			}
			return err
		}
		return c.Blob(http.StatusOK, contentType, b)
	}
}

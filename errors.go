package blogeditor

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/labstack/echo/v4"

	"github.com/eringen/blogeditor/posts"
)

const (
	codeInvalidJSON = "INVALID_JSON"
	codeMissingFile = "MISSING_FILE"
	codeNotFound    = "NOT_FOUND"
	codeInternal    = "INTERNAL"
	codeRateLimited = "RATE_LIMITED"
)

func badRequest(message, code string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).WithTextCode(code)
}

// errorResponse maps err to an HTTP status and JSON body.
func errorResponse(err error) (int, ErrorResponse) {
	body := ErrorResponse{Error: posts.Message(err)}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		body.Error = strings.TrimSpace(fmt.Sprint(he.Message))
		if he.Code == http.StatusNotFound {
			body.Error = "Not found"
			body.Code = codeNotFound
		}
		return he.Code, body
	}

	var e *goerrors.Error
	if goerrors.As(err, &e) {
		body.Code = e.TextCode
		if m := e.ValidationMap(); len(m) > 0 {
			body.Details = m
		}
	}

	switch {
	case posts.IsValidation(err):
		return http.StatusBadRequest, body
	case posts.IsNotFound(err):
		return http.StatusNotFound, body
	case goerrors.IsCategory(err, goerrors.CategoryRateLimit):
		return http.StatusTooManyRequests, body
	default:
		if body.Code == "" {
			body.Code = codeInternal
		}
		return http.StatusInternalServerError, body
	}
}

func (a *App) respondError(c echo.Context, err error) error {
	status, body := errorResponse(err)
	return c.JSON(status, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	api := strings.HasPrefix(c.Request().URL.Path, "/api/")
	var he *echo.HTTPError
	if api && errors.As(err, &he) && he.Code == http.StatusMethodNotAllowed {
		c.Response().Header().Del(echo.HeaderAllow)
		err = echo.ErrNotFound
	}
	status, body := errorResponse(err)
	if status >= 500 {
		a.Logger.Error("server error", "uri", c.Request().RequestURI, "error", err)
	}
	if !api {
		_ = c.String(status, http.StatusText(status))
		return
	}
	_ = c.JSON(status, body)
}

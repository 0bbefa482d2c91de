package blogeditor

import (
	"context"
	"strings"

	"github.com/a-h/templ"
)

// RenderHTML renders a templ component to a string, for responses that
// carry HTML inside JSON.
func RenderHTML(ctx context.Context, cmp templ.Component) (string, error) {
	var b strings.Builder
	if err := cmp.Render(ctx, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

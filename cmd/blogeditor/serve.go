package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/blogeditor"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		host       string
		port       string
		staticDir  string
		remote     string
		gitTimeout time.Duration
		cacheTTL   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the editor server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := blogeditor.New(blogeditor.EditorConfig{
				RepoRoot:     opts.root,
				Addr:         blogeditor.ListenAddr(host, port),
				StaticDir:    staticDir,
				Layout:       opts.layout,
				Remote:       remote,
				GitTimeout:   gitTimeout,
				ListCacheTTL: cacheTTL,
			}, blogeditor.WithLogger(slog.Default()))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- app.Start() }()

			select {
			case err := <-errc:
				return err
			case <-ctx.Done():
			}

			slog.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := app.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return <-errc
		},
	}
	cmd.Flags().StringVar(&host, "host", blogeditor.EnvOr("HOST", "127.0.0.1"), "listen host")
	cmd.Flags().StringVar(&port, "port", blogeditor.EnvOr("PORT", "4322"), "listen port")
	cmd.Flags().StringVar(&staticDir, "static", "", "editor UI directory (default tools/blog-editor/public under the root)")
	cmd.Flags().StringVar(&remote, "remote", blogeditor.EnvOr("GIT_REMOTE", "origin"), "git remote to push to")
	cmd.Flags().DurationVar(&gitTimeout, "git-timeout", 0, "limit for commit and push of one save (0 for none)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 30*time.Second, "post list cache TTL")
	return cmd
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/eringen/blogeditor"
	"github.com/eringen/blogeditor/layout"
	"github.com/eringen/blogeditor/posts"
)

// resolveLayout opens the repository root and picks the layout the server
// would use.
func resolveLayout(opts *options) (afero.Fs, layout.Layout, error) {
	fsys, _, err := blogeditor.RepoFs(opts.root)
	if err != nil {
		return nil, layout.Layout{}, err
	}
	if opts.layout != "" {
		l, ok := layout.ByName(opts.layout)
		if !ok {
			return nil, layout.Layout{}, fmt.Errorf("unknown layout %q", opts.layout)
		}
		return fsys, l, nil
	}
	return fsys, layout.Detect(fsys, slog.Default()), nil
}

func newLayoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "layout",
		Short: "Print the detected repository layout as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, l, err := resolveLayout(opts)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(l.Info())
		},
	}
}

func newListCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List posts, newest first",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys, l, err := resolveLayout(opts)
			if err != nil {
				return err
			}
			list, err := posts.NewStore(fsys, l, slog.Default()).List()
			if err != nil {
				return fmt.Errorf("list posts: %s", posts.Message(err))
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DATE\tFILE\tTITLE")
			for _, p := range list {
				date := p.PubDate
				if date == "" {
					date = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", date, p.File, p.Title)
			}
			return w.Flush()
		},
	}
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"rime/internal/errors"
	"rime/internal/lister"
	"rime/internal/selection"
	"rime/internal/tags"
	"rime/internal/tui/components"
	"rime/internal/tui/styles"
	"rime/internal/tui/views"

	"github.com/spf13/cobra"
)

func newLsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ls [directory]",
		Short: "Print a directory listing as the browser shows it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.lister()
			if err != nil {
				return err
			}
			entries, err := l.List(opts.startDir(args))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				switch e.Kind {
				case lister.Parent:
					fmt.Fprintf(out, "  %s\n", e.Name)
				case lister.Dir:
					fmt.Fprintf(out, "d %s/\n", e.Name)
				default:
					fmt.Fprintf(out, "- %s\n", e.Name)
				}
			}
			return nil
		},
	}
}

func newSummaryCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <path>...",
		Short: "Select paths and print their tag summary",
		Long: `Select each path, recursively for directories, and print the tags the
selection has in common. Files must match the configured patterns.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := opts.lister()
			if err != nil {
				return err
			}
			set := selection.New(l, tags.NewID3Parser())
			for _, path := range args {
				if err := checkListed(l, path); err != nil {
					return err
				}
				if err := set.Select(path); err != nil {
					return err
				}
			}

			table := components.NewTagTable(styles.FromTheme(opts.cfg.Theme))
			table.SetRows(set.Summary().Rows())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, views.TagsTitle(set.CountSelectedFiles()))
			if n := set.Unreadable(); n > 0 {
				fmt.Fprintf(out, "%d without readable tags\n", n)
			}
			fmt.Fprintln(out, table.View())
			return nil
		},
	}
}

// checkListed rejects a file the browser would never list.
func checkListed(l *lister.Lister, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.FromOS("stat", path, err)
	}
	if info.Mode().IsRegular() && !l.Matches(filepath.Base(path)) {
		return errors.NewFileError("not a recognized audio file", path, errors.InvalidPath, nil)
	}
	return nil
}

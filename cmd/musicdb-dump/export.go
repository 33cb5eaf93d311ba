package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/simonhull/musicdb"
)

func newExportCommand() *cobra.Command {
	var (
		path    string
		output  string
		ids     []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a readable listing of the decoded library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = musicdb.DefaultPath()
			}

			var opts []musicdb.Option
			if verbose {
				opts = append(opts, musicdb.WithLogger(slog.New(
					slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))))
			}

			lib, err := musicdb.Open(path, opts...)
			if err != nil {
				return err
			}

			if len(ids) > 0 {
				filter, err := parseAmbiguousIDs(ids)
				if err != nil {
					return err
				}
				restrict(lib.View, filter)
			}

			dst, err := openDestination(output)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(dst)
			writeListing(w, lib)
			if err := w.Flush(); err != nil {
				return err
			}
			if dst != os.Stdout {
				return dst.Close()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "library file to export (defaults to the current user's)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "destination path, '-' for stdout")
	cmd.Flags().StringSliceVar(&ids, "ids", nil, "restrict the export to these persistent IDs")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log decode diagnostics to stderr")
	return cmd
}

// restrict drops every entity whose persistent ID is not listed.
func restrict(v *musicdb.View, ids []uint64) {
	has := func(raw uint64) bool { return slices.Contains(ids, raw) }

	v.Library = nil
	for id := range v.Albums {
		if !has(uint64(id)) {
			delete(v.Albums, id)
		}
	}
	for id := range v.Artists {
		if !has(uint64(id)) {
			delete(v.Artists, id)
		}
	}
	for id := range v.Tracks {
		if !has(uint64(id)) {
			delete(v.Tracks, id)
		}
	}
	v.Collections = slices.DeleteFunc(v.Collections, func(c *musicdb.Collection) bool {
		return !has(uint64(c.ID))
	})
	v.Accounts = slices.DeleteFunc(v.Accounts, func(a *musicdb.Account) bool {
		return !has(uint64(a.ID))
	})
}

func writeListing(w *bufio.Writer, lib *musicdb.Library) {
	fmt.Fprintf(w, "application version: %s\n", lib.AppVersion)
	fmt.Fprintf(w, "format: %d.%d\n\n", lib.Info.FormatMajor, lib.Info.FormatMinor)

	v := lib.View
	fmt.Fprintf(w, "artists (%d):\n", len(v.Artists))
	for id, a := range v.Artists {
		fmt.Fprintf(w, "\t%s  %s\n", id, a.Name)
	}

	fmt.Fprintf(w, "\nalbums (%d):\n", len(v.Albums))
	for id, a := range v.Albums {
		fmt.Fprintf(w, "\t%s  %s - %s\n", id, a.ArtistName, a.Name)
	}

	fmt.Fprintf(w, "\ntracks (%d):\n", len(v.Tracks))
	for id, t := range v.Tracks {
		fmt.Fprintf(w, "\t%s  %s - %s (%s)\n", id, t.ArtistName, t.Title, t.Numerics.Duration())
	}

	fmt.Fprintf(w, "\ncollections (%d):\n", len(v.Collections))
	for _, c := range v.Collections {
		fmt.Fprintf(w, "\t%s  %s (%d members)\n", c.ID, c.Name, len(c.Members))
	}

	if v.Accounts != nil {
		fmt.Fprintf(w, "\naccounts (%d):\n", len(v.Accounts))
		for _, a := range v.Accounts {
			fmt.Fprintf(w, "\t%s  %s (%s)\n", a.ID, a.DisplayName, a.Username)
		}
	}

	if len(lib.Warnings) > 0 {
		fmt.Fprintf(w, "\nwarnings (%d):\n", len(lib.Warnings))
		for _, warning := range lib.Warnings {
			fmt.Fprintf(w, "\t%s\n", warning)
		}
	}
}

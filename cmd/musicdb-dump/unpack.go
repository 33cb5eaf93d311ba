package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/musicdb"
)

// openDestination maps "-" to stdout.
func openDestination(path string) (io.WriteCloser, error) {
	if path == "-" {
		return os.Stdout, nil
	}
	return os.Create(path)
}

func newUnpackCommand() *cobra.Command {
	var path, output string

	cmd := &cobra.Command{
		Use:   "unpack",
		Short: "Unpack the raw chunk data from a .musicdb file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = musicdb.DefaultPath()
			}
			raw, err := musicdb.ExtractRaw(path)
			if err != nil {
				return err
			}

			dst, err := openDestination(output)
			if err != nil {
				return err
			}
			w := bufio.NewWriter(dst)
			if _, err := w.Write(raw); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
			if dst != os.Stdout {
				if err := dst.Close(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Done!")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "library file to unpack (defaults to the current user's)")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "destination path, '-' for stdout")
	return cmd
}

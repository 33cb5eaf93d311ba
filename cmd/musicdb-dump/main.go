// Command musicdb-dump inspects `.musicdb` library files: it unpacks
// the raw chunk data or exports a readable listing of the decoded
// entities.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "musicdb-dump",
		Short:         ".musicdb file inspection utility",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newUnpackCommand(), newExportCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

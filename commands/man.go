package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func newManCmd(root *cobra.Command) *cobra.Command {
	return &cobra.Command{
		Use:    "man <dir>",
		Short:  "Write man pages to a directory",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := expandPath(args[0])
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create man directory: %w", err)
			}
			header := &doc.GenManHeader{
				Title:   "TIMET",
				Section: "1",
			}
			if err := doc.GenManTree(root, header, dir); err != nil {
				return fmt.Errorf("failed to generate man pages: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote man pages to %s\n", dir)
			return nil
		},
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mkdugri-blog/Linux-boot/internal/boot"
)

var stepsCmd = &cobra.Command{
	Use:   "steps [id]",
	Short: "Print the boot stages, or one stage in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if len(args) == 0 {
			printSteps(out)
			return nil
		}
		s, err := boot.Get(boot.Normalize(args[0]))
		if err != nil {
			return fmt.Errorf("step %q: %w", args[0], err)
		}
		fmt.Fprintf(out, "%s. %s\n\n%s\n", s.ID, s.Title, s.Content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stepsCmd)
}

func printSteps(w io.Writer) {
	for _, s := range boot.All() {
		fmt.Fprintf(w, "%s  %-28s %s\n", s.ID, s.Title, s.Caption)
	}
}

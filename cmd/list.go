package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List registered scripts",
	Long:    `List the scripts registered in the configuration file. With -l, also show the source path and the last successful build.`,
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().BoolP("long", "l", false, "Show source path, build type and last build")
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	long, _ := cmd.Flags().GetBool("long")
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Available scripts:")

	if !long {
		for _, s := range a.cfg.Scripts {
			fmt.Fprintf(out, "  %s\n", s.Name)
		}

		return nil
	}

	entries, err := a.journal.Entries()
	if err != nil {
		a.logger.Warn().Err(err).Msg("build journal unavailable")
	}

	for _, s := range a.cfg.Scripts {
		built := "never"
		if e, ok := entries[s.Name]; ok {
			built = e.Timestamp.Local().Format(time.DateTime)
		}

		fmt.Fprintf(out, "  %-12s %-6s %-19s %s\n", s.Name, s.BuildKind, built, s.Path)
	}

	count, err := a.journal.Stats()
	if err != nil {
		a.logger.Warn().Err(err).Msg("build journal unavailable")
		return nil
	}

	fmt.Fprintf(out, "%d scripts built\n", count)

	return nil
}

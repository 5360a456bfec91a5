package cmd

import (
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove compiled scripts and cache records",
	Long:  `Delete the compiled binary, hash record and scratch directory of every registered script.`,
	Args:  cobra.NoArgs,
	RunE:  runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	return a.manager.Clean(a.cfg.Scripts)
}

package cmd

import (
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [NAMES...]",
	Short: "Compile scripts whose source has changed",
	Long: `Bring the named scripts, or every registered script when none are named, up to date.
The first failed build stops the update.`,
	Args: cobra.ArbitraryArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().BoolP("force", "f", false, "Rebuild even if the cached binary is current")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	force, _ := cmd.Flags().GetBool("force")

	if len(args) == 0 {
		_, err = a.manager.UpdateAll(a.cfg.Scripts, force)
		return err
	}

	_, err = a.manager.UpdateNamed(a.cfg.Scripts, args, force)
	return err
}

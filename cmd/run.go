package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scriptbin/internal/errs"
)

var runCmd = &cobra.Command{
	Use:   "run NAME [ARGS...]",
	Short: "Run a script, compiling it first if needed",
	Long: `Bring the named script up to date and execute it with the given arguments.
Everything after NAME, flags included, is passed to the script.`,
	Args: cobra.ArbitraryArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().SetInterspersed(false)
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return errs.New(errs.Config, "run needs script name")
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	return a.manager.RunNamed(a.cfg.Scripts, args[0], args[1:])
}

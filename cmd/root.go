package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "scriptbin",
	Short: "Compile-and-cache runner for source scripts",
	Long: `Run source files written in compiled languages as if they were scripts.

Each registered script is compiled on first use and cached; it is only
rebuilt when its source changes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func printError(w io.Writer, err error) {
	if trace, _ := rootCmd.PersistentFlags().GetBool("trace"); trace {
		fmt.Fprintf(w, "Error: %s\n", errs.Trace(err))
		return
	}

	fmt.Fprintf(w, "Error: %s\n", err)
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().String("app-dir", "", "Application directory (default ~/.scriptbin, env SCRIPTBIN_HOME)")
	rootCmd.PersistentFlags().String("tmp-dir", "", "Scratch directory root (env SCRIPTBIN_TMP)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().Bool("trace", false, "Print the stack trace of the root cause on failure")

	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(watchCmd)
}

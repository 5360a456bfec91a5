package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/manager"
	"github.com/Norgate-AV/scriptbin/internal/script"
	"github.com/Norgate-AV/scriptbin/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [NAMES...]",
	Short: "Rebuild scripts when their source changes",
	Long: `Watch the source files of the named scripts, or of every registered script when
none are named, and recompile each one as soon as it changes. Stop with Ctrl-C.`,
	Args: cobra.ArbitraryArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	entries, err := selectScripts(a.cfg.Scripts, args)
	if err != nil {
		return err
	}

	if _, err := a.manager.UpdateAll(entries, false); err != nil {
		a.logger.Error().Err(err).Msg("initial build failed")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	w := watch.New(a.manager,
		watch.WithLogger(a.logger),
		watch.WithReporter(func(res manager.Result) {
			fmt.Fprintln(out, res)
		}),
	)

	a.logger.Info().Int("scripts", len(entries)).Msg("watching for changes")

	return w.Watch(ctx, entries)
}

// selectScripts resolves names against the registry; no names selects everything
func selectScripts(registry []script.Entry, names []string) ([]script.Entry, error) {
	if len(names) == 0 {
		return registry, nil
	}

	selected := make([]script.Entry, 0, len(names))
	for _, name := range names {
		entry, ok := script.Lookup(registry, name)
		if !ok {
			return nil, errs.Wrapf(errs.New(errs.NotFound, "script not found"), "watch %s", name)
		}

		selected = append(selected, *entry)
	}

	return selected, nil
}


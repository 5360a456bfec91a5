package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Norgate-AV/scriptbin/internal/compiler"
	"github.com/Norgate-AV/scriptbin/internal/config"
	"github.com/Norgate-AV/scriptbin/internal/journal"
	"github.com/Norgate-AV/scriptbin/internal/manager"
	"github.com/Norgate-AV/scriptbin/internal/paths"
	"github.com/Norgate-AV/scriptbin/internal/runner"
)

// app is everything a command needs, wired once per invocation
type app struct {
	cfg     *config.Config
	layout  paths.Layout
	journal *journal.Journal
	manager *manager.Manager
	logger  zerolog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := config.NewLoader().LoadForCommand(cmd)
	if err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	logger.Debug().
		Str("app_dir", cfg.AppDir).
		Str("tmp_dir", cfg.TmpDir).
		Str("config", cfg.ConfigFile).
		Int("scripts", len(cfg.Scripts)).
		Msg("configuration loaded")

	layout := cfg.Layout()
	r := runner.New(logger)
	j := journal.New(layout.JournalPath())
	out := cmd.OutOrStdout()

	m := manager.New(layout,
		compiler.NewDefaultDispatcher(r, cfg.Tools, logger),
		r,
		manager.WithJournal(j),
		manager.WithLogger(logger),
		manager.WithReporter(func(res manager.Result) {
			fmt.Fprintln(out, res)
		}),
	)

	return &app{
		cfg:     cfg,
		layout:  layout,
		journal: j,
		manager: m,
		logger:  logger,
	}, nil
}

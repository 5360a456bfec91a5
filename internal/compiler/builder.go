// Package compiler maps a script's build-type to the external tool that
// compiles it.
//
// Each build-type is served by a registered Strategy. Adding a build-type
// means registering one more Strategy; a build-type without one fails with
// an UnsupportedBuildKind error.
package compiler

import (
	"github.com/rs/zerolog"

	"github.com/Norgate-AV/scriptbin/internal/cache"
	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/script"
)

// Executor runs a process to completion
type Executor interface {
	Run(path string, args []string) error
}

// Dispatcher builds scripts with the strategy registered for their build-type
type Dispatcher struct {
	strategies map[script.BuildKind]Strategy
	exec       Executor
	logger     zerolog.Logger
}

// NewDispatcher creates a dispatcher with no registered strategies
func NewDispatcher(exec Executor, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		strategies: make(map[script.BuildKind]Strategy),
		exec:       exec,
		logger:     logger,
	}
}

// NewDefaultDispatcher registers the built-in strategies. tools overrides the
// executable used for a build-type; missing entries default to the build-type name.
func NewDefaultDispatcher(exec Executor, tools map[string]string, logger zerolog.Logger) *Dispatcher {
	d := NewDispatcher(exec, logger)
	d.Register(script.Rustc, NativeCompiler{Tool: toolFor(tools, script.Rustc)})
	d.Register(script.Ghc, PackageBuild{Tool: toolFor(tools, script.Ghc)})
	d.Register(script.Go, GoBuild{Tool: toolFor(tools, script.Go)})

	return d
}

func toolFor(tools map[string]string, kind script.BuildKind) string {
	if tool, ok := tools[string(kind)]; ok && tool != "" {
		return tool
	}

	return string(kind)
}

// Register sets the strategy for kind, replacing any previous one
func (d *Dispatcher) Register(kind script.BuildKind, s Strategy) {
	d.strategies[kind] = s
}

// Build compiles entry into dest, using scratch for intermediate output when
// the strategy needs it
func (d *Dispatcher) Build(entry script.Entry, dest, scratch string) error {
	s, ok := d.strategies[entry.BuildKind]
	if !ok {
		return errs.Errorf(errs.UnsupportedBuildKind, "unsupported build-type: %s", entry.BuildKind)
	}

	cmd, err := s.Command(Request{
		Name:    entry.Name,
		Source:  entry.Path,
		Dest:    dest,
		Scratch: scratch,
		Options: entry.BuildOptions,
		Deps:    entry.BuildDeps,
	})
	if err != nil {
		return errs.Wrap(err, errs.BuildToolFailure, "compile "+entry.Name)
	}

	for _, dir := range cmd.Dirs {
		if err := cache.EnsureDir(dir); err != nil {
			return errs.Wrap(err, errs.BuildToolFailure, "compile "+entry.Name)
		}
	}

	d.logger.Debug().
		Str("script", entry.Name).
		Str("build-type", string(entry.BuildKind)).
		Str("command", cmd.String()).
		Msg("compiling")

	if err := d.exec.Run(cmd.Path, cmd.Args); err != nil {
		return errs.Wrap(err, errs.BuildToolFailure, "compile "+entry.Name)
	}

	return nil
}

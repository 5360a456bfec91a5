// Package manager decides whether a script needs rebuilding and drives the
// build, hash record and execution steps.
//
// Every decision is made fresh from what is on disk: a script is current when
// its compiled artifact exists and the stored hash record equals the hash of
// its source. Anything else, or a forced update, rebuilds it. The hash record
// is written only after the build tool reports success, so a failed build
// leaves the previous record in place and the next update tries again.
package manager

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/Norgate-AV/scriptbin/internal/cache"
	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/journal"
	"github.com/Norgate-AV/scriptbin/internal/paths"
	"github.com/Norgate-AV/scriptbin/internal/script"
)

// Builder compiles a script into dest
type Builder interface {
	Build(entry script.Entry, dest, scratch string) error
}

// Executor runs a process to completion
type Executor interface {
	Run(path string, args []string) error
}

// Recorder keeps the build journal
type Recorder interface {
	Record(entry journal.Entry) error
	Remove(name string) error
}

// Manager owns the update, run and clean operations for one invocation
type Manager struct {
	layout   paths.Layout
	store    *cache.Store
	builder  Builder
	exec     Executor
	recorder Recorder
	report   func(Result)
	logger   zerolog.Logger
	now      func() time.Time
}

// Option configures a Manager
type Option func(*Manager)

// WithJournal records successful builds in r
func WithJournal(r Recorder) Option {
	return func(m *Manager) {
		m.recorder = r
	}
}

// WithLogger sets the logger; the default discards everything
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithReporter calls fn with each batch result as soon as it is known
func WithReporter(fn func(Result)) Option {
	return func(m *Manager) {
		m.report = fn
	}
}

// New creates a manager for the given layout
func New(layout paths.Layout, builder Builder, exec Executor, opts ...Option) *Manager {
	m := &Manager{
		layout:  layout,
		store:   cache.NewStore(layout.HashPath),
		builder: builder,
		exec:    exec,
		logger:  zerolog.Nop(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Update rebuilds entry if it is stale or force is set. The source hash is
// computed even when forced so the stored record always matches the source
// the artifact was built from.
func (m *Manager) Update(entry script.Entry, force bool) (Outcome, error) {
	hash, err := cache.HashFile(entry.Path)
	if err != nil {
		return 0, errs.Wrapf(err, "update %s", entry.Name)
	}

	bin := m.layout.BinPath(entry.Name)

	if !force {
		same, err := m.store.Matches(entry.Name, hash)
		if err != nil {
			return 0, errs.Wrapf(err, "update %s", entry.Name)
		}

		if same && cache.FileExists(bin) {
			m.logger.Debug().Str("script", entry.Name).Str("hash", hash).Msg("up to date")
			return Latest, nil
		}

		m.logger.Debug().
			Str("script", entry.Name).
			Bool("hash_match", same).
			Msg("stale")
	}

	started := m.now()
	if err := m.builder.Build(entry, bin, m.layout.ScratchPath(entry.Name)); err != nil {
		return 0, errs.Wrapf(err, "update %s", entry.Name)
	}

	if err := m.store.Write(entry.Name, hash); err != nil {
		return 0, errs.Wrapf(err, "update %s", entry.Name)
	}

	finished := m.now()
	m.record(journal.Entry{
		Name:      entry.Name,
		Hash:      hash,
		BuildKind: string(entry.BuildKind),
		Timestamp: finished,
		Duration:  finished.Sub(started),
		Forced:    force,
	})

	return Compiled, nil
}

func (m *Manager) record(entry journal.Entry) {
	if m.recorder == nil {
		return
	}

	if err := m.recorder.Record(entry); err != nil {
		m.logger.Warn().Err(err).Str("script", entry.Name).Msg("failed to update build journal")
	}
}

// EnsureCurrent rebuilds entry if it is stale
func (m *Manager) EnsureCurrent(entry script.Entry) error {
	_, err := m.Update(entry, false)
	return err
}

// UpdateAll updates every entry in order and stops at the first failure.
// Results for the entries processed before the failure are returned with the error.
func (m *Manager) UpdateAll(entries []script.Entry, force bool) ([]Result, error) {
	results := make([]Result, 0, len(entries))

	for _, entry := range entries {
		outcome, err := m.Update(entry, force)
		if err != nil {
			return results, err
		}

		results = m.emit(results, Result{Name: entry.Name, Outcome: outcome})
	}

	return results, nil
}

// UpdateNamed updates the named entries in the order given. A name with no
// entry yields a NotFound result and processing continues; a build failure
// stops the batch.
func (m *Manager) UpdateNamed(entries []script.Entry, names []string, force bool) ([]Result, error) {
	results := make([]Result, 0, len(names))

	for _, name := range names {
		entry, ok := script.Lookup(entries, name)
		if !ok {
			results = m.emit(results, Result{Name: name, Outcome: NotFound})
			continue
		}

		outcome, err := m.Update(*entry, force)
		if err != nil {
			return results, err
		}

		results = m.emit(results, Result{Name: name, Outcome: outcome})
	}

	return results, nil
}

func (m *Manager) emit(results []Result, r Result) []Result {
	if m.report != nil {
		m.report(r)
	}

	return append(results, r)
}

// Run brings entry up to date and executes it with args. The script is not
// started when the update fails.
func (m *Manager) Run(entry script.Entry, args []string) error {
	if err := m.EnsureCurrent(entry); err != nil {
		return errs.Wrapf(err, "run %s", entry.Name)
	}

	if err := m.exec.Run(m.layout.BinPath(entry.Name), args); err != nil {
		return errs.Wrap(err, errs.ExecutionFailure, "run "+entry.Name)
	}

	return nil
}

// RunNamed resolves name in entries and runs it
func (m *Manager) RunNamed(entries []script.Entry, name string, args []string) error {
	entry, ok := script.Lookup(entries, name)
	if !ok {
		return errs.Wrapf(errs.New(errs.NotFound, "script not found"), "run %s", name)
	}

	return m.Run(*entry, args)
}

// Clean removes the artifact, hash record and scratch directory of every
// entry. Missing files are not an error.
func (m *Manager) Clean(entries []script.Entry) error {
	for _, entry := range entries {
		if err := cache.RemoveFileIfExists(m.layout.BinPath(entry.Name)); err != nil {
			return errs.Wrap(err, errs.HashIO, "clean "+entry.Name)
		}

		if err := m.store.Remove(entry.Name); err != nil {
			return errs.Wrapf(err, "clean %s", entry.Name)
		}

		if err := cache.RemoveDirIfExists(m.layout.ScratchPath(entry.Name)); err != nil {
			return errs.Wrap(err, errs.HashIO, "clean "+entry.Name)
		}

		if m.recorder != nil {
			if err := m.recorder.Remove(entry.Name); err != nil {
				m.logger.Warn().Err(err).Str("script", entry.Name).Msg("failed to update build journal")
			}
		}
	}

	return nil
}

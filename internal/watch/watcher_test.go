package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/scriptbin/internal/errs"
	"github.com/Norgate-AV/scriptbin/internal/manager"
	"github.com/Norgate-AV/scriptbin/internal/script"
)

type fakeUpdater struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
	done  chan string
}

func newFakeUpdater() *fakeUpdater {
	return &fakeUpdater{fail: map[string]bool{}, done: make(chan string, 16)}
}

func (f *fakeUpdater) Update(entry script.Entry, force bool) (manager.Outcome, error) {
	f.mu.Lock()
	f.calls = append(f.calls, entry.Name)
	fail := f.fail[entry.Name]
	f.mu.Unlock()

	defer func() { f.done <- entry.Name }()

	if fail {
		return 0, errors.New("rustc: process exited with 1")
	}

	return manager.Compiled, nil
}

func (f *fakeUpdater) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]string(nil), f.calls...)
}

func waitFor(t *testing.T, ch <-chan string) string {
	t.Helper()

	select {
	case name := <-ch:
		return name
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for rebuild")
		return ""
	}
}

func startWatcher(t *testing.T, w *Watcher, entries []script.Entry) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)

	go func() {
		errCh <- w.Watch(ctx, entries)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-errCh:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watcher did not stop")
		}
	})

	// give the watcher time to register its directories
	time.Sleep(100 * time.Millisecond)
}

func writeSource(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestWatch_NoEntries(t *testing.T) {
	w := New(newFakeUpdater())

	err := w.Watch(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.NotFound))
}

func TestWatch_RebuildsChangedScript(t *testing.T) {
	dir := t.TempDir()
	foo := filepath.Join(dir, "foo.rs")
	bar := filepath.Join(dir, "bar.rs")
	writeSource(t, foo, "fn main() {}")
	writeSource(t, bar, "fn main() {}")

	updater := newFakeUpdater()

	var mu sync.Mutex
	var reported []manager.Result
	w := New(updater, WithDelay(20*time.Millisecond), WithReporter(func(r manager.Result) {
		mu.Lock()
		reported = append(reported, r)
		mu.Unlock()
	}))

	startWatcher(t, w, []script.Entry{
		{Name: "foo", Path: foo, BuildKind: script.Rustc},
		{Name: "bar", Path: bar, BuildKind: script.Rustc},
	})

	writeSource(t, foo, "fn main() { println!(\"changed\"); }")

	assert.Equal(t, "foo", waitFor(t, updater.done))

	mu.Lock()
	assert.Contains(t, reported, manager.Result{Name: "foo", Outcome: manager.Compiled})
	mu.Unlock()
	assert.NotContains(t, updater.names(), "bar")
}

func TestWatch_IgnoresUntrackedFiles(t *testing.T) {
	dir := t.TempDir()
	foo := filepath.Join(dir, "foo.rs")
	writeSource(t, foo, "fn main() {}")

	updater := newFakeUpdater()
	w := New(updater, WithDelay(20*time.Millisecond))

	startWatcher(t, w, []script.Entry{{Name: "foo", Path: foo, BuildKind: script.Rustc}})

	writeSource(t, filepath.Join(dir, "notes.txt"), "unrelated")
	writeSource(t, foo, "fn main() { }")

	assert.Equal(t, "foo", waitFor(t, updater.done))
	assert.Equal(t, []string{"foo"}, updater.names())
}

func TestWatch_FailureKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	foo := filepath.Join(dir, "foo.rs")
	writeSource(t, foo, "fn main() {}")

	updater := newFakeUpdater()
	updater.fail["foo"] = true
	w := New(updater, WithDelay(20*time.Millisecond))

	startWatcher(t, w, []script.Entry{{Name: "foo", Path: foo, BuildKind: script.Rustc}})

	writeSource(t, foo, "fn main() {")
	waitFor(t, updater.done)

	updater.mu.Lock()
	updater.fail["foo"] = false
	updater.mu.Unlock()

	writeSource(t, foo, "fn main() {}")
	waitFor(t, updater.done)

	assert.GreaterOrEqual(t, len(updater.names()), 2)
}

func TestWatch_StopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	foo := filepath.Join(dir, "foo.rs")
	writeSource(t, foo, "fn main() {}")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := New(newFakeUpdater())
	err := w.Watch(ctx, []script.Entry{{Name: "foo", Path: foo, BuildKind: script.Rustc}})
	assert.NoError(t, err)
}

func TestWatch_MissingDirectory(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope", "foo.rs")

	w := New(newFakeUpdater())
	err := w.Watch(context.Background(), []script.Entry{{Name: "foo", Path: missing, BuildKind: script.Rustc}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch foo: unable to watch")
}

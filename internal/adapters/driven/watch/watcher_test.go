package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

// startWatch runs Watch in the background and returns its result channel.
func startWatch(ctx context.Context, w *Watcher, path string, onChange func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, path, onChange)
	}()
	return done
}

func TestWatch_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.tsv")
	writeManifest(t, path, "12\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	done := startWatch(ctx, New(0), path, func() error {
		calls.Add(1)
		return nil
	})

	assert.Eventually(t, func() bool {
		writeManifest(t, path, "12\nA\t0\t12\n")
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.tsv")
	other := filepath.Join(dir, "other.tsv")
	writeManifest(t, path, "12\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	startWatch(ctx, New(0), path, func() error {
		calls.Add(1)
		return nil
	})

	for i := 0; i < 10; i++ {
		writeManifest(t, other, "99\n")
		time.Sleep(20 * time.Millisecond)
	}
	assert.Zero(t, calls.Load())
}

func TestWatch_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.tsv")
	writeManifest(t, path, "12\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	startWatch(ctx, New(time.Second), path, func() error {
		calls.Add(1)
		return nil
	})

	// Wait for the first report, which consumes the only token.
	require.Eventually(t, func() bool {
		writeManifest(t, path, "12\n")
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)
	base := calls.Load()

	for i := 0; i < 20; i++ {
		writeManifest(t, path, "12\n")
	}
	time.Sleep(300 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load()-base, int32(1))

	// The burst is reported once, after the interval.
	assert.Eventually(t, func() bool {
		return calls.Load()-base == 1
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_CallbackErrorStops(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.tsv")
	writeManifest(t, path, "12\n")

	stop := errors.New("stop")
	done := startWatch(context.Background(), New(0), path, func() error {
		return stop
	})

	var err error
	require.Eventually(t, func() bool {
		writeManifest(t, path, "13\n")
		select {
		case err = <-done:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
	assert.ErrorIs(t, err, stop)
}

func TestWatch_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "problem.tsv")

	err := New(0).Watch(context.Background(), path, func() error { return nil })
	assert.Error(t, err)
}

func TestRelevant(t *testing.T) {
	target := filepath.Join(string(filepath.Separator), "data", "problem.tsv")

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write", fsnotify.Event{Name: target, Op: fsnotify.Write}, true},
		{"create", fsnotify.Event{Name: target, Op: fsnotify.Create}, true},
		{"chmod", fsnotify.Event{Name: target, Op: fsnotify.Chmod}, false},
		{"remove", fsnotify.Event{Name: target, Op: fsnotify.Remove}, false},
		{"other file", fsnotify.Event{Name: target + ".swp", Op: fsnotify.Write}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event, target))
		})
	}
}

package driven

import "context"

// FileWatcher reports changes to a single file.
type FileWatcher interface {
	// Watch calls onChange after the file at path is written, created or
	// replaced. It blocks until ctx is cancelled, the watcher fails, or
	// onChange returns an error.
	Watch(ctx context.Context, path string, onChange func() error) error
}

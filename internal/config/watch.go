package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor produces when it
// saves a file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher sends a notification whenever one of the loaded config files is
// written, replaced or removed.
type Watcher struct {
	Updates chan struct{}
	Errors  chan error

	files    map[string]struct{}
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher watches the directories holding files. Watching the directory
// instead of the file keeps working across editors that save by rename.
func NewWatcher(files []string, debounce time.Duration) (*Watcher, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no config files to watch")
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		Updates:  make(chan struct{}, 1),
		Errors:   make(chan error, 8),
		files:    make(map[string]struct{}, len(files)),
		debounce: debounce,
		watcher:  fw,
	}

	dirs := make(map[string]struct{})
	for _, f := range files {
		f = filepath.Clean(f)
		w.files[f] = struct{}{}
		dirs[filepath.Dir(f)] = struct{}{}
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}
	return w, nil
}

// Run forwards debounced change notifications until ctx is done or the
// underlying watcher fails.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				w.report(fmt.Errorf("watcher closed"))
				return
			}
			if !w.relevant(event) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				w.report(fmt.Errorf("watcher closed"))
				return
			}
			w.report(err)

		case <-timer.C:
			select {
			case w.Updates <- struct{}{}:
			default:
				// A notification is already pending.
			}
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.files[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

func (w *Watcher) report(err error) {
	select {
	case w.Errors <- err:
	default:
	}
}

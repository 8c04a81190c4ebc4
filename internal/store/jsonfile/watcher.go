package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const debounceDelay = 100 * time.Millisecond

// FileWatcher reports changes to a single file using fsnotify. Bursts of
// events are debounced into one signal, and signals are coalesced when the
// consumer is slow, so Changes never blocks the watcher.
type FileWatcher struct {
	path    string
	watcher *fsnotify.Watcher
	log     zerolog.Logger
	changes chan struct{}

	mu       sync.Mutex
	debounce *time.Timer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewFileWatcher watches path. The parent directory is watched rather than
// the file itself so atomic rename-over writes are seen. The directory is
// created if it doesn't exist.
func NewFileWatcher(path string, log zerolog.Logger) (*FileWatcher, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := watcher.Add(dir); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	fw := &FileWatcher{
		path:    filepath.Clean(path),
		watcher: watcher,
		log:     log,
		changes: make(chan struct{}, 1),
		ctx:     ctx,
		cancel:  cancel,
	}

	fw.wg.Add(1)
	go fw.run()

	return fw, nil
}

// Changes returns a channel that receives a value after the file changes.
// The channel is closed by Close.
func (fw *FileWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Close stops watching and closes the Changes channel.
func (fw *FileWatcher) Close() error {
	fw.cancel()

	fw.mu.Lock()
	if fw.debounce != nil {
		fw.debounce.Stop()
	}
	fw.mu.Unlock()

	err := fw.watcher.Close()
	fw.wg.Wait()

	fw.mu.Lock()
	close(fw.changes)
	fw.changes = nil
	fw.mu.Unlock()

	return err
}

// run processes filesystem events from fsnotify.
func (fw *FileWatcher) run() {
	defer fw.wg.Done()

	for {
		select {
		case <-fw.ctx.Done():
			return
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			fw.handleEvent(event)
		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.log.Debug().Err(err).Str("path", fw.path).Msg("file watcher error")
		}
	}
}

// handleEvent filters events down to writes, creates and renames of the watched file.
func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	if filepath.Clean(event.Name) != fw.path {
		return
	}

	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.debounce != nil {
		fw.debounce.Stop()
	}
	fw.debounce = time.AfterFunc(debounceDelay, fw.notify)
}

func (fw *FileWatcher) notify() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.changes == nil || fw.ctx.Err() != nil {
		return
	}

	select {
	case fw.changes <- struct{}{}:
	default:
		// A signal is already pending
	}
}

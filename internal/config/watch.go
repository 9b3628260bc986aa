package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads an Echo config file when it changes on disk.
// Valid reloads are delivered on Updates; invalid ones are logged and skipped.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	logger  *log.Logger
	Updates chan EchoConfig
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// WatchEcho starts watching path. The containing directory is watched so that
// editors which replace the file on save are still picked up.
func WatchEcho(path string, logger *log.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", path, err)
	}

	w := &Watcher{
		path:    abs,
		watcher: fw,
		logger:  logger,
		Updates: make(chan EchoConfig, 1),
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	defer close(w.Updates)

	// Editors and os.WriteFile produce bursts of events; reload once the burst settles.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			timer.Reset(reloadDebounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			if w.logger != nil {
				w.logger.Warn("config watcher error", "error", err)
			}
		case <-w.closeCh:
			return
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := readEcho(w.path)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		if w.logger != nil {
			w.logger.Warn("ignoring config change", "path", w.path, "error", err)
		}
		return
	}
	if w.logger != nil {
		w.logger.Info("config reloaded", "path", w.path)
	}

	// Keep only the newest config if the consumer has not caught up.
	select {
	case <-w.Updates:
	default:
	}
	select {
	case w.Updates <- cfg:
	default:
	}
}

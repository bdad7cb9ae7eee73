package recognition

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/turtacn/PlasmidCatalog/internal/infrastructure/monitoring/logging"
	ptypes "github.com/turtacn/PlasmidCatalog/pkg/types/plasmid"
)

// Reloader is the part of Service the watcher drives.
type Reloader interface {
	Reload(ctx context.Context) (*ptypes.VocabularyStats, error)
}

// FileWatcher reloads the recognition context when the rules document or
// the corpus file changes on disk.  Parent directories are watched so that
// editors which replace files atomically are picked up.
type FileWatcher struct {
	reloader Reloader
	logger   logging.Logger
	debounce time.Duration
	files    map[string]struct{}
	dirs     map[string]struct{}

	mu      sync.Mutex
	reloads int
}

// NewFileWatcher watches paths; empty entries are skipped.
func NewFileWatcher(r Reloader, logger logging.Logger, debounce time.Duration, paths ...string) *FileWatcher {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}
	w := &FileWatcher{
		reloader: r,
		logger:   logger.Named("watcher"),
		debounce: debounce,
		files:    make(map[string]struct{}),
		dirs:     make(map[string]struct{}),
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = filepath.Clean(p)
		}
		w.files[abs] = struct{}{}
		w.dirs[filepath.Dir(abs)] = struct{}{}
	}
	return w
}

// Reloads returns how many reloads the watcher has triggered.
func (w *FileWatcher) Reloads() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.reloads
}

// Run blocks until ctx is done.
func (w *FileWatcher) Run(ctx context.Context) error {
	if len(w.files) == 0 {
		<-ctx.Done()
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()
	for dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return err
		}
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watch error", logging.Err(err))
		case <-fire:
			fire = nil
			w.reload(ctx)
		}
	}
}

func (w *FileWatcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		abs = filepath.Clean(ev.Name)
	}
	_, ok := w.files[abs]
	return ok
}

func (w *FileWatcher) reload(ctx context.Context) {
	stats, err := w.reloader.Reload(ctx)
	if err != nil {
		w.logger.Warn("reload after file change failed", logging.Err(err))
		return
	}
	w.mu.Lock()
	w.reloads++
	w.mu.Unlock()
	w.logger.Info("recognition context reloaded", logging.Uint64("version", stats.Version))
}

//Personal.AI order the ending

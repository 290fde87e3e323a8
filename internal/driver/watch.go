package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor save bursts into one re-run.
const DefaultDebounce = 150 * time.Millisecond

// Watcher reports changed unit files under a set of paths.
type Watcher struct {
	w        *fsnotify.Watcher
	files    map[string]bool // explicitly watched files
	roots    []string        // recursively watched directories
	ignore   []string
	debounce time.Duration
}

// NewWatcher starts watching paths. Directories are watched recursively;
// for files, their directory is watched and events are filtered to them.
// Anything under an ignore directory (typically the output directory) is
// skipped so that writing results does not retrigger a run.
func NewWatcher(paths, ignore []string, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{w: fw, files: make(map[string]bool), debounce: debounce}
	for _, dir := range ignore {
		if abs, err := filepath.Abs(dir); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}
	for _, p := range paths {
		if err := w.add(p); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	return w, nil
}

func (w *Watcher) add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		w.files[abs] = true
		return w.w.Add(filepath.Dir(abs))
	}
	w.roots = append(w.roots, abs)
	return w.addTree(abs)
}

func (w *Watcher) addTree(abs string) error {
	return filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if w.ignored(p) {
			return filepath.SkipDir
		}
		return w.w.Add(p)
	})
}

func (w *Watcher) ignored(path string) bool {
	return under(path, w.ignore)
}

func under(path string, dirs []string) bool {
	for _, dir := range dirs {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil || w.ignored(name) || !strings.HasSuffix(name, UnitExt) {
		return false
	}
	// The directory of an explicitly named file may hold files nobody asked for.
	return w.files[name] || under(name, w.roots)
}

// Run calls fn with the sorted set of changed unit files after each quiet
// period. It returns nil when ctx is done, or the first error from fn or the
// underlying watcher.
func (w *Watcher) Run(ctx context.Context, fn func(ctx context.Context, changed []string) error) error {
	defer w.w.Close()

	pending := make(map[string]bool)
	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if abs, err := filepath.Abs(ev.Name); err == nil && under(abs, w.roots) {
					if info, err := os.Stat(abs); err == nil && info.IsDir() {
						_ = w.addTree(abs)
					}
				}
			}
			if !w.relevant(ev) {
				continue
			}
			name, _ := filepath.Abs(ev.Name)
			pending[name] = true
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-timerC:
			timerC = nil
			changed := make([]string, 0, len(pending))
			for name := range pending {
				changed = append(changed, name)
			}
			clear(pending)
			sort.Strings(changed)
			if err := fn(ctx, changed); err != nil {
				return err
			}
		}
	}
}

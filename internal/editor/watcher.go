package editor

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"guardrail/internal/config"
	"guardrail/internal/logging"
)

// watcher wraps fsnotify with the project's exclusion rules: excluded and
// hidden directories are never watched, and new subdirectories are picked
// up as they appear.
type watcher struct {
	root     string
	excluded map[string]bool
	fsw      *fsnotify.Watcher
	changes  chan string
}

func newWatcher(root string, cfg *config.ChecksConfig) (*watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(cfg.Exclude))
	for _, name := range cfg.Exclude {
		excluded[name] = true
	}

	w := &watcher{
		root:     root,
		excluded: excluded,
		fsw:      fsw,
		changes:  make(chan string, 64),
	}

	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}

	go w.loop()
	return w, nil
}

// Changes delivers slash-separated paths relative to the root. The channel
// closes when the watcher closes.
func (w *watcher) Changes() <-chan string { return w.changes }

func (w *watcher) Close() error { return w.fsw.Close() }

func (w *watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			// Races with deletions are expected while walking.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != w.root && w.skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
}

func (w *watcher) skipDir(name string) bool {
	return w.excluded[name] || strings.HasPrefix(name, ".")
}

func (w *watcher) loop() {
	defer close(w.changes)
	log := logging.Get(logging.CategoryServer)

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			rel, err := filepath.Rel(w.root, event.Name)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)
			if w.ignored(rel) {
				continue
			}

			// New directories join the watch set immediately so files
			// created inside them are seen.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						log.Warn("watch %s: %v", rel, err)
					}
					continue
				}
			}

			select {
			case w.changes <- rel:
			default:
				// A full buffer means a refresh is already due.
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Warn("watcher error: %v", err)
		}
	}
}

// ignored filters events under excluded or hidden path segments.
func (w *watcher) ignored(rel string) bool {
	if rel == "." {
		return true
	}
	for _, seg := range strings.Split(rel, "/") {
		if w.skipDir(seg) {
			return true
		}
	}
	return false
}

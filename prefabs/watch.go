package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses editor save bursts into a single change.
const DefaultDebounce = 100 * time.Millisecond

// ChangeKind says which loader a changed file belongs to.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

// Change names an overlay file that was written, created, renamed or removed.
type Change struct {
	Path string
	Name string
	Kind ChangeKind
}

// Watcher reports prefab changes under one or more overlay directories.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration
	Changes  chan Change
	Errors   chan error
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// NewWatcher watches dirs. With no dirs it watches OverlayDir and its
// scripts subdirectory.
func NewWatcher(dirs ...string) (*Watcher, error) {
	if len(dirs) == 0 {
		dirs = []string{OverlayDir, filepath.Join(OverlayDir, "scripts")}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher:  w,
		debounce: DefaultDebounce,
		Changes:  make(chan Change, 16),
		Errors:   make(chan error, 1),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
		close(w.Changes)
		close(w.Errors)
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			change, ok := classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < w.debounce {
				continue
			}
			last[event.Name] = now
			select {
			case w.Changes <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func classify(path string) (Change, bool) {
	base := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return Change{Path: path, Name: base, Kind: ChangeSpec}, true
	case ".tengo":
		return Change{Path: path, Name: "scripts/" + base, Kind: ChangeScript}, true
	}
	return Change{}, false
}

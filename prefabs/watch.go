package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeKind says what a hot-reload event touched: a yaml entity spec or a
// tengo behavior script. Consumers invalidate different caches for each.
type ChangeKind int

const (
	ChangeSpec ChangeKind = iota
	ChangeScript
)

type Change struct {
	Path string
	Kind ChangeKind
}

// debounce window for editors that write the same file several times per
// save.
const changeCoalesce = 100 * time.Millisecond

// Watcher surfaces edits to the prefab directories as classified Change
// events.
type Watcher struct {
	fs        *fsnotify.Watcher
	changes   chan Change
	errs      chan error
	done      chan struct{}
	closeOnce sync.Once
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fs.Add(dir); err != nil {
			_ = fs.Close()
			return nil, err
		}
	}

	w := &Watcher{
		fs:      fs,
		changes: make(chan Change, 16),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Changes() <-chan Change { return w.changes }
func (w *Watcher) Errs() <-chan error     { return w.errs }

// Close stops the watcher. The output channels are closed by the
// forwarding goroutine once it has drained, so a consumer mid-receive never
// races a close.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.changes)
	defer close(w.errs)

	seen := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			kind, ok := classifyChange(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, dup := seen[event.Name]; dup && now.Sub(t) < changeCoalesce {
				continue
			}
			seen[event.Name] = now
			select {
			case w.changes <- Change{Path: event.Name, Kind: kind}:
			case <-w.done:
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			case <-w.done:
				return
			}
		case <-w.done:
			return
		}
	}
}

func classifyChange(path string) (ChangeKind, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ChangeSpec, true
	case ".tengo":
		return ChangeScript, true
	}
	return 0, false
}

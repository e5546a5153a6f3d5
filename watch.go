package movieclip

import (
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ClipWatcher reloads YAML clip files when they change on disk and rebinds
// the movie clip nodes built from them. File events arrive on a background
// goroutine; rebinding happens in Scene.Update (via SetClipWatcher) so the
// scene graph is only touched from the game goroutine.
type ClipWatcher struct {
	watcher *fsnotify.Watcher
	atlas   *Atlas
	changed chan string
	errs    chan error
	closeCh chan struct{}
	once    sync.Once

	// tracked is only accessed from the game goroutine.
	tracked map[string][]*Node
}

// NewClipWatcher watches dirs for clip file changes. Regions of reloaded
// clips are resolved against atlas.
func NewClipWatcher(atlas *Atlas, dirs ...string) (*ClipWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fw.Add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}
	w := newClipWatcher(atlas)
	w.watcher = fw
	go w.run()
	return w, nil
}

func newClipWatcher(atlas *Atlas) *ClipWatcher {
	return &ClipWatcher{
		atlas:   atlas,
		changed: make(chan string, 16),
		errs:    make(chan error, 1),
		closeCh: make(chan struct{}),
		tracked: make(map[string][]*Node),
	}
}

// Track rebinds node whenever the clip file at path changes.
func (w *ClipWatcher) Track(path string, node *Node) {
	key := watchKey(path)
	w.tracked[key] = append(w.tracked[key], node)
}

// Untrack stops reloading node from path.
func (w *ClipWatcher) Untrack(path string, node *Node) {
	key := watchKey(path)
	nodes := w.tracked[key]
	for i, n := range nodes {
		if n == node {
			nodes = append(nodes[:i:i], nodes[i+1:]...)
			break
		}
	}
	if len(nodes) == 0 {
		delete(w.tracked, key)
		return
	}
	w.tracked[key] = nodes
}

// Notify queues path for reload as if it had changed on disk.
func (w *ClipWatcher) Notify(path string) {
	select {
	case w.changed <- path:
	default:
	}
}

// Close stops watching. Pending reloads are dropped.
func (w *ClipWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		if w.watcher != nil {
			err = w.watcher.Close()
		}
	})
	return err
}

// run collects file events and forwards each path once it has been quiet
// for reloadDebounce, so a save that truncates and then writes reloads once
// with the final contents.
func (w *ClipWatcher) run() {
	pending := make(map[string]time.Time)
	tick := time.NewTicker(reloadDebounce / 2)
	defer tick.Stop()
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !isClipFile(event.Name) {
				continue
			}
			pending[event.Name] = time.Now()
		case now := <-tick.C:
			for name, t := range pending {
				if now.Sub(t) < reloadDebounce {
					continue
				}
				select {
				case w.changed <- name:
					delete(pending, name)
				case <-w.closeCh:
					return
				}
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// apply drains queued changes and rebinds tracked nodes. A file that fails
// to load keeps the previous binding.
func (w *ClipWatcher) apply() {
	for {
		select {
		case path := <-w.changed:
			w.reload(path)
		case err := <-w.errs:
			if globalDebug {
				log.Printf("movieclip: clip watcher: %v", err)
			}
		default:
			return
		}
	}
}

func (w *ClipWatcher) reload(path string) {
	nodes := w.tracked[watchKey(path)]
	if len(nodes) == 0 {
		return
	}
	cf, err := LoadClipFile(path)
	if err != nil {
		if globalDebug {
			log.Printf("movieclip: reload %s: %v", path, err)
		}
		return
	}
	for _, n := range nodes {
		if n.IsDisposed() {
			continue
		}
		if n.Clip == nil {
			continue
		}
		playing, plays := n.Clip.IsPlaying(), n.Clip.RemainingPlays()
		// Each node gets its own data so rate changes stay per clip.
		n.SetClipSource(cf.Build(w.atlas))
		if playing {
			_ = n.Clip.Play(plays)
		}
	}
}

func isClipFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func watchKey(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

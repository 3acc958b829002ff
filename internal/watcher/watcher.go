package watcher

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is used when Options.Debounce is not positive.
const DefaultDebounce = 300 * time.Millisecond

// Op is the kind of change observed for a path.
type Op int

const (
	Write Op = iota + 1
	Create
	Remove
	Rename
)

func (o Op) String() string {
	switch o {
	case Write:
		return "write"
	case Create:
		return "create"
	case Remove:
		return "remove"
	case Rename:
		return "rename"
	default:
		return "unknown"
	}
}

// Gone reports whether the path no longer exists under its old name.
func (o Op) Gone() bool {
	return o == Remove || o == Rename
}

// Change is one path touched during a debounce window.
type Change struct {
	Path string
	Op   Op
}

// Options configures a Watcher.
type Options struct {
	// ExcludeDirectories are directory names skipped at any depth.
	ExcludeDirectories []string
	Debounce           time.Duration
	Logger             *slog.Logger
}

// Watcher monitors a directory tree and delivers debounced change batches.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	rootDir   string
	exclude   map[string]struct{}
	delay     time.Duration
	log       *slog.Logger

	events   chan []Change
	stop     chan struct{}
	stopOnce sync.Once

	mu       sync.Mutex
	pending  map[string]Op
	debounce *time.Timer
	closed   bool
}

// New creates a file system watcher for rootDir.
func New(rootDir string, opts Options) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	delay := opts.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	exclude := make(map[string]struct{}, len(opts.ExcludeDirectories))
	for _, name := range opts.ExcludeDirectories {
		exclude[name] = struct{}{}
	}

	w := &Watcher{
		fsWatcher: fsw,
		rootDir:   rootDir,
		exclude:   exclude,
		delay:     delay,
		log:       logger,
		events:    make(chan []Change, 1),
		stop:      make(chan struct{}),
		pending:   make(map[string]Op),
	}

	// fsnotify doesn't watch subdirectories on its own
	if err := w.addRecursive(rootDir); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	go w.run()
	return w, nil
}

// Skip reports whether a directory with this name is never watched.
func (w *Watcher) Skip(name string) bool {
	if _, ok := w.exclude[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return nil // unreadable subdirectory
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.rootDir && w.Skip(d.Name()) {
			return filepath.SkipDir
		}
		return w.fsWatcher.Add(path)
	})
}

func (w *Watcher) run() {
	defer func() {
		w.mu.Lock()
		w.closed = true
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.mu.Unlock()
		close(w.events)
	}()

	for {
		select {
		case <-w.stop:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handle(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Debug("watcher error", "root", w.rootDir, "err", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	op := opFor(event.Op)
	if op == 0 {
		return
	}
	if w.inSkippedDir(event.Name) {
		return
	}

	// Watch newly created directories, including everything under mkdir -p
	if op == Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if !w.Skip(filepath.Base(event.Name)) {
				_ = w.addRecursive(event.Name)
			}
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = merge(w.pending[event.Name], op)
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, w.flush)
}

// flush hands the pending set to the consumer. When the consumer has not
// drained the previous batch, the set is kept and retried after another delay.
func (w *Watcher) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed || len(w.pending) == 0 {
		return
	}

	batch := make([]Change, 0, len(w.pending))
	for path, op := range w.pending {
		batch = append(batch, Change{Path: path, Op: op})
	}
	sort.Slice(batch, func(i, j int) bool { return batch[i].Path < batch[j].Path })

	select {
	case w.events <- batch:
		w.pending = make(map[string]Op)
	default:
		w.debounce = time.AfterFunc(w.delay, w.flush)
	}
}

func (w *Watcher) inSkippedDir(path string) bool {
	rel, err := filepath.Rel(w.rootDir, filepath.Dir(path))
	if err != nil || rel == "." {
		return false
	}
	for _, part := range strings.Split(rel, string(filepath.Separator)) {
		if w.Skip(part) {
			return true
		}
	}
	return false
}

func opFor(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Remove):
		return Remove
	case op.Has(fsnotify.Rename):
		return Rename
	case op.Has(fsnotify.Create):
		return Create
	case op.Has(fsnotify.Write):
		return Write
	default:
		return 0 // chmod only
	}
}

// merge folds a new op into the one already pending for a path. A path that
// was created and then written within the window is still reported as
// created; the most recent op wins otherwise.
func merge(prev, next Op) Op {
	if prev == Create && next == Write {
		return Create
	}
	return next
}

// Root returns the watched directory.
func (w *Watcher) Root() string {
	return w.rootDir
}

// Events returns the channel of change batches. It is closed after Stop.
func (w *Watcher) Events() <-chan []Change {
	return w.events
}

// Stop shuts down the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		_ = w.fsWatcher.Close()
	})
}

// Package workspace walks a project tree, counts every eligible file and
// aggregates the results into a summary for reports.
package workspace

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wilbur182/linecount/internal/counter"
	"github.com/wilbur182/linecount/internal/syntax"
)

// FileEntry is one counted file as it appears in exports.
type FileEntry struct {
	Path      string `json:"path"`
	Extension string `json:"extension"`
	Language  string `json:"language,omitempty"`
	Lines     int    `json:"lines"`
	Code      int    `json:"code"`
	Comments  int    `json:"comments"`
	Blank     int    `json:"blank"`
	Estimated bool   `json:"estimated"`

	// Result is the count the entry was built from.
	Result counter.Result `json:"-"`
}

// FileError records a file that could not be counted.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Report is the outcome of one Scan.
type Report struct {
	Root    string
	TakenAt time.Time
	Files   []FileEntry
	Errors  []FileError
	Summary Summary
}

// Options configures a Scanner.
type Options struct {
	// ExcludeDirectories are directory names skipped at any depth.
	ExcludeDirectories []string
	// Workers bounds concurrent counts; <= 0 uses GOMAXPROCS.
	Workers int
	Logger  *slog.Logger
}

// Scanner counts every file below a root through a shared Counter, so a
// rescan of an unchanged tree is served from the cache.
type Scanner struct {
	counter *counter.Counter
	exclude map[string]struct{}
	workers int
	logger  *slog.Logger
	now     func() time.Time
}

// NewScanner creates a Scanner on top of c.
func NewScanner(c *counter.Counter, opts Options) *Scanner {
	exclude := make(map[string]struct{}, len(opts.ExcludeDirectories))
	for _, name := range opts.ExcludeDirectories {
		exclude[name] = struct{}{}
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		counter: c,
		exclude: exclude,
		workers: workers,
		logger:  logger,
		now:     time.Now,
	}
}

// SkipDir reports whether a directory with this name is not descended into.
func (s *Scanner) SkipDir(name string) bool {
	if _, ok := s.exclude[name]; ok {
		return true
	}
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// Scan counts every eligible file under root. Per-file I/O failures are
// collected in Report.Errors; only walking the root itself or context
// cancellation fails the scan.
func (s *Scanner) Scan(ctx context.Context, root string) (*Report, error) {
	root = filepath.Clean(root)
	paths := make(chan string)
	eg, ctx := errgroup.WithContext(ctx)

	var (
		mu     sync.Mutex
		files  []FileEntry
		failed []FileError
	)

	for range s.workers {
		eg.Go(func() error {
			for path := range paths {
				res, err := s.counter.Count(ctx, path)
				switch {
				case err == nil:
				case errors.Is(err, counter.ErrNotApplicable):
					continue
				case errors.Is(err, counter.ErrIOUnavailable):
					s.logger.Debug("skipping unreadable file", "path", path, "err", err)
					mu.Lock()
					failed = append(failed, FileError{Path: s.rel(root, path), Err: err})
					mu.Unlock()
					continue
				default:
					return err
				}
				entry := s.entry(root, path, res)
				mu.Lock()
				files = append(files, entry)
				mu.Unlock()
			}
			return nil
		})
	}

	eg.Go(func() error {
		defer close(paths)
		return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				return nil // unreadable subdirectory
			}
			if d.IsDir() {
				if path != root && s.SkipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			select {
			case paths <- path:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Slice(failed, func(i, j int) bool { return failed[i].Path < failed[j].Path })

	s.logger.Debug("scan complete", "root", root, "files", len(files), "errors", len(failed))
	return &Report{
		Root:    root,
		TakenAt: s.now(),
		Files:   files,
		Errors:  failed,
		Summary: Summarize(files),
	}, nil
}

func (s *Scanner) entry(root, path string, res counter.Result) FileEntry {
	reg := s.counter.Registry()
	e := FileEntry{
		Path:      s.rel(root, path),
		Extension: syntax.NormalizeExt(filepath.Ext(path)),
		Language:  reg.Language(path),
		Lines:     res.Total,
		Estimated: res.Estimated,
		Result:    res,
	}
	if b, ok := res.Breakdown(); ok {
		e.Code, e.Comments, e.Blank = b.Code, b.Comment, b.Blank
	}
	return e
}

// rel returns path relative to root with forward slashes, as reports are
// shared across platforms.
func (s *Scanner) rel(root, path string) string {
	r, err := filepath.Rel(root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(r)
}

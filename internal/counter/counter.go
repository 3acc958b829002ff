// Package counter is the line counting entry point. It stats a file, serves
// the cached result when size and modification time are unchanged, and
// otherwise reads and classifies the file.
package counter

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/wilbur182/linecount/internal/cache"
	"github.com/wilbur182/linecount/internal/classify"
	"github.com/wilbur182/linecount/internal/syntax"
)

// DefaultSizeLimit is the byte size above which files are estimated.
const DefaultSizeLimit = 5_000_000

// Options configures a Counter. Zero values pick defaults.
type Options struct {
	// SizeLimit is the largest size in bytes that is classified exactly.
	SizeLimit int64
	// FollowSymlinks counts symlinks to regular files instead of
	// rejecting them.
	FollowSymlinks bool
	// MaxEntries bounds the cache; <= 0 keeps every entry.
	MaxEntries int
	Registry   *syntax.Registry
	Source     Source
	Logger     *slog.Logger
}

// Stats are cumulative counters, mostly useful for debugging and tests.
type Stats struct {
	Hits    int64
	Misses  int64
	Reads   int64
	Entries int
}

// Counter counts lines and caches the result per path. It is safe for
// concurrent use.
type Counter struct {
	sizeLimit      int64
	followSymlinks bool
	registry       *syntax.Registry
	source         Source
	logger         *slog.Logger

	entries *cache.Cache[Result]
	group   singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
	reads  atomic.Int64
}

// New creates a Counter.
func New(opts Options) *Counter {
	c := &Counter{
		sizeLimit:      opts.SizeLimit,
		followSymlinks: opts.FollowSymlinks,
		registry:       opts.Registry,
		source:         opts.Source,
		logger:         opts.Logger,
		entries:        cache.New[Result](opts.MaxEntries),
	}
	if c.sizeLimit <= 0 {
		c.sizeLimit = DefaultSizeLimit
	}
	if c.registry == nil {
		c.registry = syntax.Default()
	}
	if c.source == nil {
		c.source = OSSource{}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// SizeLimit returns the exact-count threshold in bytes.
func (c *Counter) SizeLimit() int64 {
	return c.sizeLimit
}

// Registry returns the syntax registry used for classification.
func (c *Counter) Registry() *syntax.Registry {
	return c.registry
}

// Count returns the line count of path. Errors wrap ErrIOUnavailable or
// ErrNotApplicable.
func (c *Counter) Count(ctx context.Context, path string) (Result, error) {
	path = filepath.Clean(path)
	if !c.registry.Eligible(path) {
		return Result{}, fmt.Errorf("%s: excluded extension: %w", path, ErrNotApplicable)
	}

	meta, err := c.source.Stat(path)
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w: %w", path, ErrIOUnavailable, err)
	}
	if meta.IsSymlink && !c.followSymlinks {
		return Result{}, fmt.Errorf("%s: symlink: %w", path, ErrNotApplicable)
	}
	if !meta.IsFile {
		return Result{}, fmt.Errorf("%s: not a regular file: %w", path, ErrNotApplicable)
	}

	if res, ok := c.entries.Get(path, meta.Size, meta.ModTime); ok {
		c.hits.Add(1)
		return res, nil
	}
	c.misses.Add(1)

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// Callers that observed the same metadata share one read.
	key := path + "\x00" + strconv.FormatInt(meta.Size, 10) + "\x00" + strconv.FormatInt(meta.ModTime.UnixNano(), 10)
	v, err, _ := c.group.Do(key, func() (any, error) {
		if res, ok := c.entries.Get(path, meta.Size, meta.ModTime); ok {
			return res, nil
		}
		res, err := c.compute(path, meta)
		if err != nil {
			return nil, err
		}
		c.entries.Set(path, res, meta.Size, meta.ModTime)
		return res, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (c *Counter) compute(path string, meta FileMetadata) (Result, error) {
	c.reads.Add(1)

	if meta.Size > c.sizeLimit {
		head, err := c.source.ReadHead(path, sampleSize)
		if err != nil {
			return Result{}, fmt.Errorf("read %s: %w: %w", path, ErrIOUnavailable, err)
		}
		res := Estimated(estimateLines(head, meta.Size))
		c.logger.Debug("estimated line count", "path", path, "size", meta.Size, "total", res.Total)
		return res, nil
	}

	data, err := c.source.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w: %w", path, ErrIOUnavailable, err)
	}
	if isBinary(data) {
		res := Estimated(countLines(data))
		c.logger.Debug("binary content, estimated", "path", path, "total", res.Total)
		return res, nil
	}

	text := string(data)
	syn, ok := c.registry.ForPath(path)
	if !ok {
		return TotalOnly(classify.Lines(text)), nil
	}
	res := Exact(classify.Classify(text, syn))
	c.logger.Debug("counted", "path", path, "total", res.Total, "code", res.Code)
	return res, nil
}

// Invalidate drops the cached entry for path.
func (c *Counter) Invalidate(path string) {
	c.entries.Delete(filepath.Clean(path))
}

// InvalidatePrefix drops path and everything below it. Used when a
// directory is removed or renamed.
func (c *Counter) InvalidatePrefix(dir string) int {
	return c.entries.DeletePrefix(filepath.Clean(dir), string(filepath.Separator))
}

// Clear drops every cached entry.
func (c *Counter) Clear() {
	c.entries.Clear()
}

// Stats returns a snapshot of the counters.
func (c *Counter) Stats() Stats {
	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Reads:   c.reads.Load(),
		Entries: c.entries.Len(),
	}
}

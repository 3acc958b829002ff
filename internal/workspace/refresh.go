package workspace

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/wilbur182/linecount/internal/counter"
)

// ErrNeedsScan is returned by Refresh when a changed path is a directory,
// whose contents can only be picked up by a full Scan.
var ErrNeedsScan = errors.New("directory changed, full scan needed")

// Refresh returns a copy of prev with only the given absolute paths
// recounted. Paths that no longer exist are dropped together with anything
// recorded below them. Paths under skipped directories are ignored.
func (s *Scanner) Refresh(ctx context.Context, prev *Report, paths []string) (*Report, error) {
	root := prev.Root
	files := slices.Clone(prev.Files)
	failed := slices.Clone(prev.Errors)

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path = filepath.Clean(path)
		rel := s.rel(root, path)
		if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") || s.skipped(rel) {
			continue
		}

		files = slices.DeleteFunc(files, func(e FileEntry) bool { return under(e.Path, rel) })
		failed = slices.DeleteFunc(failed, func(e FileError) bool { return under(e.Path, rel) })

		res, err := s.counter.Count(ctx, path)
		switch {
		case err == nil:
			files = append(files, s.entry(root, path, res))
		case errors.Is(err, fs.ErrNotExist):
		case errors.Is(err, counter.ErrNotApplicable):
			if info, serr := os.Lstat(path); serr == nil && info.IsDir() {
				return nil, ErrNeedsScan
			}
		case errors.Is(err, counter.ErrIOUnavailable):
			s.logger.Debug("skipping unreadable file", "path", path, "err", err)
			failed = append(failed, FileError{Path: rel, Err: err})
		default:
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	sort.Slice(failed, func(i, j int) bool { return failed[i].Path < failed[j].Path })

	s.logger.Debug("refresh complete", "root", root, "paths", len(paths), "files", len(files))
	return &Report{
		Root:    root,
		TakenAt: s.now(),
		Files:   files,
		Errors:  failed,
		Summary: Summarize(files),
	}, nil
}

// skipped reports whether any directory in the slash-separated rel path is
// one Scan would not descend into.
func (s *Scanner) skipped(rel string) bool {
	dirs := strings.Split(rel, "/")
	for _, name := range dirs[:len(dirs)-1] {
		if s.SkipDir(name) {
			return true
		}
	}
	return false
}

func under(path, rel string) bool {
	return path == rel || strings.HasPrefix(path, rel+"/")
}

package counter

import "errors"

var (
	// ErrIOUnavailable means the file could not be stat-ed or read.
	// The underlying fs error is wrapped alongside it.
	ErrIOUnavailable = errors.New("file unavailable")

	// ErrNotApplicable means the path is not something that gets a line
	// count: a directory, special file, excluded symlink or excluded
	// extension. Callers hide the badge rather than show an error.
	ErrNotApplicable = errors.New("not applicable")
)

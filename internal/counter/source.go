package counter

import (
	"io"
	"io/fs"
	"os"
	"time"
)

// FileMetadata is the result of a single stat call.
type FileMetadata struct {
	Size      int64
	ModTime   time.Time
	IsFile    bool
	IsSymlink bool
}

// MtimeMs returns the modification time in milliseconds since the epoch.
func (m FileMetadata) MtimeMs() int64 {
	return m.ModTime.UnixMilli()
}

// Source is the filesystem the counter reads from.
type Source interface {
	// Stat describes path without following a final symlink for
	// IsSymlink; size, mtime and IsFile describe the link target.
	Stat(path string) (FileMetadata, error)
	// ReadFile returns the whole file.
	ReadFile(path string) ([]byte, error)
	// ReadHead returns at most n bytes from the start of the file.
	ReadHead(path string, n int64) ([]byte, error)
}

// OSSource reads from the local filesystem.
type OSSource struct{}

var _ Source = OSSource{}

// Stat implements Source.
func (OSSource) Stat(path string) (FileMetadata, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return FileMetadata{}, err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return metadataOf(info, false), nil
	}

	target, err := os.Stat(path)
	if err != nil {
		// Dangling link: report it as a non-file symlink.
		return FileMetadata{ModTime: info.ModTime(), IsSymlink: true}, nil
	}
	return metadataOf(target, true), nil
}

func metadataOf(info fs.FileInfo, symlink bool) FileMetadata {
	return FileMetadata{
		Size:      info.Size(),
		ModTime:   info.ModTime(),
		IsFile:    info.Mode().IsRegular(),
		IsSymlink: symlink,
	}
}

// ReadFile implements Source.
func (OSSource) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadHead implements Source.
func (OSSource) ReadHead(path string, n int64) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, n))
}

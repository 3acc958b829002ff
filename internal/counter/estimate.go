package counter

import (
	"bytes"
	"math"
	"unicode/utf8"
)

const (
	// sampleSize is how much of an oversized file is read to estimate its
	// line count.
	sampleSize = 64 * 1024

	// binarySniffLen matches git's heuristic: a NUL byte in the first 8000
	// bytes marks a file as binary.
	binarySniffLen = 8000
)

// estimateLines extrapolates the newline density of a head sample to the
// full file size. A sample without newlines counts as one long line.
func estimateLines(sample []byte, size int64) int {
	if len(sample) == 0 || size <= 0 {
		return 0
	}
	newlines := bytes.Count(sample, []byte{'\n'})
	if newlines == 0 {
		return 1
	}
	return int(math.Ceil(float64(size) * float64(newlines) / float64(len(sample))))
}

// isBinary reports whether data should not be decoded as text.
func isBinary(data []byte) bool {
	if bytes.IndexByte(data[:min(len(data), binarySniffLen)], 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}

// countLines counts physical lines by scanning bytes, without decoding.
func countLines(data []byte) int {
	n := bytes.Count(data, []byte{'\n'})
	if len(data) > 0 && data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// Package syntax maps file extensions to comment syntax and decides which
// paths are eligible for line counting.
package syntax

package syntax

import (
	"path/filepath"
	"strings"
)

// Options adjusts the built-in tables. Extensions may be given with or
// without a leading dot and in any case.
type Options struct {
	// Overrides adds or replaces the comment syntax of extensions.
	Overrides map[string]CommentSyntax
	// IncludeExtensions are always eligible, even if they look binary.
	IncludeExtensions []string
	// ExcludeExtensions are never eligible. Exclusion beats inclusion.
	ExcludeExtensions []string
}

// Registry maps file extensions to comment syntax. It is read-only after
// New returns and safe for concurrent use.
type Registry struct {
	byExt   map[string]CommentSyntax
	byName  map[string]CommentSyntax
	include map[string]bool
	exclude map[string]bool
	langs   *languageNames
}

// New builds a registry from the defaults plus opts.
func New(opts Options) *Registry {
	r := &Registry{
		byExt:   make(map[string]CommentSyntax, len(defaultExtensions)+len(opts.Overrides)),
		byName:  defaultNames,
		include: make(map[string]bool, len(opts.IncludeExtensions)),
		exclude: make(map[string]bool, len(opts.ExcludeExtensions)),
		langs:   newLanguageNames(),
	}
	for ext, s := range defaultExtensions {
		r.byExt[ext] = s
	}
	for ext, s := range opts.Overrides {
		if ext = NormalizeExt(ext); ext != "" {
			r.byExt[ext] = s
		}
	}
	for _, ext := range opts.IncludeExtensions {
		if ext = NormalizeExt(ext); ext != "" {
			r.include[ext] = true
		}
	}
	for _, ext := range opts.ExcludeExtensions {
		if ext = NormalizeExt(ext); ext != "" {
			r.exclude[ext] = true
		}
	}
	return r
}

// Default returns a registry with only the built-in tables.
func Default() *Registry {
	return New(Options{})
}

// NormalizeExt lower-cases ext and ensures a leading dot.
// Returns "" for an empty extension.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Lookup returns the comment syntax registered for ext.
func (r *Registry) Lookup(ext string) (CommentSyntax, bool) {
	s, ok := r.byExt[NormalizeExt(ext)]
	return s, ok
}

// ForPath resolves the syntax for a file path, trying well-known base names
// (Makefile, Dockerfile) before the extension.
func (r *Registry) ForPath(path string) (CommentSyntax, bool) {
	base := strings.ToLower(filepath.Base(path))
	if s, ok := r.byName[base]; ok {
		return s, true
	}
	return r.Lookup(filepath.Ext(path))
}

// Eligible reports whether a path should be counted at all.
func (r *Registry) Eligible(path string) bool {
	ext := NormalizeExt(filepath.Ext(path))
	if ext == "" {
		return true
	}
	if r.exclude[ext] {
		return false
	}
	if r.include[ext] {
		return true
	}
	return !binaryExtensions[ext]
}

// Language returns a human-readable language name for path, or "" when
// nothing matches.
func (r *Registry) Language(path string) string {
	return r.langs.lookup(path)
}

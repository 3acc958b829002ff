package syntax

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
	lru "github.com/hashicorp/golang-lru/v2"
)

const languageCacheSize = 512

// languageNames memoizes chroma's filename matching, which walks every
// registered lexer's glob list on each call.
type languageNames struct {
	cache *lru.Cache[string, string]
}

func newLanguageNames() *languageNames {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, string](languageCacheSize)
	return &languageNames{cache: cache}
}

func (l *languageNames) lookup(path string) string {
	key := languageKey(path)
	if key == "" {
		return ""
	}
	if name, ok := l.cache.Get(key); ok {
		return name
	}

	var name string
	if lexer := lexers.Match(key); lexer != nil {
		name = lexer.Config().Name
	}
	l.cache.Add(key, name)
	return name
}

// languageKey collapses paths sharing an extension onto one cache key.
func languageKey(path string) string {
	base := filepath.Base(path)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	if ext := filepath.Ext(base); ext != "" && ext != base {
		return "file" + strings.ToLower(ext)
	}
	return base
}

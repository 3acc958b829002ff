package workspace

import "sort"

// Tally is a file and line count for one group.
type Tally struct {
	Files int `json:"files"`
	Lines int `json:"lines"`
}

// Summary aggregates a set of file entries.
type Summary struct {
	TotalFiles    int              `json:"totalFiles"`
	TotalLines    int              `json:"totalLines"`
	TotalCode     int              `json:"totalCode"`
	TotalComments int              `json:"totalComments"`
	TotalBlank    int              `json:"totalBlank"`
	ByExtension   map[string]Tally `json:"byExtension"`
	ByLanguage    map[string]Tally `json:"byLanguage"`
}

// NoExtension is the ByExtension key for files without one.
const NoExtension = "(none)"

// UnknownLanguage is the ByLanguage key for files no lexer recognizes.
const UnknownLanguage = "Other"

// Summarize totals files. Estimated entries contribute to line totals but
// not to the code/comment/blank totals.
func Summarize(files []FileEntry) Summary {
	s := Summary{
		ByExtension: make(map[string]Tally),
		ByLanguage:  make(map[string]Tally),
	}
	for _, f := range files {
		s.TotalFiles++
		s.TotalLines += f.Lines
		s.TotalCode += f.Code
		s.TotalComments += f.Comments
		s.TotalBlank += f.Blank

		ext := f.Extension
		if ext == "" {
			ext = NoExtension
		}
		bump(s.ByExtension, ext, f.Lines)

		lang := f.Language
		if lang == "" {
			lang = UnknownLanguage
		}
		bump(s.ByLanguage, lang, f.Lines)
	}
	return s
}

func bump(m map[string]Tally, key string, lines int) {
	t := m[key]
	t.Files++
	t.Lines += lines
	m[key] = t
}

// Group is a named tally, used to present a Summary map in order.
type Group struct {
	Name string
	Tally
}

// Sorted orders m by line count descending, then name.
func Sorted(m map[string]Tally) []Group {
	out := make([]Group, 0, len(m))
	for name, t := range m {
		out = append(out, Group{Name: name, Tally: t})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Lines != out[j].Lines {
			return out[i].Lines > out[j].Lines
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Package classify splits text into code, comment and blank lines using
// lexical comment markers.
package classify

import (
	"strings"

	"github.com/wilbur182/linecount/internal/syntax"
)

// Result is the per-line breakdown of a scanned text.
// Code + Comment + Blank always equals the number of physical lines.
type Result struct {
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
}

// Total returns the number of physical lines.
func (r Result) Total() int {
	return r.Code + r.Comment + r.Blank
}

// Add accumulates other into r.
func (r *Result) Add(other Result) {
	r.Code += other.Code
	r.Comment += other.Comment
	r.Blank += other.Blank
}

const byteOrderMark = "\uFEFF"

type state int

const (
	stateNormal state = iota
	stateInBlock
)

type markerKind int

const (
	markerNone markerKind = iota
	markerLine
	markerBlock
)

type marker struct {
	kind  markerKind
	open  string
	close string
}

// scanner is the two-state machine. Block comments never nest: while in a
// block only the active close marker is looked for.
type scanner struct {
	syntax syntax.CommentSyntax
	state  state
	closer string
	res    Result
}

// Classify scans text line by line and counts code, comment and blank lines.
// Blank lines count as blank even inside an open block comment. A line that
// has code before a comment marker counts as code. A leading byte-order
// mark is ignored.
func Classify(text string, s syntax.CommentSyntax) Result {
	text = strings.TrimPrefix(text, byteOrderMark)
	sc := &scanner{syntax: s}
	forEachLine(text, sc.line)
	return sc.res
}

// Lines returns the number of physical lines in text. A trailing newline
// does not start a new line.
func Lines(text string) int {
	n := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

func forEachLine(text string, fn func(string)) {
	for text != "" {
		var line string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			line, text = text, ""
		}
		fn(strings.TrimSuffix(line, "\r"))
	}
}

func (sc *scanner) line(line string) {
	if strings.TrimSpace(line) == "" {
		sc.res.Blank++
		return
	}

	if sc.state == stateInBlock {
		sc.res.Comment++
		if i := strings.Index(line, sc.closer); i >= 0 {
			sc.state = stateNormal
			sc.track(line[i+len(sc.closer):])
		}
		return
	}

	idx, m := sc.earliest(line)
	leading := strings.TrimSpace(line[:max(idx, 0)]) == ""
	switch m.kind {
	case markerNone:
		sc.res.Code++
	case markerLine:
		if leading {
			sc.res.Comment++
		} else {
			sc.res.Code++
		}
	case markerBlock:
		if leading {
			sc.res.Comment++
		} else {
			sc.res.Code++
		}
		sc.openBlock(m, line[idx+len(m.open):])
	}
}

// openBlock enters a block comment and follows the rest of the line so the
// state after the line is right, e.g. "/* a */ b /* c" leaves a block open.
func (sc *scanner) openBlock(m marker, rest string) {
	for {
		sc.state, sc.closer = stateInBlock, m.close
		i := strings.Index(rest, m.close)
		if i < 0 {
			return
		}
		sc.state = stateNormal
		rest = rest[i+len(m.close):]

		var idx int
		idx, m = sc.earliest(rest)
		if m.kind != markerBlock {
			return
		}
		rest = rest[idx+len(m.open):]
	}
}

// track follows the remainder of a line after a block closed. It only
// changes state, never the line's classification.
func (sc *scanner) track(rest string) {
	idx, m := sc.earliest(rest)
	if m.kind == markerBlock {
		sc.openBlock(m, rest[idx+len(m.open):])
	}
}

// earliest finds the first line or block-open marker in s. On a tie the
// longer marker wins so "--[[" beats "--".
func (sc *scanner) earliest(s string) (int, marker) {
	best, found := -1, marker{}
	consider := func(idx int, m marker) {
		if idx < 0 {
			return
		}
		if best < 0 || idx < best || (idx == best && len(m.open) > len(found.open)) {
			best, found = idx, m
		}
	}
	for _, lc := range sc.syntax.LineComment {
		if lc != "" {
			consider(strings.Index(s, lc), marker{kind: markerLine, open: lc})
		}
	}
	for _, bc := range sc.syntax.BlockComment {
		if bc.Open != "" && bc.Close != "" {
			consider(strings.Index(s, bc.Open), marker{kind: markerBlock, open: bc.Open, close: bc.Close})
		}
	}
	return best, found
}

package classify

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wilbur182/linecount/internal/syntax"
)

var cLike = syntax.CommentSyntax{
	LineComment:  []string{"//"},
	BlockComment: []syntax.BlockPair{{Open: "/*", Close: "*/"}},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Result
	}{
		{"mixed example", "a\n// c\n\n/* x\ny */\n", Result{Code: 1, Comment: 3, Blank: 1}},
		{"empty", "", Result{}},
		{"single newline", "\n", Result{Blank: 1}},
		{"no trailing newline", "a\nb", Result{Code: 2}},
		{"crlf", "a\r\n// b\r\n\r\n", Result{Code: 1, Comment: 1, Blank: 1}},
		{"whitespace only", "  \t\n\t\n", Result{Blank: 2}},
		{"indented line comment", "    // note\n", Result{Comment: 1}},
		{"code then line comment", "x := 1 // note\n", Result{Code: 1}},
		{"line comment hides block opener", "// /* not a block\nx\n", Result{Code: 1, Comment: 1}},
		{"block on one line", "/* one */\nx\n", Result{Code: 1, Comment: 1}},
		{"code after closer stays comment", "/* a */ x = 1\ny\n", Result{Code: 1, Comment: 1}},
		{"code before opener", "x = 1 /* start\nstill comment\nend */\ny\n", Result{Code: 2, Comment: 2}},
		{"code before closed opener", "x = 1 /* c */\ny\n", Result{Code: 2}},
		{"reopen after close", "/* a */ b /* c\nd\ne */\n", Result{Comment: 3}},
		{"reopen inside block close line", "/* a\nb */ c /* d\ne */\nf\n", Result{Code: 1, Comment: 3}},
		{"no nesting", "/* a /* b */\nc\n", Result{Code: 1, Comment: 1}},
		{"unterminated block", "x\n/* open\nmore\n", Result{Code: 1, Comment: 2}},
		{"line marker inside block is comment", "/*\n// inner\n*/\n", Result{Comment: 3}},
		{"closer outside block is code", "*/\n", Result{Code: 1}},
		{"byte order mark before line comment", "\uFEFF// x\ny\n", Result{Code: 1, Comment: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.text, cLike)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, Lines(tt.text), got.Total())
		})
	}
}

// Blank lines inside an open block comment count as blank, not comment.
func TestClassifyBlankInsideBlockComment(t *testing.T) {
	got := Classify("/*\n\n   \n*/\n", cLike)
	assert.Equal(t, Result{Comment: 2, Blank: 2}, got)
}

func TestClassifyEmptySyntax(t *testing.T) {
	got := Classify("a\n// b\n\n", syntax.CommentSyntax{})
	assert.Equal(t, Result{Code: 2, Blank: 1}, got)
}

func TestClassifyLongestMarkerWinsTie(t *testing.T) {
	lua, ok := syntax.Default().Lookup(".lua")
	assert.True(t, ok)

	got := Classify("--[[ block\nstill\n]]\nx = 1 -- trailing\n-- line\n", lua)
	assert.Equal(t, Result{Code: 1, Comment: 4}, got)
}

func TestClassifyBatchRemarks(t *testing.T) {
	bat, ok := syntax.Default().Lookup(".bat")
	assert.True(t, ok)

	text := "REM\n@REM hidden\nRem mixed\n:: label\n@echo off\nset X=1\n"
	got := Classify(text, bat)
	assert.Equal(t, Result{Code: 2, Comment: 4}, got)
}

func TestClassifySymmetricMarkers(t *testing.T) {
	py, ok := syntax.Default().Lookup(".py")
	assert.True(t, ok)

	text := "def f():\n    \"\"\"Doc.\"\"\"\n    \"\"\"\n    Long doc.\n    \"\"\"\n    return 1  # done\n"
	got := Classify(text, py)
	assert.Equal(t, Result{Code: 2, Comment: 4}, got)
}

func TestClassifyMultiplePairs(t *testing.T) {
	vue, ok := syntax.Default().Lookup(".vue")
	assert.True(t, ok)

	text := "<!-- header\n-->\n<template>\n/* style\n*/\n"
	got := Classify(text, vue)
	assert.Equal(t, Result{Code: 1, Comment: 4}, got)
}

func TestLines(t *testing.T) {
	assert.Equal(t, 0, Lines(""))
	assert.Equal(t, 1, Lines("a"))
	assert.Equal(t, 1, Lines("a\n"))
	assert.Equal(t, 2, Lines("a\n\n"))
	assert.Equal(t, 3, Lines("a\nb\nc"))
}

func TestClassifyTotalsMatchLineCount(t *testing.T) {
	syntaxes := []syntax.CommentSyntax{
		{LineComment: []string{"//"}},
		{LineComment: []string{"#"}},
		{BlockComment: []syntax.BlockPair{{Open: "/*", Close: "*/"}}},
		{BlockComment: []syntax.BlockPair{{Open: "<!--", Close: "-->"}}},
		cLike,
	}
	pieces := []string{"a", "b", " ", "\t", "\n", "\r\n", "//", "#", "/*", "*/", "<!--", "-->", "x = 1", "\n\n"}

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		var b strings.Builder
		for j := rng.IntN(40); j > 0; j-- {
			b.WriteString(pieces[rng.IntN(len(pieces))])
		}
		text := b.String()
		for _, s := range syntaxes {
			got := Classify(text, s)
			if got.Total() != Lines(text) {
				t.Fatalf("Classify(%q) = %+v, total %d, want %d lines", text, got, got.Total(), Lines(text))
			}
		}
	}
}

func TestResultAdd(t *testing.T) {
	r := Result{Code: 1, Comment: 2, Blank: 3}
	r.Add(Result{Code: 10, Comment: 20, Blank: 30})
	assert.Equal(t, Result{Code: 11, Comment: 22, Blank: 33}, r)
	assert.Equal(t, 66, r.Total())
}

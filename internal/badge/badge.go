// Package badge turns line count results into the short labels, severity
// levels and tooltips shown next to file entries.
package badge

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/wilbur182/linecount/internal/config"
	"github.com/wilbur182/linecount/internal/counter"
	"github.com/wilbur182/linecount/internal/styles"
)

// Level is a badge's severity.
type Level int

const (
	Normal Level = iota
	Warning
	Error
)

func (l Level) String() string {
	switch l {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "normal"
	}
}

// Options controls badge rendering.
type Options struct {
	Format           string
	WarningThreshold int
	ErrorThreshold   int
}

// FromConfig extracts badge options from the line count settings.
func FromConfig(lc config.LineCountConfig) Options {
	return Options{
		Format:           lc.DisplayFormat,
		WarningThreshold: lc.WarningThreshold,
		ErrorThreshold:   lc.ErrorThreshold,
	}
}

// Format returns the badge text for r. Estimated counts carry a "~" prefix.
func Format(r counter.Result, format string) string {
	var s string
	if format == config.DisplayExact {
		s = strconv.Itoa(r.Total)
	} else {
		s = Abbreviate(r.Total)
	}
	if r.Estimated {
		return "~" + s
	}
	return s
}

// Abbreviate shortens n to at most four characters below a trillion: 999,
// 1.2K, 12K, 1.5M, 2.1B. Values are truncated, never rounded up, so 9999 is
// 9.9K.
func Abbreviate(n int) string {
	switch {
	case n < 0:
		return "0"
	case n < 1_000:
		return strconv.Itoa(n)
	case n < 1_000_000:
		return scaled(n, 1_000, "K")
	case n < 1_000_000_000:
		return scaled(n, 1_000_000, "M")
	default:
		return scaled(n, 1_000_000_000, "B")
	}
}

func scaled(n, unit int, suffix string) string {
	whole := n / unit
	if whole >= 10 {
		return strconv.Itoa(whole) + suffix
	}
	tenth := (n % unit) * 10 / unit
	if tenth == 0 {
		return strconv.Itoa(whole) + suffix
	}
	return fmt.Sprintf("%d.%d%s", whole, tenth, suffix)
}

// Severity grades total against the thresholds. Reaching a threshold
// counts; a threshold <= 0 is disabled.
func Severity(total, warning, errorAt int) Level {
	switch {
	case errorAt > 0 && total >= errorAt:
		return Error
	case warning > 0 && total >= warning:
		return Warning
	default:
		return Normal
	}
}

// Tooltip describes r in words, including the breakdown when known.
func Tooltip(r counter.Result) string {
	if r.Estimated {
		return fmt.Sprintf("~%d %s (estimated)", r.Total, lines(r.Total))
	}
	if b, ok := r.Breakdown(); ok {
		return fmt.Sprintf("%d %s (code %d, comment %d, blank %d)",
			r.Total, lines(r.Total), b.Code, b.Comment, b.Blank)
	}
	return fmt.Sprintf("%d %s", r.Total, lines(r.Total))
}

func lines(n int) string {
	if n == 1 {
		return "line"
	}
	return "lines"
}

// Style returns the lipgloss style for a severity level.
func Style(l Level) lipgloss.Style {
	switch l {
	case Error:
		return styles.BadgeError
	case Warning:
		return styles.BadgeWarning
	default:
		return styles.BadgeNormal
	}
}

// Render returns the styled badge for r.
func Render(r counter.Result, opts Options) string {
	text := Format(r, opts.Format)
	return Style(Severity(r.Total, opts.WarningThreshold, opts.ErrorThreshold)).Render(text)
}

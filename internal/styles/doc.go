// Package styles holds the color themes and lipgloss styles used by the
// badge renderer and the file browser.
package styles

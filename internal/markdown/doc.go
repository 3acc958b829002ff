// Package markdown renders the Markdown report for the terminal preview.
package markdown

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/wilbur182/linecount/internal/browser"
	"github.com/wilbur182/linecount/internal/markdown"
	"github.com/wilbur182/linecount/internal/styles"
	"github.com/wilbur182/linecount/internal/watcher"
)

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse the project with live line count badges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The TUI owns the terminal, so logs go to a file or nowhere.
			if err := a.redirectLogs(); err != nil {
				return err
			}

			c := a.newCounter()
			deps := browser.Deps{
				Root:     a.root,
				Config:   a.cfg,
				Counter:  c,
				Scanner:  a.newScanner(c),
				Features: a.flags,
				Renderer: markdown.NewRenderer(styles.CurrentMarkdownTheme, a.logger),
				Logger:   a.logger,
			}
			if a.cfg.LineCount.Enabled {
				w, err := watcher.New(a.root, watcher.Options{
					ExcludeDirectories: a.cfg.LineCount.ExcludeDirectories,
					Debounce:           a.cfg.LineCount.DebounceDelay,
					Logger:             a.logger,
				})
				if err != nil {
					a.logger.Warn("file watcher unavailable, use r to refresh", "err", err)
				} else {
					defer w.Stop()
					deps.Watcher = w
				}
			}

			p := tea.NewProgram(browser.New(deps), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}
}

// redirectLogs sends logs to linecount-debug.log in the temp dir when
// debugging and discards them otherwise.
func (a *app) redirectLogs() error {
	if !a.debug {
		a.logger = newLogger(io.Discard, false)
		return nil
	}
	path := filepath.Join(os.TempDir(), "linecount-debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	a.logger = newLogger(f, true)
	a.logClose = f.Close
	return nil
}

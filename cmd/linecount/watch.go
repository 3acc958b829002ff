package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wilbur182/linecount/internal/badge"
	"github.com/wilbur182/linecount/internal/counter"
	"github.com/wilbur182/linecount/internal/watcher"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print updated badges as files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.LineCount.Enabled {
				return errors.New("line counting is disabled (lineCount.enabled = false)")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w, err := watcher.New(a.root, watcher.Options{
				ExcludeDirectories: a.cfg.LineCount.ExcludeDirectories,
				Debounce:           a.cfg.LineCount.DebounceDelay,
				Logger:             a.logger,
			})
			if err != nil {
				return fmt.Errorf("watch %s: %w", a.root, err)
			}
			defer w.Stop()

			c := a.newCounter()
			// Prime the cache so the first change reports against known counts.
			if _, err := a.newScanner(c).Scan(ctx, a.root); err != nil {
				return err
			}
			a.logger.Info("watching", "root", a.root, "files", c.Stats().Entries)
			return a.watchLoop(ctx, cmd, w.Events(), c)
		},
	}
}

func (a *app) watchLoop(ctx context.Context, cmd *cobra.Command, events <-chan []watcher.Change, c *counter.Counter) error {
	out := cmd.OutOrStdout()
	color := isTerminal(out)
	opts := badge.FromConfig(a.cfg.LineCount)

	for {
		select {
		case <-ctx.Done():
			return nil
		case batch, ok := <-events:
			if !ok {
				return nil
			}
			for _, change := range batch {
				if change.Op.Gone() {
					if n := c.InvalidatePrefix(change.Path); n > 0 {
						fmt.Fprintf(out, "-\t%s\t%s\n", a.rel(change.Path), change.Op)
					}
					continue
				}
				res, err := c.Count(ctx, change.Path)
				switch {
				case errors.Is(err, counter.ErrNotApplicable):
					continue
				case err != nil:
					a.logger.Warn("count failed", "path", change.Path, "err", err)
					continue
				}
				label := badge.Format(res, opts.Format)
				if color {
					label = badge.Render(res, opts)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", label, a.rel(change.Path), badge.Tooltip(res))
			}
		}
	}
}

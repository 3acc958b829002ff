package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wilbur182/linecount/internal/badge"
	"github.com/wilbur182/linecount/internal/counter"
)

type countOutput struct {
	Path   string         `json:"path"`
	Result counter.Result `json:"result"`
}

func newCountCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "count <path>...",
		Short: "Print the line count badge of files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.cfg.LineCount.Enabled {
				a.logger.Info("line counting is disabled")
				return nil
			}
			c := a.newCounter()
			out := cmd.OutOrStdout()
			color := isTerminal(out)
			opts := badge.FromConfig(a.cfg.LineCount)

			var results []countOutput
			var failed int
			for _, path := range args {
				res, err := c.Count(cmd.Context(), path)
				switch {
				case errors.Is(err, counter.ErrNotApplicable):
					a.logger.Debug("no badge", "path", path, "reason", err)
					continue
				case err != nil:
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					continue
				}

				if asJSON {
					results = append(results, countOutput{Path: path, Result: res})
					continue
				}
				label := badge.Format(res, opts.Format)
				if color {
					label = badge.Render(res, opts)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", label, path, badge.Tooltip(res))
			}

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d paths could not be counted", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	return cmd
}

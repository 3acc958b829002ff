package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wilbur182/linecount/internal/export"
	"github.com/wilbur182/linecount/internal/features"
	"github.com/wilbur182/linecount/internal/history"
	"github.com/wilbur182/linecount/internal/workspace"
)

func newReportCmd(a *app) *cobra.Command {
	var (
		format string
		out    string
		record bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export a workspace line count report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			if !a.cfg.LineCount.Enabled {
				return errors.New("line counting is disabled (lineCount.enabled = false)")
			}

			report, err := a.newScanner(a.newCounter()).Scan(cmd.Context(), a.root)
			if err != nil {
				return err
			}
			for _, e := range report.Errors {
				a.logger.Warn("file not counted", "path", e.Path, "err", e.Err)
			}

			var opts export.Options
			if record || a.flags.IsEnabled(features.HistorySnapshots) {
				delta, err := a.recordSnapshot(cmd, report)
				if err != nil {
					return err
				}
				opts.Delta = delta
			}

			var buf bytes.Buffer
			if err := export.Write(&buf, f, report, opts); err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), out, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", string(export.Markdown), "report format: csv, json or markdown")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the report to a file instead of stdout")
	cmd.Flags().BoolVar(&record, "record", false, "record a history snapshot and show the change since the last one")
	return cmd
}

// recordSnapshot stores the report totals and returns the change since the
// previous snapshot of the same root, or nil for the first one.
func (a *app) recordSnapshot(cmd *cobra.Command, report *workspace.Report) (*export.Delta, error) {
	store, err := history.Open(a.historyPath())
	if err != nil {
		return nil, err
	}
	defer store.Close()

	cur := history.FromReport(report)
	prev, err := store.Latest(cmd.Context(), cur.Root)
	hasPrev := err == nil
	if err != nil && !errors.Is(err, history.ErrNoSnapshot) {
		return nil, err
	}
	if _, err := store.Record(cmd.Context(), cur); err != nil {
		return nil, err
	}
	if !hasPrev {
		return nil, nil
	}
	return history.Diff(prev, cur), nil
}

// historyPath resolves the history database relative to the project root.
func (a *app) historyPath() string {
	p := a.cfg.History.DBPath
	if p == ":memory:" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(a.root, p)
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wilbur182/linecount/internal/config"
	"github.com/wilbur182/linecount/internal/watcher"
)

// newProject creates a project dir and isolates the user config dir.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCount(t *testing.T) {
	root := newProject(t, map[string]string{
		"main.go": "package main\n\n// entry point\nfunc main() {}\n",
	})
	path := filepath.Join(root, "main.go")

	out, _, err := run(t, "--project", root, "count", path, root)
	require.NoError(t, err)
	assert.Equal(t, "4\t"+path+"\t4 lines (code 2, comment 1, blank 1)\n", out, "directories get no badge")
}

func TestCountJSON(t *testing.T) {
	root := newProject(t, map[string]string{"a.py": "# hi\nx = 1\n"})

	out, _, err := run(t, "--project", root, "count", "--json", filepath.Join(root, "a.py"))
	require.NoError(t, err)
	assert.Contains(t, out, `"total": 2`)
	assert.Contains(t, out, `"comment": 1`)
	assert.Contains(t, out, `"estimated": false`)
}

func TestCountMissingFile(t *testing.T) {
	root := newProject(t, nil)
	_, stderr, err := run(t, "--project", root, "count", filepath.Join(root, "nope.go"))
	assert.Error(t, err)
	assert.Contains(t, stderr, "nope.go")
}

func TestReportCSV(t *testing.T) {
	root := newProject(t, map[string]string{
		"a.go":              "package a\n",
		"node_modules/x.js": "var x;\n",
	})

	out, _, err := run(t, "--project", root, "report", "--format", "csv")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "path,extension,lines,code,comments,blank,estimated", lines[0])
	assert.Equal(t, "a.go,.go,1,1,0,0,false", lines[1])
}

func TestReportToFile(t *testing.T) {
	root := newProject(t, map[string]string{"a.go": "package a\n"})
	dest := filepath.Join(t.TempDir(), "out", "report.json")

	out, _, err := run(t, "--project", root, "report", "-f", "json", "-o", dest)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"totalFiles": 1`)
}

func TestReportUnknownFormat(t *testing.T) {
	root := newProject(t, nil)
	_, _, err := run(t, "--project", root, "report", "--format", "xml")
	assert.Error(t, err)
}

func TestReportRecordShowsDelta(t *testing.T) {
	root := newProject(t, map[string]string{"a.go": "package a\n"})

	first, _, err := run(t, "--project", root, "report", "--record")
	require.NoError(t, err)
	assert.NotContains(t, first, "Change since")
	assert.FileExists(t, filepath.Join(root, ".linecount", "history.db"))

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.go"), []byte("package b\n\nvar b = 1\n"), 0o644))
	second, _, err := run(t, "--project", root, "report", "--record")
	require.NoError(t, err)
	assert.Contains(t, second, "+1 files, +3 lines")
}

func TestConfigShowYAML(t *testing.T) {
	root := newProject(t, map[string]string{".linecount.yaml": "lineCount:\n  sizeLimit: 1234\n"})

	out, _, err := run(t, "--project", root, "config", "show", "--yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "lineCount:")
	assert.Contains(t, out, "sizeLimit: 1234")
}

func TestConfigInit(t *testing.T) {
	root := newProject(t, nil)
	path := filepath.Join(t.TempDir(), "linecount.yaml")

	out, _, err := run(t, "--project", root, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default().LineCount.SizeLimit, cfg.LineCount.SizeLimit)

	_, _, err = run(t, "--project", root, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "--project", root, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestConfigSetFeature(t *testing.T) {
	root := newProject(t, nil)
	path := filepath.Join(t.TempDir(), "config.json")

	_, _, err := run(t, "--project", root, "--config", path, "config", "set-feature", "history_snapshots", "true")
	require.NoError(t, err)

	cfg, err := config.LoadFrom(path)
	require.NoError(t, err)
	assert.True(t, cfg.Features.Flags["history_snapshots"])

	out, _, err := run(t, "--project", root, "--config", path, "config", "features")
	require.NoError(t, err)
	assert.Regexp(t, `history_snapshots\s+true`, out)

	_, _, err = run(t, "--project", root, "--config", path, "config", "set-feature", "nope", "true")
	assert.Error(t, err)
}

func TestFeatureFlagOverride(t *testing.T) {
	root := newProject(t, nil)

	out, _, err := run(t, "--project", root, "--feature", "report_preview=false", "config", "features")
	require.NoError(t, err)
	assert.Regexp(t, `report_preview\s+false`, out)

	_, _, err = run(t, "--project", root, "--feature", "unknown", "config", "features")
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "linecount version "))
}

func TestEffectiveVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", effectiveVersion("v1.2.3"))
	assert.NotEmpty(t, effectiveVersion(""))
}

func TestWatchLoop(t *testing.T) {
	root := newProject(t, map[string]string{"a.go": "package a\n", "b.go": "package b\n"})
	a := &app{root: root, cfg: config.Default(), logger: newLogger(io.Discard, false)}
	c := a.newCounter()
	_, err := c.Count(context.Background(), filepath.Join(root, "b.go"))
	require.NoError(t, err)

	events := make(chan []watcher.Change, 1)
	events <- []watcher.Change{
		{Path: filepath.Join(root, "a.go"), Op: watcher.Write},
		{Path: filepath.Join(root, "b.go"), Op: watcher.Remove},
		{Path: root, Op: watcher.Write},
	}
	close(events)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	require.NoError(t, a.watchLoop(context.Background(), cmd, events, c))

	assert.Equal(t, "1\ta.go\t1 line (code 1, comment 0, blank 0)\n-\tb.go\tremove\n", out.String())
	assert.Equal(t, 1, c.Stats().Entries)
}

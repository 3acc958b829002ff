package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wilbur182/linecount/internal/config"
	"github.com/wilbur182/linecount/internal/counter"
	"github.com/wilbur182/linecount/internal/features"
	"github.com/wilbur182/linecount/internal/styles"
	"github.com/wilbur182/linecount/internal/syntax"
	"github.com/wilbur182/linecount/internal/workspace"
)

// app holds the flags and the state built from them before a subcommand
// runs.
type app struct {
	cfgFile  string
	project  string
	debug    bool
	features []string

	root     string
	cfg      *config.Config
	logger   *slog.Logger
	flags    *features.Manager
	logClose func() error
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "linecount",
		Short:         "Line count badges for a project tree",
		Long:          "linecount counts code, comment and blank lines per file, caches the\nresults by file size and modification time, and keeps them current as\nfiles change.",
		Version:       effectiveVersion(Version),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.logClose != nil {
				return a.logClose()
			}
			return nil
		},
	}
	root.SetVersionTemplate("linecount version {{.Version}}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "path to config file (JSON or YAML)")
	pf.StringVar(&a.project, "project", ".", "project root directory")
	pf.BoolVar(&a.debug, "debug", false, "enable debug logging")
	pf.StringArrayVar(&a.features, "feature", nil, "override a feature flag, e.g. --feature history_snapshots=true")

	root.AddCommand(
		newCountCmd(a),
		newReportCmd(a),
		newBrowseCmd(a),
		newWatchCmd(a),
		newConfigCmd(a),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	root, err := filepath.Abs(a.project)
	if err != nil {
		return fmt.Errorf("resolve project root: %w", err)
	}
	a.root = root

	if a.logger == nil {
		a.logger = newLogger(cmd.ErrOrStderr(), a.debug)
	}

	config.LoadDotEnv(filepath.Join(root, ".env"))
	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return fmt.Errorf("environment: %w", err)
	}
	a.cfg = cfg

	a.flags = features.New(cfg)
	for _, spec := range a.features {
		name, value, _ := strings.Cut(spec, "=")
		if !features.IsKnownFeature(name) {
			return fmt.Errorf("--feature %q: %w", name, features.ErrUnknownFeature)
		}
		enabled := true
		if value != "" {
			if enabled, err = strconv.ParseBool(value); err != nil {
				return fmt.Errorf("--feature %q: %w", spec, err)
			}
		}
		a.flags.SetOverride(name, enabled)
	}

	styles.ApplyTheme(cfg.UI.Theme)
	a.logger.Debug("config loaded", "root", root, "enabled", cfg.LineCount.Enabled,
		"sizeLimit", cfg.LineCount.SizeLimit, "theme", cfg.UI.Theme)
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfgFile != "" {
		cfg, err := config.LoadFrom(a.cfgFile)
		if errors.Is(err, fs.ErrNotExist) {
			// config init and set-feature create it
			cfg = config.Default()
			return cfg, cfg.Validate()
		}
		return cfg, err
	}
	return config.Load(a.root)
}

// configWritePath is where config init and feature changes are saved.
func (a *app) configWritePath() string {
	if a.cfgFile != "" {
		return a.cfgFile
	}
	return config.ConfigPath()
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	}))
}

func (a *app) newCounter() *counter.Counter {
	lc := a.cfg.LineCount
	return counter.New(counter.Options{
		SizeLimit:      lc.SizeLimit,
		FollowSymlinks: lc.FollowSymlinks,
		MaxEntries:     lc.MaxCacheEntries,
		Registry:       syntax.New(lc.SyntaxOptions()),
		Logger:         a.logger,
	})
}

func (a *app) newScanner(c *counter.Counter) *workspace.Scanner {
	return workspace.NewScanner(c, workspace.Options{
		ExcludeDirectories: a.cfg.LineCount.ExcludeDirectories,
		Logger:             a.logger,
	})
}

// isTerminal reports whether w is an interactive terminal. Colors are only
// emitted to terminals.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// rel shortens path for display relative to the project root.
func (a *app) rel(path string) string {
	if r, err := filepath.Rel(a.root, path); err == nil {
		return filepath.ToSlash(r)
	}
	return path
}

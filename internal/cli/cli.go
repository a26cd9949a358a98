// Package cli implements the foodtree command-line interface.
//
// # Commands
//
//   - analyze: full report (paths, depths, level census, top categories)
//   - trace, depth, levels, rank: single queries
//   - render: Graphviz diagrams (svg, pdf, png, dot) or a text outline
//   - export: write the tree as node-link JSON or a flat spec file
//   - ingest: derive a spec from an Open Food Facts export
//   - serve: read-only JSON HTTP API
//   - browse: interactive terminal tree browser
//   - cache: manage the diagram cache
//
// Every command reads the tree from --graph (node-link JSON), --spec (a
// TOML, YAML or JSON spec file) or, by default, the built-in dataset.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr; results go to stdout.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/foodtree/internal/config"
	"github.com/matzehuels/foodtree/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded in the root command's pre-run.
	Config config.Config

	flags    globalFlags
	shutdown func() error
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	spec       string
	graph      string
	configPath string
	otelStdout bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "foodtree analyzes food classification hierarchies",
		Long:         `foodtree builds a rooted food category tree from a declarative spec or an Open Food Facts export and answers questions about it: the path to any category, how deep each branch goes, how many categories sit at each level, and which top-level categories are largest.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.spec, "spec", "", "hierarchy spec file (.toml, .yaml, .json)")
	pf.StringVar(&c.flags.graph, "graph", "", "node-link JSON tree (from 'foodtree export')")
	pf.StringVar(&c.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/foodtree/config.toml)")
	pf.BoolVar(&c.flags.otelStdout, "otel-stdout", false, "print OpenTelemetry spans to stderr")
	root.MarkFlagsMutuallyExclusive("spec", "graph")

	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.depthCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.rankCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.ingestCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and installs telemetry.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("Loaded config", "path", c.flags.configPath, "cache", cfg.Cache.Backend)

	if c.flags.otelStdout {
		shutdown, err := setupTelemetry(os.Stderr)
		if err != nil {
			return err
		}
		c.shutdown = shutdown
	}
	return nil
}

// teardown flushes telemetry.
func (c *CLI) teardown() error {
	if c.shutdown == nil {
		return nil
	}
	err := c.shutdown()
	c.shutdown = nil
	return err
}

// Close releases resources held past a failed command, such as an
// unflushed telemetry exporter. It is safe to call more than once.
func (c *CLI) Close() error {
	return c.teardown()
}

// Package main is the entry point for the component-index CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/peixotorms/component-index/internal/catalog"
	"github.com/peixotorms/component-index/internal/config"
	"github.com/peixotorms/component-index/internal/mcp"
	"github.com/peixotorms/component-index/internal/tools"
)

var (
	version = "dev"
)

// rootFlag overrides the configured component directory.
var rootFlag string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := &cobra.Command{
		Use:   "component-index",
		Short: "Index and serve UI component snippets over MCP",
		Long: `component-index scans a directory of UI component snippets organised by
framework and serves them to coding agents over the Model Context Protocol
on stdio. Without a subcommand it runs the server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runServe,
	}
	rootCmd.PersistentFlags().StringVar(&rootFlag, "root", "", "component directory (overrides "+config.EnvRoot+")")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(getCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(browseCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the component index over MCP on stdio",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	env, err := load()
	if err != nil {
		return err
	}
	env.log.Info("serving", "root", env.cat.Root(), "frameworks", len(env.cat.Frameworks()), "version", version)

	srv := mcp.NewServer(env.cat, env.registry, env.log, version)
	err = srv.Serve(cmd.Context(), os.Stdin, os.Stdout)
	if err != nil && cmd.Context().Err() == nil {
		return err
	}
	env.log.Info("shutdown")
	return nil
}

// environment is the state shared by every subcommand.
type environment struct {
	cfg      *config.Config
	log      *slog.Logger
	cat      *catalog.Catalog
	registry *tools.Registry
}

// loadConfig resolves configuration and applies the --root flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if rootFlag != "" {
		abs, err := filepath.Abs(rootFlag)
		if err != nil {
			return nil, fmt.Errorf("resolve root %s: %w", rootFlag, err)
		}
		cfg.Root = abs
	}
	return cfg, nil
}

// load builds the catalogue and registers the tools. Logs go to stderr so
// stdout stays free for protocol messages and command output.
func load() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger(os.Stderr)

	cat := catalog.Build(cfg.Root, catalog.DefaultFrameworks(), log)
	registry := tools.NewRegistry()
	tools.Register(registry, cat)

	return &environment{cfg: cfg, log: log, cat: cat, registry: registry}, nil
}

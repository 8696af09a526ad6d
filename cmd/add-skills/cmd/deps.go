package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ludo-technologies/add-skills/internal/core"
	"github.com/ludo-technologies/add-skills/internal/logging"
	"github.com/spf13/cobra"
)

// deps holds shared dependencies for CLI commands.
type deps struct {
	config *core.ConfigManager
	cfg    *core.Config
	logger *slog.Logger
}

// newDeps loads the config and builds the logger. Called lazily by commands
// that need them.
func newDeps(cmd *cobra.Command) (*deps, error) {
	config, err := core.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("initializing config: %w", err)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	logger := logging.New(os.Stderr, level)
	logger.Debug("loaded config", "dir", config.ConfigDir())

	return &deps{
		config: config,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// orchestrator builds the add-flow pipeline from the loaded config.
func (d *deps) orchestrator() (*core.Orchestrator, error) {
	timeout, err := d.cfg.CloneTimeoutDuration()
	if err != nil {
		return nil, err
	}
	fetcher := core.NewFetcher(
		core.WithCloneTimeout(timeout),
		core.WithFetchLogger(d.logger),
	)
	store := core.NewStore(d.cfg.StoreDir)
	d.logger.Debug("using skill store", "root", store.Root())
	return core.NewOrchestrator(fetcher, store, d.logger), nil
}

// agent resolves the --agent flag, falling back to the configured default.
func (d *deps) agent(cmd *cobra.Command) (core.AgentDef, error) {
	name, _ := cmd.Flags().GetString("agent")
	if name == "" {
		name = d.cfg.DefaultAgent
	}
	return core.GetAgent(name)
}

// source parses a source argument and applies configured clone URL overrides.
func (d *deps) source(arg string) (*core.ParsedSource, error) {
	src, err := core.ParseSource(arg)
	if err != nil {
		return nil, err
	}
	src.ApplyCloneURLOverride(d.cfg.CloneURLOverrides)
	if src.IsRemote() {
		d.logger.Debug("parsed source", "type", src.Type, "repo", src.RepoKey(), "branch", src.Branch, "subpath", src.SubPath)
	}
	return src, nil
}

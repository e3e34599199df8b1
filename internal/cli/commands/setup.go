package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/cli/config"
	"github.com/leapstack-labs/fieldmap/internal/cli/output"
	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/internal/state"
	"github.com/leapstack-labs/fieldmap/internal/table"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

// CommandContext holds the dependencies shared by all commands: resolved
// configuration, the rule surface, the merged mapping tables and the
// renderer.
type CommandContext struct {
	Cfg      *config.Config
	Renderer *output.Renderer
	Rules    *mapping.RuleSet
	Tables   *table.Store
}

// NewCommandContext builds the shared dependencies. The mapping tables are
// loaded from the configured directory on top of the built-in exact table.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()

	rules := mapping.DefaultRuleSet()
	tables := table.NewStore(rules.ExactEntries())
	if err := tables.LoadDir(cfg.MappingsDir); err != nil {
		return nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Renderer: r,
		Rules:    rules,
		Tables:   tables,
	}, nil
}

// getConfig returns the configuration loaded by the root command, loading
// defaults when a command runs outside the root (tests, direct calls).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg, err := config.LoadConfig("", nil)
	if err != nil {
		cwd, _ := os.Getwd()
		return &config.Config{
			MappingsDir:  filepath.Join(cwd, config.DefaultMappingsDir),
			OutputDir:    filepath.Join(cwd, config.DefaultOutputDir),
			StatePath:    filepath.Join(cwd, config.DefaultStateFile),
			TopN:         config.DefaultTopN,
			OutputFormat: config.DefaultOutput,
			ProjectRoot:  cwd,
		}
	}
	return cfg
}

// sheetCompletion completes --sheet from the workbook named by the first
// positional argument. Non-Excel files have no sheets to offer.
func sheetCompletion(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	sheets, err := reader.SheetNames(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return sheets, cobra.ShellCompDirectiveNoFileComp
}

// openState opens the sqlite history store, creating its directory and
// schema as needed. The caller must Close it.
func openState(cfg *config.Config) (*state.Store, error) {
	dir := filepath.Dir(cfg.StatePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
	}

	st := state.NewStore()
	if err := st.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := st.InitSchema(); err != nil {
		st.Close()
		return nil, err
	}
	return st, nil
}

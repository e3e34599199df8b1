package commands

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/cli/output"
	"github.com/leapstack-labs/fieldmap/internal/state"
)

// RunsOptions holds options for the runs command.
type RunsOptions struct {
	Limit   int    // Max runs to show
	Learned bool   // Show learned mappings instead of runs
	Source  string // Filter learned mappings by source field name
	Format  string // Output format: text, markdown, json
}

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	opts := &RunsOptions{}
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show analysis run history",
		Long: `List recorded analyze runs from the local state database, newest
first, or the learned-mapping journal with --learned.`,
		Example: `  # Recent runs
  fieldmap runs

  # Learned-mapping journal for one field
  fieldmap runs --learned --source 保单号`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "Max rows to show")
	cmd.Flags().BoolVar(&opts.Learned, "learned", false, "Show the learned-mapping journal")
	cmd.Flags().StringVar(&opts.Source, "source", "", "Filter learned mappings by source field name")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runRuns(cmd *cobra.Command, opts *RunsOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	st, err := openState(cmdCtx.Cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.Learned {
		return renderLearned(r, st, opts)
	}
	return renderRuns(r, st, opts)
}

func renderRuns(r *output.Renderer, st *state.Store, opts *RunsOptions) error {
	runs, err := st.ListRuns(opts.Limit)
	if err != nil {
		return err
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(runs)
	}
	if len(runs) == 0 {
		r.Infof("No runs recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"started", "file", "sheet", "status", "fields", "mapped", "avg quality"})
	for _, run := range runs {
		t.AppendRow(table.Row{
			run.StartedAt.Local().Format(time.DateTime),
			run.File,
			run.Sheet,
			string(run.Status),
			run.TotalFields,
			run.MappedFields,
			fmt.Sprintf("%.1f", run.AvgQuality),
		})
	}
	t.Render()
	fmt.Fprintf(r.Out(), "(%d runs)\n", len(runs))
	return nil
}

func renderLearned(r *output.Renderer, st *state.Store, opts *RunsOptions) error {
	learned, err := st.ListLearned(opts.Source, opts.Limit)
	if err != nil {
		return err
	}

	if r.Mode() == output.ModeJSON {
		return r.JSON(learned)
	}
	if len(learned) == 0 {
		r.Infof("No learned mappings recorded")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Out())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"learned", "source name", "canonical name", "group", "dtype"})
	for _, lm := range learned {
		t.AppendRow(table.Row{
			lm.LearnedAt.Local().Format(time.DateTime),
			lm.SourceName,
			lm.CanonicalName,
			lm.Group,
			lm.DType,
		})
	}
	t.Render()
	fmt.Fprintf(r.Out(), "(%d mappings)\n", len(learned))
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/cli/output"
	"github.com/leapstack-labs/fieldmap/internal/report"
	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/quality"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Format string // Output format: text, markdown, json
	Out    string // Write the quality markdown report to this path
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate <mappings.json>",
		Short: "Score the quality of a mapping artifact",
		Long: `Re-score a previously generated mapping artifact.

Each mapping is checked on four dimensions: naming convention, business
group consistency, semantic accuracy and data type consistency. Fields
scoring below 80 land on the needs-review list.`,
		Example: `  # Score an artifact from a previous analyze run
  fieldmap validate output/policies_mappings.json

  # Write the markdown report
  fieldmap validate output/policies_mappings.json --out quality.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write the quality markdown report to this path")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions, path string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	records, err := report.ReadMappingArtifact(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("no mappings in %s", path)
	}

	ms := make([]core.FieldMapping, len(records))
	for i, rec := range records {
		ms[i] = core.FieldMapping{
			SourceName:    rec.CnName,
			CanonicalName: rec.FieldName,
			Group:         rec.Group,
			DType:         rec.DType,
			Description:   rec.Description,
			Notes:         rec.Notes,
			Tier:          tierOfRecord(cmdCtx, rec),
		}
	}

	validator := quality.NewValidator(cmdCtx.Rules)
	scores, stats := validator.ValidateAll(ms)

	if opts.Out != "" {
		if err := report.WriteQualityFile(opts.Out, scores, stats); err != nil {
			return err
		}
	}

	switch r.Mode() {
	case output.ModeJSON:
		return r.JSON(struct {
			Scores []core.QualityScore `json:"scores"`
			Stats  quality.Stats       `json:"stats"`
		}{Scores: scores, Stats: stats})
	case output.ModeMarkdown:
		if err := report.WriteQualityMarkdown(r.Out(), scores, stats); err != nil {
			return err
		}
	default:
		r.Heading(fmt.Sprintf("Quality: %s", path))
		report.RenderScores(r.Out(), scores)
		r.Infof("Average score: %.1f across %d fields", stats.AvgScore, stats.Total)
		if n := len(stats.NeedsReview); n > 0 {
			r.Warnf("%d fields need review (score below 80)", n)
		}
	}
	if opts.Out != "" {
		r.Successf("Wrote %s", opts.Out)
	}
	return nil
}

// tierOfRecord reconstructs the resolution tier of a serialized mapping.
// The artifact does not carry the tier, so it is re-derived: a table hit
// means exact, is_mapped without one means a rule fired, anything else is
// the hash fallback.
func tierOfRecord(cmdCtx *CommandContext, rec core.MappingRecord) core.Tier {
	if _, ok := cmdCtx.Tables.Get(rec.CnName); ok {
		return core.TierExact
	}
	if rec.IsMapped {
		return core.TierKeyword
	}
	return core.TierFallback
}

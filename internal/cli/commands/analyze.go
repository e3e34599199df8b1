package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/fieldmap/internal/cli/output"
	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/internal/report"
	"github.com/leapstack-labs/fieldmap/internal/state"
	"github.com/leapstack-labs/fieldmap/internal/table"
	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
	"github.com/leapstack-labs/fieldmap/pkg/quality"
)

// AnalyzeOptions holds options for the analyze command.
type AnalyzeOptions struct {
	Sheet    string // Sheet name for Excel inputs; first sheet when empty
	Learn    bool   // Persist fallback mappings to the custom table
	Format   string // Output format: text, markdown, json
	NoReport bool   // Skip writing artifact files
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Translate field names and score mapping quality",
		Long: `Read a CSV or Excel file, translate its column names into
standardized snake_case identifiers and score each mapping.

The resolver tries an exact table match first, then priority-ordered
pattern rules, then keyword assembly, and finally a stable hash-derived
placeholder. Column values refine the inferred data type.

Generated artifacts (mappings JSON, HTML report, quality markdown) are
written under the output directory. Each run is recorded in the local
state database.`,
		Example: `  # Analyze a policy export
  fieldmap analyze policies.xlsx

  # Pick a sheet and persist unresolved mappings
  fieldmap analyze policies.xlsx --sheet "明细" --learn

  # Machine-readable output
  fieldmap analyze policies.csv --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "Sheet name for Excel inputs")
	cmd.Flags().BoolVar(&opts.Learn, "learn", false, "Persist fallback mappings to the custom table")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")
	cmd.Flags().BoolVar(&opts.NoReport, "no-report", false, "Skip writing artifact files")
	_ = cmd.RegisterFlagCompletionFunc("sheet", sheetCompletion)

	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *AnalyzeOptions, file string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cfg := cmdCtx.Cfg
	r := cmdCtx.Renderer
	if opts.Format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(opts.Format))
	}

	outputDir := cfg.OutputDir
	topN := cfg.TopN

	tbl, err := reader.ReadFile(file, opts.Sheet)
	if err != nil {
		return err
	}

	st, err := openState(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.BeginRun(file, tbl.Sheet)
	if err != nil {
		return err
	}

	result, err := analyzeTable(cmdCtx, st, run.ID, tbl, topN, opts.Learn)
	if err != nil {
		_ = st.CompleteRun(run.ID, state.RunTotals{}, err.Error())
		return err
	}
	for _, resolveErr := range result.Errors {
		r.Warnf("%v", resolveErr)
	}

	totals := state.RunTotals{
		TotalFields: len(result.Mappings),
		AvgQuality:  result.Stats.AvgScore,
	}
	for _, m := range result.Mappings {
		if m.Tier.Mapped() {
			totals.MappedFields++
		}
	}
	if err := st.CompleteRun(run.ID, totals, ""); err != nil {
		return err
	}

	var artifacts []string
	if !opts.NoReport {
		artifacts, err = writeArtifacts(outputDir, file, tbl, result)
		if err != nil {
			return err
		}
	}

	return renderAnalysis(r, file, result, artifacts)
}

// analysisResult bundles the outputs of one analyze pipeline run.
type analysisResult struct {
	Summaries []reader.Summary
	Mappings  []core.FieldMapping
	Errors    []error
	Scores    []core.QualityScore
	Stats     quality.Stats
	Learned   int
}

func analyzeTable(cmdCtx *CommandContext, st *state.Store, runID string, tbl *reader.Table, topN int, learn bool) (*analysisResult, error) {
	res := &analysisResult{
		Summaries: reader.SummarizeAll(tbl, topN),
	}

	resolver := mapping.NewResolver(cmdCtx.Rules, cmdCtx.Tables)
	fields := make([]mapping.Field, len(tbl.Columns))
	for i, col := range tbl.Columns {
		fields[i] = mapping.Field{Name: col.Name, Samples: col.Values}
	}
	res.Mappings, res.Errors = resolver.ResolveBatch(fields)
	annotateMappings(res.Mappings, res.Summaries)

	if learn {
		learned, err := learnFallbacks(cmdCtx.Tables, st, runID, res.Mappings)
		if err != nil {
			return nil, err
		}
		res.Learned = learned
		if learned > 0 {
			// Learned entries are exact matches on the next pass.
			res.Mappings, res.Errors = resolver.ResolveBatch(fields)
			annotateMappings(res.Mappings, res.Summaries)
		}
	}

	validator := quality.NewValidator(cmdCtx.Rules)
	res.Scores, res.Stats = validator.ValidateAll(res.Mappings)
	return res, nil
}

// annotateMappings attaches data observations from the column summaries to
// the mappings they describe.
func annotateMappings(ms []core.FieldMapping, sums []reader.Summary) {
	byName := make(map[string]reader.Summary, len(sums))
	for _, s := range sums {
		byName[s.Name] = s
	}
	for i := range ms {
		s, ok := byName[ms[i].SourceName]
		if !ok {
			continue
		}
		var notes []string
		if s.NullPct > 50 {
			notes = append(notes, fmt.Sprintf("%.1f%% null", s.NullPct))
		}
		if s.Numeric != nil && s.Numeric.Min < 0 {
			notes = append(notes, "contains negative values")
		}
		ms[i].Notes = strings.Join(notes, "; ")
	}
}

// learnFallbacks writes every fallback-tier mapping into the writable
// custom table and records it against the run.
func learnFallbacks(tables *table.Store, st *state.Store, runID string, ms []core.FieldMapping) (int, error) {
	learned := 0
	for _, m := range ms {
		if m.Tier != core.TierFallback {
			continue
		}
		entry := core.MappingEntry{
			EnName:      m.CanonicalName,
			Group:       m.Group,
			DType:       m.DType,
			Description: m.SourceName + " (learned)",
		}
		if err := tables.Learn(m.SourceName, entry); err != nil {
			return learned, err
		}
		if err := st.RecordLearned(runID, state.LearnedMapping{
			SourceName:    m.SourceName,
			CanonicalName: m.CanonicalName,
			Group:         string(m.Group),
			DType:         string(m.DType),
		}); err != nil {
			return learned, err
		}
		learned++
	}
	return learned, nil
}

func writeArtifacts(outputDir, file string, tbl *reader.Table, res *analysisResult) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))

	records := recordsOf(res.Mappings)

	mappingPath := filepath.Join(outputDir, base+"_mappings.json")
	if err := report.WriteMappingFile(mappingPath, res.Mappings); err != nil {
		return nil, err
	}

	htmlPath := filepath.Join(outputDir, base+"_report.html")
	htmlReport := report.AnalysisReport{
		File:        filepath.Base(file),
		GeneratedAt: time.Now(),
		Sheets: []report.SheetSection{{
			Name:      tbl.Sheet,
			Rows:      tbl.Rows(),
			Summaries: res.Summaries,
			Mappings:  records,
		}},
	}
	if err := report.WriteHTMLFile(htmlPath, htmlReport); err != nil {
		return nil, err
	}

	qualityPath := filepath.Join(outputDir, base+"_quality.md")
	if err := report.WriteQualityFile(qualityPath, res.Scores, res.Stats); err != nil {
		return nil, err
	}

	return []string{mappingPath, htmlPath, qualityPath}, nil
}

func renderAnalysis(r *output.Renderer, file string, res *analysisResult, artifacts []string) error {
	if r.Mode() == output.ModeJSON {
		return r.JSON(struct {
			File     string               `json:"file"`
			Mappings []core.MappingRecord `json:"mappings"`
			Scores   []core.QualityScore  `json:"scores"`
			Stats    quality.Stats        `json:"stats"`
			Learned  int                  `json:"learned,omitempty"`
		}{
			File:     file,
			Mappings: recordsOf(res.Mappings),
			Scores:   res.Scores,
			Stats:    res.Stats,
			Learned:  res.Learned,
		})
	}

	r.Heading(fmt.Sprintf("Field mappings: %s", filepath.Base(file)))
	report.RenderMappings(r.Out(), recordsOf(res.Mappings))

	r.Heading("Quality")
	report.RenderScores(r.Out(), res.Scores)
	r.Infof("Average score: %.1f across %d fields", res.Stats.AvgScore, res.Stats.Total)
	if n := len(res.Stats.NeedsReview); n > 0 {
		r.Warnf("%d fields need review (score below 80)", n)
	}
	if res.Learned > 0 {
		r.Successf("Learned %d new mappings", res.Learned)
	}
	for _, p := range artifacts {
		r.Successf("Wrote %s", p)
	}
	return nil
}

func recordsOf(ms []core.FieldMapping) []core.MappingRecord {
	records := make([]core.MappingRecord, len(ms))
	for i, m := range ms {
		records[i] = m.Record()
	}
	return records
}

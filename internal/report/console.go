package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// RenderMappings prints mapping records as a console table.
func RenderMappings(w io.Writer, records []core.MappingRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(no mappings)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Field name", "Group", "Type", "Role", "Agg", "Mapped"})
	for _, r := range records {
		mapped := "yes"
		if !r.IsMapped {
			mapped = "no"
		}
		t.AppendRow(table.Row{r.CnName, r.FieldName, r.Group, r.DType, r.Role, r.Aggregation, mapped})
	}
	t.Render()
	fmt.Fprintf(w, "(%d fields)\n", len(records))
}

// RenderScores prints quality scores as a console table with the level
// coloured by severity.
func RenderScores(w io.Writer, scores []core.QualityScore) {
	if len(scores) == 0 {
		fmt.Fprintln(w, "(no scores)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Source", "Field name", "Naming", "Group", "Semantic", "Type", "Overall", "Level"})
	for _, s := range scores {
		t.AppendRow(table.Row{
			s.SourceName, s.CanonicalName,
			s.Naming, s.Grouping, s.Semantic, s.TypeCheck,
			s.Overall, levelColor(s.Level).Sprint(s.Level),
		})
	}
	t.Render()
	fmt.Fprintf(w, "(%d fields)\n", len(scores))
}

func levelColor(l core.QualityLevel) text.Colors {
	switch l {
	case core.LevelExcellent:
		return text.Colors{text.FgGreen}
	case core.LevelGood:
		return text.Colors{text.FgCyan}
	case core.LevelFair:
		return text.Colors{text.FgYellow}
	default:
		return text.Colors{text.FgRed}
	}
}

// RenderSummaries prints per-column statistics as a console table.
func RenderSummaries(w io.Writer, sums []reader.Summary) {
	if len(sums) == 0 {
		fmt.Fprintln(w, "(no columns)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Column", "Rows", "Nulls", "Null %", "Unique", "Numeric mean"})
	for _, s := range sums {
		mean := ""
		if s.Numeric != nil {
			mean = fmt.Sprintf("%.2f", s.Numeric.Mean)
		}
		t.AppendRow(table.Row{
			s.Name, s.Rows, s.Nulls, fmt.Sprintf("%.1f", s.NullPct), s.Unique, mean,
		})
	}
	t.Render()
}

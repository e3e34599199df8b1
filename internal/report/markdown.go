package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/quality"
)

// needsReviewLimit caps the needs-review section of the Markdown report.
const needsReviewLimit = 20

// excellentExamples caps the excellent-mappings example table.
const excellentExamples = 10

// WriteQualityMarkdown renders the quality report: stats header, the worst
// offenders with their issues and suggestions, a few excellent examples,
// and a score distribution.
func WriteQualityMarkdown(w io.Writer, scores []core.QualityScore, stats quality.Stats) error {
	fmt.Fprintln(w, "# Mapping quality report")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "- Fields scored: %d\n", stats.Total)
	fmt.Fprintf(w, "- Average score: %.1f\n", stats.AvgScore)
	for _, level := range []core.QualityLevel{
		core.LevelExcellent, core.LevelGood, core.LevelFair, core.LevelPoor,
	} {
		fmt.Fprintf(w, "- %s: %d\n", capitalize(string(level)), stats.ByLevel[level])
	}
	fmt.Fprintln(w)

	writeDistribution(w, stats)
	writeNeedsReview(w, stats)
	writeExcellent(w, scores)
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func writeDistribution(w io.Writer, stats quality.Stats) {
	if stats.Total == 0 {
		return
	}
	fmt.Fprintln(w, "## Score distribution")
	fmt.Fprintln(w)
	for _, level := range []core.QualityLevel{
		core.LevelExcellent, core.LevelGood, core.LevelFair, core.LevelPoor,
	} {
		n := stats.ByLevel[level]
		bar := strings.Repeat("█", barWidth(n, stats.Total))
		fmt.Fprintf(w, "%-10s %-40s %d\n", level, bar, n)
	}
	fmt.Fprintln(w)
}

func barWidth(n, total int) int {
	if total == 0 {
		return 0
	}
	return 40 * n / total
}

func writeNeedsReview(w io.Writer, stats quality.Stats) {
	if len(stats.NeedsReview) == 0 {
		return
	}
	fmt.Fprintln(w, "## Needs review")
	fmt.Fprintln(w)

	list := stats.NeedsReview
	if len(list) > needsReviewLimit {
		list = list[:needsReviewLimit]
	}
	for _, s := range list {
		fmt.Fprintf(w, "### %s → %s (score %d, %s)\n\n", s.SourceName, s.CanonicalName, s.Overall, s.Level)
		for _, issue := range s.Issues {
			fmt.Fprintf(w, "- ⚠ %s\n", issue)
		}
		for _, sug := range s.Suggestions {
			fmt.Fprintf(w, "- 💡 %s\n", sug)
		}
		fmt.Fprintln(w)
	}
	if len(stats.NeedsReview) > needsReviewLimit {
		fmt.Fprintf(w, "…and %d more below the review threshold.\n\n", len(stats.NeedsReview)-needsReviewLimit)
	}
}

func writeExcellent(w io.Writer, scores []core.QualityScore) {
	var best []core.QualityScore
	for _, s := range scores {
		if s.Level == core.LevelExcellent {
			best = append(best, s)
			if len(best) == excellentExamples {
				break
			}
		}
	}
	if len(best) == 0 {
		return
	}

	fmt.Fprintln(w, "## Excellent examples")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "| Source | Field name | Score |")
	fmt.Fprintln(w, "| --- | --- | --- |")
	for _, s := range best {
		fmt.Fprintf(w, "| %s | %s | %d |\n", s.SourceName, s.CanonicalName, s.Overall)
	}
	fmt.Fprintln(w)
}

// WriteQualityFile renders the quality report to a file.
func WriteQualityFile(path string, scores []core.QualityScore, stats quality.Stats) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create quality report: %w", err)
	}
	if err := WriteQualityMarkdown(f, scores, stats); err != nil {
		f.Close()
		return fmt.Errorf("write quality report: %w", err)
	}
	return f.Close()
}

package quality

import (
	"sort"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// reviewThreshold is the overall score below which a mapping lands on the
// needs-review list.
const reviewThreshold = 80

// Stats summarizes a batch validation run.
type Stats struct {
	Total    int                       `json:"total"`
	ByLevel  map[core.QualityLevel]int `json:"by_level"`
	AvgScore float64                   `json:"avg_score"`
	// NeedsReview holds the scores below the review threshold, worst
	// first.
	NeedsReview []core.QualityScore `json:"needs_review,omitempty"`
}

// ValidateAll scores every mapping and aggregates the results. Scores are
// returned in input order; the needs-review list is sorted ascending by
// overall score with source name as tie-break so reports are stable.
func (v *Validator) ValidateAll(ms []core.FieldMapping) ([]core.QualityScore, Stats) {
	scores := make([]core.QualityScore, 0, len(ms))
	stats := Stats{
		Total:   len(ms),
		ByLevel: make(map[core.QualityLevel]int),
	}

	sum := 0
	for _, m := range ms {
		s := v.Validate(m)
		scores = append(scores, s)
		stats.ByLevel[s.Level]++
		sum += s.Overall
		if s.Overall < reviewThreshold {
			stats.NeedsReview = append(stats.NeedsReview, s)
		}
	}
	if stats.Total > 0 {
		stats.AvgScore = float64(sum) / float64(stats.Total)
	}

	sort.SliceStable(stats.NeedsReview, func(i, j int) bool {
		a, b := stats.NeedsReview[i], stats.NeedsReview[j]
		if a.Overall != b.Overall {
			return a.Overall < b.Overall
		}
		return a.SourceName < b.SourceName
	})
	return scores, stats
}

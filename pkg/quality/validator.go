// Package quality scores resolved field mappings along four dimensions
// (naming grammar, group consistency, semantic accuracy, type consistency)
// and aggregates the per-field scores into batch statistics.
package quality

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

// Validator scores mappings against the same rule surface the resolver
// used to produce them. It is stateless and safe for concurrent use.
type Validator struct {
	rules *mapping.RuleSet
}

// NewValidator builds a validator over a rule set.
func NewValidator(rules *mapping.RuleSet) *Validator {
	return &Validator{rules: rules}
}

// Validate scores one mapping. It inspects only the mapping itself, never
// the underlying samples; type consistency is judged from the canonical
// name against the recorded dtype.
func (v *Validator) Validate(m core.FieldMapping) core.QualityScore {
	s := core.QualityScore{
		SourceName:    m.SourceName,
		CanonicalName: m.CanonicalName,
	}

	var issues []string
	s.Naming, issues = v.checkNaming(m, issues)
	s.Grouping, issues = v.checkGrouping(m, issues)
	s.Semantic, issues = v.checkSemantic(m, issues)
	s.TypeCheck, issues = v.checkDType(m, issues)

	s.Overall = clamp(s.Naming+s.Grouping+s.Semantic+s.TypeCheck, 0, 100)
	s.Level = core.LevelForScore(s.Overall)

	sort.Strings(issues)
	s.Issues = issues
	s.Suggestions = v.suggest(m, s.Overall)
	return s
}

// suggest proposes a keyword-derived replacement name for low scorers.
func (v *Validator) suggest(m core.FieldMapping, overall int) []string {
	if overall >= 70 {
		return nil
	}
	tokens := v.rules.Translate(m.SourceName)
	if len(tokens) == 0 {
		return nil
	}
	candidate := mapping.Normalize(strings.Join(tokens, "_"))
	if candidate == "" || candidate == m.CanonicalName {
		return nil
	}
	return []string{"consider renaming to " + candidate}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

package quality

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

const (
	namingMax   = 20
	groupingMax = 30
	semanticMax = 30
	dtypeMax    = 20
)

var snakeCase = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// checkNaming awards up to 20 points: 10 for snake_case grammar, 5 for
// staying within the length cap, 5 for not being a hash placeholder.
func (v *Validator) checkNaming(m core.FieldMapping, issues []string) (int, []string) {
	name := m.CanonicalName
	score := 0

	switch {
	case !snakeCase.MatchString(name):
		issues = append(issues, fmt.Sprintf("naming: %q is not valid snake_case", name))
	case strings.Contains(name, "__") || strings.HasSuffix(name, "_"):
		issues = append(issues, fmt.Sprintf("naming: %q has stray underscores", name))
	default:
		score += 10
	}

	if len(name) <= mapping.MaxNameLength {
		score += 5
	} else {
		issues = append(issues, fmt.Sprintf("naming: %q exceeds %d characters", name, mapping.MaxNameLength))
	}

	if isPlaceholder(name) {
		issues = append(issues, fmt.Sprintf("naming: %q is a generated placeholder", name))
	} else {
		score += 5
	}
	return score, issues
}

func isPlaceholder(name string) bool {
	return name == "field" ||
		name == "unknown_field" ||
		strings.HasPrefix(name, "field_") ||
		strings.HasSuffix(name, "_field")
}

// checkGrouping awards 30 points when the canonical name carries at least
// one term from its group's vocabulary. Groups without a vocabulary
// (only "general" in the built-in tables) always pass.
func (v *Validator) checkGrouping(m core.FieldMapping, issues []string) (int, []string) {
	vocab := v.rules.GroupVocab(m.Group)
	if len(vocab) == 0 {
		return groupingMax, issues
	}
	for _, term := range vocab {
		if containsTerm(m.CanonicalName, term) {
			return groupingMax, issues
		}
	}
	sample := vocab
	if len(sample) > 3 {
		sample = sample[:3]
	}
	issues = append(issues, fmt.Sprintf(
		"group: %q lacks %s vocabulary (expected terms like %s)",
		m.CanonicalName, m.Group, strings.Join(sample, ", ")))
	return 0, issues
}

// checkSemantic awards up to 30 points for how faithfully the canonical
// name translates the source. Exact-tier mappings score full marks; other
// tiers are judged by token overlap with the expected translation,
// penalized for leaked source-script characters.
func (v *Validator) checkSemantic(m core.FieldMapping, issues []string) (int, []string) {
	if m.Tier == core.TierExact {
		return semanticMax, issues
	}

	score := semanticMax
	if expected := v.rules.ExpectedTokens(m.SourceName); len(expected) > 0 {
		overlap := 0
		for _, want := range expected {
			if containsTerm(m.CanonicalName, want) {
				overlap++
			}
		}
		score = semanticMax * overlap / len(expected)
		if overlap < len(expected) {
			issues = append(issues, fmt.Sprintf(
				"semantic: %q covers %d of %d expected terms for %q",
				m.CanonicalName, overlap, len(expected), m.SourceName))
		}
	}

	if hasNonASCII(m.CanonicalName) {
		score -= 15
		issues = append(issues, fmt.Sprintf("semantic: %q contains untranslated characters", m.CanonicalName))
	}
	if len([]rune(m.SourceName)) >= 4 && !strings.Contains(m.CanonicalName, "_") {
		score -= 5
		issues = append(issues, fmt.Sprintf(
			"semantic: single token %q may under-translate %q", m.CanonicalName, m.SourceName))
	}
	if score < 0 {
		score = 0
	}
	return score, issues
}

func hasNonASCII(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII {
			return true
		}
	}
	return false
}

// numericTerms are name fragments that imply a numeric column.
var numericTerms = []string{
	"amount", "premium", "fee", "cost", "price", "commission",
	"ratio", "rate", "factor", "count", "frequency", "score",
	"tonnage", "displacement", "power", "weight", "age",
}

// checkDType awards 20 points when the canonical name's shape agrees with
// the recorded dtype, 0 when it contradicts it, and 10 when the name gives
// no signal either way.
func (v *Validator) checkDType(m core.FieldMapping, issues []string) (int, []string) {
	name := m.CanonicalName

	expected, signal := expectedDType(name)
	if !signal {
		return dtypeMax / 2, issues
	}
	if m.DType == expected {
		return dtypeMax, issues
	}
	issues = append(issues, fmt.Sprintf(
		"dtype: %q suggests %s but column is typed %s", name, expected, m.DType))
	return 0, issues
}

func expectedDType(name string) (core.DType, bool) {
	switch {
	case strings.HasSuffix(name, "_time") || strings.HasSuffix(name, "_date") ||
		name == "time" || name == "date":
		return core.DTypeDatetime, true
	case strings.HasPrefix(name, "is_") || strings.HasSuffix(name, "_flag"):
		return core.DTypeBoolean, true
	case strings.HasSuffix(name, "_number") || strings.HasSuffix(name, "_id") ||
		strings.HasSuffix(name, "id_number") || strings.HasSuffix(name, "_code"):
		// Identifiers stay text even when every digit parses.
		return core.DTypeString, true
	case strings.HasSuffix(name, "_type") || strings.HasSuffix(name, "_category") ||
		strings.HasSuffix(name, "_status") || strings.HasSuffix(name, "_name"):
		return core.DTypeString, true
	}
	for _, term := range numericTerms {
		if containsTerm(name, term) {
			return core.DTypeNumber, true
		}
	}
	return "", false
}

// containsTerm reports whether term appears in name on token boundaries.
// Multi-token vocabulary entries (license_plate, id_number) match as
// underscore-delimited substrings.
func containsTerm(name, term string) bool {
	if strings.Contains(term, "_") {
		return name == term ||
			strings.HasPrefix(name, term+"_") ||
			strings.HasSuffix(name, "_"+term) ||
			strings.Contains(name, "_"+term+"_")
	}
	for _, tok := range strings.Split(name, "_") {
		if tok == term {
			return true
		}
	}
	return false
}

package mapping

import (
	"regexp"
	"sort"
	"strings"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// PatternRule maps a source-name shape onto a business group, data type and
// an optional canonical term. Rules are evaluated in descending priority;
// ties are broken by declaration order. Exactly one rule fires per name.
type PatternRule struct {
	Pattern  *regexp.Regexp
	Priority int
	Group    core.Group
	DType    core.DType
	// Term seeds the canonical name. Empty means the name is derived from
	// the keyword dictionary instead.
	Term string
}

// KeywordEntry translates one source-language fragment into an English
// token. Entries are matched greedily, longest fragment first.
type KeywordEntry struct {
	Keyword string
	Token   string
}

// RuleSet is the immutable rule surface shared by the resolver and the
// quality validator. Construct one at startup (DefaultRuleSet for the
// built-in auto-insurance rules) and pass it by reference; tests may inject
// reduced rule sets.
type RuleSet struct {
	exact    map[string]core.MappingEntry
	patterns []PatternRule // sorted: priority desc, declaration asc
	keywords []KeywordEntry
	byLength []KeywordEntry // keywords sorted longest-first

	groupVocab   map[core.Group][]string
	expectedEN   []KeywordEntry // validator: source fragment -> expected token
	expectedByLn []KeywordEntry

	boolVocab map[string]struct{}
}

// NewRuleSet builds a RuleSet from explicit tables. The pattern slice is
// re-sorted by (priority desc, declaration asc); keyword tables are indexed
// for greedy longest-match scanning.
func NewRuleSet(
	exact map[string]core.MappingEntry,
	patterns []PatternRule,
	keywords []KeywordEntry,
	groupVocab map[core.Group][]string,
	expected []KeywordEntry,
	boolVocab []string,
) *RuleSet {
	rs := &RuleSet{
		exact:      exact,
		patterns:   make([]PatternRule, len(patterns)),
		keywords:   keywords,
		groupVocab: groupVocab,
		expectedEN: expected,
		boolVocab:  make(map[string]struct{}, len(boolVocab)),
	}
	copy(rs.patterns, patterns)
	sort.SliceStable(rs.patterns, func(i, j int) bool {
		return rs.patterns[i].Priority > rs.patterns[j].Priority
	})

	rs.byLength = sortByRuneLength(keywords)
	rs.expectedByLn = sortByRuneLength(expected)

	for _, v := range boolVocab {
		rs.boolVocab[v] = struct{}{}
	}
	return rs
}

// DefaultRuleSet returns the built-in auto-insurance rule surface.
func DefaultRuleSet() *RuleSet {
	return NewRuleSet(
		builtinExact(),
		builtinPatterns(),
		builtinKeywords(),
		builtinGroupVocab(),
		builtinExpected(),
		builtinBoolVocab(),
	)
}

// Exact looks up a source name in the built-in exact-match table.
func (rs *RuleSet) Exact(sourceName string) (core.MappingEntry, bool) {
	e, ok := rs.exact[sourceName]
	return e, ok
}

// ExactEntries returns a copy of the built-in exact-match table, suitable
// for seeding a mapping-table store as the lowest-precedence source.
func (rs *RuleSet) ExactEntries() map[string]core.MappingEntry {
	out := make(map[string]core.MappingEntry, len(rs.exact))
	for k, v := range rs.exact {
		out[k] = v
	}
	return out
}

// Patterns returns the priority-sorted pattern rules.
func (rs *RuleSet) Patterns() []PatternRule { return rs.patterns }

// GroupVocab returns the vocabulary associated with a business group.
// An empty slice means no vocabulary constraint (only "general" behaves
// that way in the built-in tables).
func (rs *RuleSet) GroupVocab(g core.Group) []string {
	return rs.groupVocab[g]
}

// IsBoolToken reports whether a normalized cell value belongs to the
// boolean vocabulary.
func (rs *RuleSet) IsBoolToken(v string) bool {
	_, ok := rs.boolVocab[v]
	return ok
}

// Translate decomposes a source name into English tokens by greedy
// longest-match-first scanning of the keyword dictionary. Tokens appear in
// dictionary scan order, each at most once.
func (rs *RuleSet) Translate(sourceName string) []string {
	return scanTokens(sourceName, rs.byLength)
}

// ExpectedTokens returns the validator's expected English tokens for a
// source name, derived from the expected-translation table.
func (rs *RuleSet) ExpectedTokens(sourceName string) []string {
	return scanTokens(sourceName, rs.expectedByLn)
}

func scanTokens(source string, dict []KeywordEntry) []string {
	var tokens []string
	seen := make(map[string]struct{})
	remaining := source
	for _, kw := range dict {
		idx := strings.Index(remaining, kw.Keyword)
		if idx < 0 {
			continue
		}
		if _, dup := seen[kw.Token]; !dup {
			tokens = append(tokens, kw.Token)
			seen[kw.Token] = struct{}{}
		}
		remaining = remaining[:idx] + remaining[idx+len(kw.Keyword):]
	}
	return tokens
}

func sortByRuneLength(entries []KeywordEntry) []KeywordEntry {
	out := make([]KeywordEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return len([]rune(out[i].Keyword)) > len([]rune(out[j].Keyword))
	})
	return out
}

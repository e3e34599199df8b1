package mapping

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// Lookup is the merged mapping-table view the resolver consults for exact
// matches. Implemented by internal/table.Store; a nil Lookup restricts
// exact matching to the RuleSet's built-in table.
type Lookup interface {
	Get(sourceName string) (core.MappingEntry, bool)
}

// Resolver translates source field names into FieldMappings using the
// layered strategy: exact match, pattern rules, keyword fallback, then a
// deterministic hash-derived name. It is stateless between calls except
// for the UsedNames set the caller threads through a batch.
type Resolver struct {
	rules  *RuleSet
	lookup Lookup
}

// NewResolver builds a resolver over a rule set and an optional merged
// mapping table.
func NewResolver(rules *RuleSet, lookup Lookup) *Resolver {
	return &Resolver{rules: rules, lookup: lookup}
}

// Field pairs a source column name with its raw sample values.
type Field struct {
	Name    string
	Samples []string
}

// Resolve maps one source field name. Stages run in strict order and the
// first successful stage wins; sample-based type refinement applies to
// pattern and keyword results but never to exact matches, whose stored
// dtype is authoritative.
//
// The only error returned is *core.InvalidFieldNameError for a name that
// is not usable text; malformed but non-empty names always produce a
// fallback-tier mapping instead of failing.
func (r *Resolver) Resolve(sourceName string, samples []string, used UsedNames) (core.FieldMapping, error) {
	name := strings.TrimSpace(sourceName)
	if name == "" {
		return core.FieldMapping{}, &core.InvalidFieldNameError{Name: sourceName}
	}
	if used == nil {
		used = make(UsedNames)
	}

	// Stage 1: exact match. Custom tables override the built-in table via
	// the Lookup's own load-order semantics.
	if entry, ok := r.exactMatch(name); ok {
		return core.FieldMapping{
			SourceName:    name,
			CanonicalName: used.Claim(Normalize(entry.EnName)),
			Group:         entry.Group,
			DType:         entry.DType,
			Description:   r.describe(name, entry.Description, core.TierExact),
			Tier:          core.TierExact,
		}, nil
	}

	// Stage 2: pattern rules, first match wins.
	group := core.GroupGeneral
	dtype := core.DTypeString
	term := ""
	matched := false
	var notices []core.Notice

	patterns := r.rules.Patterns()
	for i, rule := range patterns {
		if !rule.Pattern.MatchString(name) {
			continue
		}
		group, dtype, term = rule.Group, rule.DType, rule.Term
		matched = true
		// Same-priority double match is a rule-authoring smell worth
		// surfacing, never an error.
		for _, other := range patterns[i+1:] {
			if other.Priority != rule.Priority {
				break
			}
			if other.Pattern.MatchString(name) {
				notices = append(notices, core.NoticeAmbiguousPattern)
				break
			}
		}
		break
	}

	// Stage 3: refine the guess from samples. Datetime and boolean
	// findings override a pattern guess; number only upgrades string.
	if len(samples) > 0 && dtype != core.DTypeBoolean {
		switch inferred := r.rules.InferDType(samples); inferred {
		case core.DTypeDatetime, core.DTypeBoolean:
			dtype = inferred
		case core.DTypeNumber:
			if dtype == core.DTypeString {
				dtype = inferred
			}
		}
	}

	// Stage 4: canonical name from the pattern term, keyword tokens, or a
	// stable hash of the source name.
	tier := core.TierPattern
	candidate := term
	if candidate == "" {
		if tokens := r.rules.Translate(name); len(tokens) > 0 {
			candidate = strings.Join(tokens, "_")
			if !matched {
				tier = core.TierKeyword
			}
		} else {
			candidate = FallbackName(name)
			if !matched {
				tier = core.TierFallback
				notices = append(notices, core.NoticeUnresolvedField)
			}
		}
	}

	return core.FieldMapping{
		SourceName:    name,
		CanonicalName: used.Claim(Normalize(candidate)),
		Group:         group,
		DType:         dtype,
		Description:   r.describe(name, "", tier),
		Tier:          tier,
		Notices:       notices,
	}, nil
}

// ResolveBatch resolves a whole file's field list, isolating per-field
// failures: a field with an unusable name is skipped and reported in the
// returned error slice without aborting the batch.
func (r *Resolver) ResolveBatch(fields []Field) ([]core.FieldMapping, []error) {
	used := make(UsedNames)
	mappings := make([]core.FieldMapping, 0, len(fields))
	var errs []error
	for _, f := range fields {
		m, err := r.Resolve(f.Name, f.Samples, used)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		mappings = append(mappings, m)
	}
	return mappings, errs
}

func (r *Resolver) exactMatch(name string) (core.MappingEntry, bool) {
	if r.lookup != nil {
		if entry, ok := r.lookup.Get(name); ok {
			return entry, true
		}
		return core.MappingEntry{}, false
	}
	return r.rules.Exact(name)
}

func (r *Resolver) describe(sourceName, stored string, tier core.Tier) string {
	if stored != "" {
		return stored
	}
	switch tier {
	case core.TierExact:
		return fmt.Sprintf("%s (exact match)", sourceName)
	case core.TierPattern:
		return fmt.Sprintf("%s (pattern match)", sourceName)
	default:
		return fmt.Sprintf("%s (auto-generated)", sourceName)
	}
}

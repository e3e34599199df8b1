package core

import "fmt"

// DType is the primitive data type of a resolved field. Exactly four kinds
// exist; nothing else is ever produced by the engine.
type DType string

const (
	DTypeNumber   DType = "number"
	DTypeString   DType = "string"
	DTypeDatetime DType = "datetime"
	DTypeBoolean  DType = "boolean"
)

// ParseDType converts a string into a DType, rejecting unknown values.
func ParseDType(s string) (DType, error) {
	switch DType(s) {
	case DTypeNumber, DTypeString, DTypeDatetime, DTypeBoolean:
		return DType(s), nil
	}
	return "", fmt.Errorf("unknown dtype %q (want number|string|datetime|boolean)", s)
}

// Valid reports whether d is one of the four closed values.
func (d DType) Valid() bool {
	switch d {
	case DTypeNumber, DTypeString, DTypeDatetime, DTypeBoolean:
		return true
	}
	return false
}

// Role returns the analytical role derived from the data type: numbers are
// aggregable measures, everything else is a dimension.
func (d DType) Role() Role {
	if d == DTypeNumber {
		return RoleMeasure
	}
	return RoleDimension
}

// Role distinguishes aggregable measures from grouping dimensions.
type Role string

const (
	RoleMeasure   Role = "measure"
	RoleDimension Role = "dimension"
)

// Aggregation returns the default aggregation for the role.
func (r Role) Aggregation() Aggregation {
	if r == RoleMeasure {
		return AggSum
	}
	return AggNone
}

// Aggregation is the default aggregation applied to a field in reports.
type Aggregation string

const (
	AggSum  Aggregation = "sum"
	AggNone Aggregation = "none"
)

// Group is the business category of a field.
type Group string

const (
	GroupFinance      Group = "finance"
	GroupOrganization Group = "organization"
	GroupVehicle      Group = "vehicle"
	GroupProduct      Group = "product"
	GroupTime         Group = "time"
	GroupFlag         Group = "flag"
	GroupPartner      Group = "partner"
	GroupCustomer     Group = "customer"
	GroupPolicy       Group = "policy"
	GroupGeneral      Group = "general"
)

// Groups lists every business group in a stable order.
func Groups() []Group {
	return []Group{
		GroupFinance, GroupOrganization, GroupVehicle, GroupProduct,
		GroupTime, GroupFlag, GroupPartner, GroupCustomer,
		GroupPolicy, GroupGeneral,
	}
}

// ParseGroup converts a string into a Group, rejecting unknown values.
func ParseGroup(s string) (Group, error) {
	g := Group(s)
	if g.Valid() {
		return g, nil
	}
	return "", fmt.Errorf("unknown business group %q", s)
}

// Valid reports whether g is one of the closed group values.
func (g Group) Valid() bool {
	for _, known := range Groups() {
		if g == known {
			return true
		}
	}
	return false
}

// Tier records which resolution stage produced a mapping.
type Tier string

const (
	// TierExact means the source name was found verbatim in a mapping table.
	TierExact Tier = "exact"
	// TierPattern means a priority-ordered pattern rule matched.
	TierPattern Tier = "pattern"
	// TierKeyword means the name was assembled from keyword tokens.
	TierKeyword Tier = "keyword"
	// TierFallback means no rule applied and a hash-derived name was used.
	TierFallback Tier = "fallback"
)

// Mapped reports whether the tier represents a rule-resolved mapping.
// Fallback-tier mappings carry is_mapped=false in report artifacts.
func (t Tier) Mapped() bool {
	return t != TierFallback
}

// Notice is a non-fatal condition surfaced during resolution.
type Notice string

const (
	// NoticeAmbiguousPattern: more than one pattern rule matched at the top
	// priority; resolved deterministically by declaration order, but worth
	// surfacing as a rule-authoring smell.
	NoticeAmbiguousPattern Notice = "ambiguous_pattern"
	// NoticeUnresolvedField: neither exact nor pattern matched; the keyword
	// or hash fallback path produced the canonical name.
	NoticeUnresolvedField Notice = "unresolved_field"
)

// MappingEntry is one source_name entry of a mapping table.
type MappingEntry struct {
	EnName      string `json:"en_name"`
	Group       Group  `json:"group"`
	DType       DType  `json:"dtype"`
	Description string `json:"description,omitempty"`
}

// FieldMapping is the canonical output unit of the resolver: one source
// field name translated into a standardized identifier with its business
// classification.
type FieldMapping struct {
	SourceName    string
	CanonicalName string
	Group         Group
	DType         DType
	Description   string
	Notes         string
	Tier          Tier
	Notices       []Notice
}

// Role returns the analytical role of the mapping.
func (m FieldMapping) Role() Role { return m.DType.Role() }

// Record converts the mapping into its JSON report representation.
func (m FieldMapping) Record() MappingRecord {
	role := m.Role()
	return MappingRecord{
		FieldName:    m.CanonicalName,
		CnName:       m.SourceName,
		SourceColumn: m.SourceName,
		Group:        m.Group,
		DType:        m.DType,
		Role:         role,
		Aggregation:  role.Aggregation(),
		Description:  m.Description,
		Notes:        m.Notes,
		IsMapped:     m.Tier.Mapped(),
	}
}

// MappingRecord is the serialized form of a FieldMapping emitted into the
// JSON mapping artifact. The field set and names are part of the output
// contract consumed by downstream tooling.
type MappingRecord struct {
	FieldName    string      `json:"field_name"`
	CnName       string      `json:"cn_name"`
	SourceColumn string      `json:"source_column"`
	Group        Group       `json:"group"`
	DType        DType       `json:"dtype"`
	Role         Role        `json:"role"`
	Aggregation  Aggregation `json:"aggregation"`
	Description  string      `json:"description"`
	Notes        string      `json:"notes"`
	IsMapped     bool        `json:"is_mapped"`
}

// QualityLevel buckets an overall quality score.
type QualityLevel string

const (
	LevelExcellent QualityLevel = "excellent"
	LevelGood      QualityLevel = "good"
	LevelFair      QualityLevel = "fair"
	LevelPoor      QualityLevel = "poor"
)

// LevelForScore maps an overall score to its quality level.
func LevelForScore(score int) QualityLevel {
	switch {
	case score >= 90:
		return LevelExcellent
	case score >= 75:
		return LevelGood
	case score >= 60:
		return LevelFair
	default:
		return LevelPoor
	}
}

// QualityScore is the validator's judgment of one mapping. It is computed
// once, immutable, and feeds reports only; it is never written back into
// the mapping tables.
type QualityScore struct {
	SourceName    string       `json:"source_name"`
	CanonicalName string       `json:"canonical_name"`
	Naming        int          `json:"naming"`            // 0-20
	Grouping      int          `json:"group_consistency"` // 0-30
	Semantic      int          `json:"semantic_accuracy"` // 0-30
	TypeCheck     int          `json:"type_consistency"`  // 0-20
	Overall       int          `json:"overall"`           // 0-100
	Level         QualityLevel `json:"level"`
	Issues        []string     `json:"issues,omitempty"`
	Suggestions   []string     `json:"suggestions,omitempty"`
}

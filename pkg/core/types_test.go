package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDType(t *testing.T) {
	tests := []struct {
		in      string
		want    DType
		wantErr bool
	}{
		{"number", DTypeNumber, false},
		{"string", DTypeString, false},
		{"datetime", DTypeDatetime, false},
		{"boolean", DTypeBoolean, false},
		{"bool", "", true},
		{"float", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ParseDType(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestRoleDerivation(t *testing.T) {
	// measure iff number
	assert.Equal(t, RoleMeasure, DTypeNumber.Role())
	for _, d := range []DType{DTypeString, DTypeDatetime, DTypeBoolean} {
		assert.Equal(t, RoleDimension, d.Role(), "dtype %s", d)
	}

	assert.Equal(t, AggSum, RoleMeasure.Aggregation())
	assert.Equal(t, AggNone, RoleDimension.Aggregation())
}

func TestParseGroup(t *testing.T) {
	for _, g := range Groups() {
		got, err := ParseGroup(string(g))
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}

	_, err := ParseGroup("finances")
	assert.Error(t, err)
}

func TestLevelForScore(t *testing.T) {
	tests := []struct {
		score int
		want  QualityLevel
	}{
		{100, LevelExcellent},
		{90, LevelExcellent},
		{89, LevelGood},
		{75, LevelGood},
		{74, LevelFair},
		{60, LevelFair},
		{59, LevelPoor},
		{0, LevelPoor},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForScore(tt.score), "score %d", tt.score)
	}
}

func TestMappingRecord(t *testing.T) {
	m := FieldMapping{
		SourceName:    "签单保费",
		CanonicalName: "written_premium",
		Group:         GroupFinance,
		DType:         DTypeNumber,
		Description:   "签单保费 (exact match)",
		Tier:          TierExact,
	}

	rec := m.Record()
	assert.Equal(t, "written_premium", rec.FieldName)
	assert.Equal(t, "签单保费", rec.CnName)
	assert.Equal(t, "签单保费", rec.SourceColumn)
	assert.Equal(t, RoleMeasure, rec.Role)
	assert.Equal(t, AggSum, rec.Aggregation)
	assert.True(t, rec.IsMapped)

	fallback := FieldMapping{
		SourceName:    "神秘字段",
		CanonicalName: "field_1234",
		Group:         GroupGeneral,
		DType:         DTypeString,
		Tier:          TierFallback,
	}
	rec = fallback.Record()
	assert.False(t, rec.IsMapped)
	assert.Equal(t, AggNone, rec.Aggregation)
}

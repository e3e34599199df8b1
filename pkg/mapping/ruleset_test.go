package mapping

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

func TestRuleSet_PatternSortStable(t *testing.T) {
	rules := []PatternRule{
		{Pattern: regexp.MustCompile(`a`), Priority: 60, Term: "low"},
		{Pattern: regexp.MustCompile(`b`), Priority: 90, Term: "first_high"},
		{Pattern: regexp.MustCompile(`c`), Priority: 90, Term: "second_high"},
		{Pattern: regexp.MustCompile(`d`), Priority: 75, Term: "mid"},
	}
	rs := NewRuleSet(nil, rules, nil, nil, nil, nil)

	sorted := rs.Patterns()
	require.Len(t, sorted, 4)
	assert.Equal(t, "first_high", sorted[0].Term)
	assert.Equal(t, "second_high", sorted[1].Term, "ties keep declaration order")
	assert.Equal(t, "mid", sorted[2].Term)
	assert.Equal(t, "low", sorted[3].Term)
}

func TestRuleSet_Translate(t *testing.T) {
	rs := DefaultRuleSet()

	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"longest fragment shadows parts", "签单保费", []string{"written_premium"}},
		{"multiple tokens", "客户电话", []string{"customer", "phone"}},
		{"duplicate tokens collapsed", "车辆车型", []string{"vehicle_model", "vehicle"}},
		{"no match", "甲乙丙", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.Translate(tt.source))
		})
	}
}

func TestRuleSet_Exact(t *testing.T) {
	rs := DefaultRuleSet()

	entry, ok := rs.Exact("保单号")
	require.True(t, ok)
	assert.Equal(t, "policy_number", entry.EnName)
	assert.Equal(t, core.GroupPolicy, entry.Group)

	_, ok = rs.Exact("不存在的字段")
	assert.False(t, ok)
}

func TestRuleSet_ExactEntriesIsCopy(t *testing.T) {
	rs := DefaultRuleSet()

	entries := rs.ExactEntries()
	entries["保单号"] = core.MappingEntry{EnName: "mutated"}

	entry, ok := rs.Exact("保单号")
	require.True(t, ok)
	assert.Equal(t, "policy_number", entry.EnName)
}

func TestRuleSet_GroupVocab(t *testing.T) {
	rs := DefaultRuleSet()

	assert.Contains(t, rs.GroupVocab(core.GroupFinance), "premium")
	assert.Contains(t, rs.GroupVocab(core.GroupVehicle), "vin")
	assert.Empty(t, rs.GroupVocab(core.GroupGeneral))
}

func TestRuleSet_BoolVocab(t *testing.T) {
	rs := DefaultRuleSet()

	for _, v := range []string{"是", "否", "y", "n", "true", "false", "0", "1"} {
		assert.True(t, rs.IsBoolToken(v), "expected %q in boolean vocabulary", v)
	}
	assert.False(t, rs.IsBoolToken("maybe"))
}

func TestRuleSet_ExpectedTokens(t *testing.T) {
	rs := DefaultRuleSet()

	assert.Equal(t, []string{"premium", "issuance"}, rs.ExpectedTokens("签单保费"))
	assert.Contains(t, rs.ExpectedTokens("确认时间"), "confirmation")
	assert.Contains(t, rs.ExpectedTokens("确认时间"), "time")
	assert.Nil(t, rs.ExpectedTokens("无关名称"))
}

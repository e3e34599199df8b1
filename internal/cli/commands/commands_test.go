// Package commands_test provides tests for CLI command creation.
package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/internal/table"
	"github.com/leapstack-labs/fieldmap/pkg/core"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()

	assert.Equal(t, "analyze <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"sheet", "learn", "format", "no-report"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	assert.Equal(t, "validate <mappings.json>", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotNil(t, cmd.Flags().Lookup("out"), "flag out should exist")
}

func TestNewMappingsCommand(t *testing.T) {
	cmd := NewMappingsCommand()

	assert.Equal(t, "mappings [source-name]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("all"), "flag all should exist")
}

func TestNewLearnCommand(t *testing.T) {
	cmd := NewLearnCommand()

	assert.Equal(t, "learn <file>", cmd.Use)
	assert.NotEmpty(t, cmd.Long, "Long should not be empty")
}

func TestNewFillPhonesCommand(t *testing.T) {
	cmd := NewFillPhonesCommand()

	assert.Equal(t, "fill-phones <file>", cmd.Use)
	for _, flag := range []string{"prefix", "output", "sheet"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewRunsCommand(t *testing.T) {
	cmd := NewRunsCommand()

	assert.Equal(t, "runs", cmd.Use)
	for _, flag := range []string{"limit", "learned", "source"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestAnnotateMappings(t *testing.T) {
	ms := []core.FieldMapping{
		{SourceName: "签单保费", CanonicalName: "written_premium"},
		{SourceName: "备注", CanonicalName: "note"},
	}
	sums := []reader.Summary{
		{Name: "签单保费", NullPct: 60, Numeric: &reader.NumericStats{Min: -100}},
		{Name: "备注", NullPct: 10},
	}

	annotateMappings(ms, sums)

	assert.Equal(t, "60.0% null; contains negative values", ms[0].Notes)
	assert.Empty(t, ms[1].Notes)
}

func TestTierOfRecord(t *testing.T) {
	rules := mapping.DefaultRuleSet()
	cmdCtx := &CommandContext{
		Rules:  rules,
		Tables: table.NewStore(rules.ExactEntries()),
	}

	exact := tierOfRecord(cmdCtx, core.MappingRecord{CnName: "保单号", IsMapped: true})
	assert.Equal(t, core.TierExact, exact)

	rule := tierOfRecord(cmdCtx, core.MappingRecord{CnName: "承保起期", IsMapped: true})
	assert.Equal(t, core.TierKeyword, rule)

	fallback := tierOfRecord(cmdCtx, core.MappingRecord{CnName: "未知列甲", IsMapped: false})
	assert.Equal(t, core.TierFallback, fallback)
}

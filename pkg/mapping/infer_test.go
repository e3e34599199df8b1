package mapping

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

func TestInferDType(t *testing.T) {
	rs := DefaultRuleSet()

	tests := []struct {
		name    string
		samples []string
		want    core.DType
	}{
		{"empty samples", nil, core.DTypeString},
		{"all missing", []string{"", "NaN", "null", "N/A", "-"}, core.DTypeString},
		{"integers", []string{"1", "42", "300"}, core.DTypeNumber},
		{"floats", []string{"1.5", "2.25", "0.001"}, core.DTypeNumber},
		{"thousands separators", []string{"1,200.50", "3,000", "12,345.67"}, core.DTypeNumber},
		{"fullwidth separators", []string{"1，200", "3，000", "5，500"}, core.DTypeNumber},
		{"80 percent numeric passes", []string{"1", "2", "3", "4", "abc"}, core.DTypeNumber},
		{"below threshold stays string", []string{"1", "2", "3", "x", "y"}, core.DTypeString},
		{"iso dates", []string{"2024-01-01", "2024-06-15", "2025-12-31"}, core.DTypeDatetime},
		{"slash dates", []string{"2024/1/1", "2024/06/15"}, core.DTypeDatetime},
		{"dates with time", []string{"2024-01-01 12:30:00", "2024-01-02 08:05"}, core.DTypeDatetime},
		{"compact dates parse as numbers first", []string{"20240101", "20240615"}, core.DTypeNumber},
		{"cn boolean vocab", []string{"是", "否", "是", "是"}, core.DTypeBoolean},
		{"yes no", []string{"Y", "N", "y"}, core.DTypeBoolean},
		{"four distinct stays string", []string{"yes", "no", "true", "false"}, core.DTypeString},
		{"mixed text", []string{"北京", "上海", "深圳"}, core.DTypeString},
		{"missing values skipped", []string{"", "nan", "3.14", "2.71"}, core.DTypeNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rs.InferDType(tt.samples))
		})
	}
}

func TestInferDType_SampleCap(t *testing.T) {
	rs := DefaultRuleSet()

	// 100 numeric values followed by text: the cap means only the first
	// 100 non-missing values are inspected.
	samples := make([]string, 0, 150)
	for i := 0; i < 100; i++ {
		samples = append(samples, fmt.Sprintf("%d", i))
	}
	for i := 0; i < 50; i++ {
		samples = append(samples, "text")
	}
	assert.Equal(t, core.DTypeNumber, rs.InferDType(samples))
}

func TestIsMissing(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"NaN", true},
		{"NULL", true},
		{"None", true},
		{"n/a", true},
		{"-", true},
		{"0", false},
		{"false", false},
		{"数据", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsMissing(tt.value), "value %q", tt.value)
	}
}

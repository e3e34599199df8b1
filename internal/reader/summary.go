package reader

import (
	"sort"
	"strconv"
	"strings"

	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

// numericShare is the fraction of non-null values that must parse as
// numbers before numeric statistics are computed.
const numericShare = 0.8

// ValueCount is one top-value entry.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// NumericStats summarizes a mostly-numeric column.
type NumericStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Sum  float64 `json:"sum"`
}

// Summary is the per-column statistics block of the analysis report.
type Summary struct {
	Name    string        `json:"name"`
	Rows    int           `json:"rows"`
	NonNull int           `json:"non_null"`
	Nulls   int           `json:"nulls"`
	NullPct float64       `json:"null_pct"`
	Unique  int           `json:"unique"`
	Top     []ValueCount  `json:"top,omitempty"`
	Numeric *NumericStats `json:"numeric,omitempty"`
}

// Summarize computes the statistics of one column. topN caps the top-value
// list; ties are broken by value so the output is stable.
func Summarize(col Column, topN int) Summary {
	s := Summary{Name: col.Name, Rows: len(col.Values)}

	counts := make(map[string]int)
	var nums []float64
	for _, raw := range col.Values {
		if mapping.IsMissing(raw) {
			s.Nulls++
			continue
		}
		s.NonNull++
		v := strings.TrimSpace(raw)
		counts[v]++
		if f, ok := parseNumber(v); ok {
			nums = append(nums, f)
		}
	}
	if s.Rows > 0 {
		s.NullPct = 100 * float64(s.Nulls) / float64(s.Rows)
	}
	s.Unique = len(counts)

	if topN > 0 && len(counts) > 0 {
		top := make([]ValueCount, 0, len(counts))
		for v, c := range counts {
			top = append(top, ValueCount{Value: v, Count: c})
		}
		sort.Slice(top, func(i, j int) bool {
			if top[i].Count != top[j].Count {
				return top[i].Count > top[j].Count
			}
			return top[i].Value < top[j].Value
		})
		if len(top) > topN {
			top = top[:topN]
		}
		s.Top = top
	}

	if s.NonNull > 0 && float64(len(nums))/float64(s.NonNull) >= numericShare {
		ns := &NumericStats{Min: nums[0], Max: nums[0]}
		for _, f := range nums {
			if f < ns.Min {
				ns.Min = f
			}
			if f > ns.Max {
				ns.Max = f
			}
			ns.Sum += f
		}
		ns.Mean = ns.Sum / float64(len(nums))
		s.Numeric = ns
	}
	return s
}

// SummarizeAll summarizes every column of a table.
func SummarizeAll(t *Table, topN int) []Summary {
	out := make([]Summary, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = Summarize(c, topN)
	}
	return out
}

func parseNumber(v string) (float64, bool) {
	v = strings.NewReplacer(",", "", "，", "", " ", "").Replace(v)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	return f, err == nil
}

// Package phonefill detects phone-number columns in tabular data and fills
// their empty cells with synthetic numbers drawn from reserved Chinese
// numbering ranges, keeping real subscribers out of test datasets.
package phonefill

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/leapstack-labs/fieldmap/internal/reader"
	"github.com/leapstack-labs/fieldmap/pkg/mapping"
)

// ReservedPrefixes are 3-digit prefixes unassigned to Chinese carriers.
// Numbers generated from them can never collide with a real subscriber.
var ReservedPrefixes = []string{
	"100", "102", "103", "104", "105", "106", "107", "108", "109",
}

var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`手机`),
	regexp.MustCompile(`电话`),
	regexp.MustCompile(`联系.*电话`),
	regexp.MustCompile(`联系.*方式`),
	regexp.MustCompile(`(?i)mobile`),
	regexp.MustCompile(`(?i)phone`),
	regexp.MustCompile(`(?i)tel`),
	regexp.MustCompile(`(?i)contact`),
}

var elevenDigits = regexp.MustCompile(`^\d{11}$`)

// IsPhoneHeader reports whether a column header names a phone field.
func IsPhoneHeader(name string) bool {
	for _, p := range headerPatterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

// IsPhoneColumn reports whether a header-matched column actually holds
// phone data: its non-empty values are mostly 11-digit strings, or it is
// mostly empty and safe to fill.
func IsPhoneColumn(col reader.Column) bool {
	if !IsPhoneHeader(col.Name) {
		return false
	}
	nonEmpty, elevens := 0, 0
	for _, v := range col.Values {
		if mapping.IsMissing(v) {
			continue
		}
		nonEmpty++
		if elevenDigits.MatchString(strings.TrimSpace(v)) {
			elevens++
		}
	}
	if nonEmpty == 0 {
		return true
	}
	return float64(elevens)/float64(nonEmpty) >= 0.5
}

// Filler generates unique synthetic numbers. The rand source is injectable
// so tests are reproducible.
type Filler struct {
	prefix string
	rng    *rand.Rand
	used   map[string]struct{}
}

// NewFiller builds a filler on a reserved prefix. A prefix outside the
// reserved set is accepted but reported so callers can warn.
func NewFiller(prefix string, rng *rand.Rand) (*Filler, bool) {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	reserved := false
	for _, p := range ReservedPrefixes {
		if p == prefix {
			reserved = true
			break
		}
	}
	return &Filler{
		prefix: prefix,
		rng:    rng,
		used:   make(map[string]struct{}),
	}, reserved
}

// Next returns a fresh 11-digit number, unique within this filler.
func (f *Filler) Next() string {
	for {
		n := fmt.Sprintf("%s%08d", f.prefix, f.rng.Intn(100_000_000))
		if _, dup := f.used[n]; dup {
			continue
		}
		f.used[n] = struct{}{}
		return n
	}
}

// Seen marks an existing number so generated ones never duplicate it.
func (f *Filler) Seen(number string) {
	f.used[number] = struct{}{}
}

// Result reports what FillTable changed.
type Result struct {
	Column string `json:"column"`
	Filled int    `json:"filled"`
	Kept   int    `json:"kept"`
}

// FillTable fills the empty cells of every phone column in place and
// returns one result per filled column.
func FillTable(t *reader.Table, filler *Filler) []Result {
	var results []Result
	for i := range t.Columns {
		col := &t.Columns[i]
		if !IsPhoneColumn(*col) {
			continue
		}
		// Existing numbers are claimed first so fills stay unique across
		// the whole column.
		for _, v := range col.Values {
			if !mapping.IsMissing(v) {
				filler.Seen(strings.TrimSpace(v))
			}
		}
		res := Result{Column: col.Name}
		for j, v := range col.Values {
			if mapping.IsMissing(v) {
				col.Values[j] = filler.Next()
				res.Filled++
			} else {
				res.Kept++
			}
		}
		results = append(results, res)
	}
	return results
}

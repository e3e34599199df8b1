package mapping

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/leapstack-labs/fieldmap/pkg/core"
)

// maxSamples caps how many non-missing values the inferencer inspects.
const maxSamples = 100

// numericThreshold is the fraction of values that must parse as numbers
// for a column to be typed as number.
const numericThreshold = 0.8

var datetimePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}[-/]\d{1,2}[-/]\d{1,2}([ T]\d{1,2}:\d{2}(:\d{2})?)?$`),
	regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]\d{4}$`),
	regexp.MustCompile(`^\d{8}$`),
}

// IsMissing reports whether a raw cell value counts as missing for
// sampling and statistics purposes.
func IsMissing(v string) bool {
	s := strings.ToLower(strings.TrimSpace(v))
	switch s {
	case "", "nan", "null", "none", "na", "n/a", "-":
		return true
	}
	return false
}

// InferDType estimates the primitive type of a column from raw sample
// values. At most the first 100 non-missing values are inspected. Rules
// fire in a fixed order, first match wins:
//
//  1. no non-missing values  -> string (safe default)
//  2. >=80% parse as base-10 numbers -> number
//  3. majority match date/date-time text patterns -> datetime
//  4. <=3 distinct values, all in the boolean vocabulary -> boolean
//  5. otherwise -> string
func (rs *RuleSet) InferDType(samples []string) core.DType {
	values := make([]string, 0, len(samples))
	for _, v := range samples {
		if IsMissing(v) {
			continue
		}
		values = append(values, strings.TrimSpace(v))
		if len(values) == maxSamples {
			break
		}
	}
	if len(values) == 0 {
		return core.DTypeString
	}

	numeric := 0
	datetime := 0
	distinct := make(map[string]struct{})
	allBool := true
	for _, v := range values {
		if parsesAsNumber(v) {
			numeric++
		}
		if matchesDatetime(v) {
			datetime++
		}
		lower := strings.ToLower(v)
		distinct[lower] = struct{}{}
		if !rs.IsBoolToken(lower) {
			allBool = false
		}
	}

	switch {
	case float64(numeric)/float64(len(values)) >= numericThreshold:
		return core.DTypeNumber
	case datetime*2 > len(values):
		return core.DTypeDatetime
	case len(distinct) <= 3 && allBool:
		return core.DTypeBoolean
	default:
		return core.DTypeString
	}
}

func parsesAsNumber(v string) bool {
	v = strings.NewReplacer(",", "", "，", "", " ", "").Replace(v)
	if v == "" {
		return false
	}
	_, err := strconv.ParseFloat(v, 64)
	return err == nil
}

func matchesDatetime(v string) bool {
	for _, p := range datetimePatterns {
		if p.MatchString(v) {
			return true
		}
	}
	return false
}

package mapping

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// MaxNameLength is the hard cap on canonical identifier length, shared with
// the quality checks so the resolver and validator agree on the limit.
const MaxNameLength = 50

var (
	invalidChars = regexp.MustCompile(`[^a-z0-9_]`)
	multiScore   = regexp.MustCompile(`_+`)
)

// Normalize forces a candidate identifier into canonical snake_case:
// lowercase, disallowed characters replaced with underscores, runs of
// underscores collapsed, edges trimmed, length capped at 50 preferring
// whole leading tokens over a mid-token cut.
func Normalize(name string) string {
	name = strings.ToLower(name)
	name = invalidChars.ReplaceAllString(name, "_")
	name = multiScore.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	if len(name) > MaxNameLength {
		parts := strings.Split(name, "_")
		if len(parts) > 3 {
			name = strings.Join(parts[:3], "_")
		}
		if len(name) > MaxNameLength {
			name = strings.Trim(name[:MaxNameLength], "_")
		}
	}
	return name
}

// FallbackName derives a stable identifier for a source name that resolved
// to zero keyword tokens. FNV-1a keeps the result reproducible across runs
// and processes; the quality validator will still flag it as a placeholder.
func FallbackName(sourceName string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sourceName))
	return fmt.Sprintf("field_%04d", h.Sum32()%10000)
}

// UsedNames enforces canonical-name uniqueness within one resolution batch.
// The first occurrence keeps the bare name; later collisions are suffixed
// _2, _3, ... in input order.
type UsedNames map[string]int

// Claim returns the unique form of name and records it.
func (u UsedNames) Claim(name string) string {
	if _, taken := u[name]; !taken {
		u[name] = 1
		return name
	}
	for n := u[name] + 1; ; n++ {
		candidate := fmt.Sprintf("%s_%d", name, n)
		if _, taken := u[candidate]; !taken {
			u[name] = n
			u[candidate] = 1
			return candidate
		}
	}
}

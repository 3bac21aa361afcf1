// Package versions groups entities that share a name into version families
// for the grid view and orders their versions numerically.
package versions

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Compare orders two version labels. It returns -1, 0 or +1.
//
// Labels that both parse as semantic versions ("1.10.0", "v2", "2.9") are
// compared by semver precedence. Anything else falls back to a natural
// comparison where runs of digits compare by numeric value, so "build-10"
// sorts after "build-9".
func Compare(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		if c := va.Compare(vb); c != 0 {
			return c
		}
		// "1.0" and "1.0.0" are equal in precedence; keep the order stable.
		return strings.Compare(a, b)
	}
	return natural(a, b)
}

// natural compares a and b chunk by chunk, treating digit runs as numbers.
func natural(a, b string) int {
	for a != "" && b != "" {
		ca, restA := chunk(a)
		cb, restB := chunk(b)
		if c := compareChunk(ca, cb); c != 0 {
			return c
		}
		a, b = restA, restB
	}
	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		return -1
	default:
		return 1
	}
}

// chunk splits off the leading run of digits or non-digits.
func chunk(s string) (string, string) {
	digit := isDigit(s[0])
	i := 1
	for i < len(s) && isDigit(s[i]) == digit {
		i++
	}
	return s[:i], s[i:]
}

func compareChunk(a, b string) int {
	if isDigit(a[0]) && isDigit(b[0]) {
		a = strings.TrimLeft(a, "0")
		b = strings.TrimLeft(b, "0")
		if len(a) != len(b) {
			if len(a) < len(b) {
				return -1
			}
			return 1
		}
	}
	return strings.Compare(a, b)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

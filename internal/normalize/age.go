package normalize

import (
	"strconv"
	"strings"
)

// CollapseAge turns a "n-n" range into "n", anything else is returned as is.
func CollapseAge(age string) string {
	lo, hi, found := strings.Cut(age, "-")
	if !found || strings.Contains(hi, "-") {
		return age
	}
	if strings.TrimSpace(lo) != "" && strings.TrimSpace(lo) == strings.TrimSpace(hi) {
		return strings.TrimSpace(lo)
	}
	return age
}

// AgeInterval reads "n" as [n, n] and "a-b" as [a, b].
func AgeInterval(age string) (int, int, bool) {
	lo, hi, found := strings.Cut(strings.TrimSpace(age), "-")
	if !found {
		hi = lo
	}
	from, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, false
	}
	to, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil {
		return 0, 0, false
	}
	if from > to {
		return 0, 0, false
	}
	return from, to, true
}

// AgeMatches reports whether the age's interval overlaps [minAge, maxAge].
// Ages that cannot be read as an interval never match.
func AgeMatches(age string, minAge, maxAge int) bool {
	lo, hi, ok := AgeInterval(age)
	if !ok {
		return false
	}
	return lo <= maxAge && hi >= minAge
}

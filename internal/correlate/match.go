package correlate

import "strings"

// Wildcard matches any character at its position.
const Wildcard = '.'

// Wildcards counts the wildcard characters in text.
func Wildcards(text string) int {
	return strings.Count(text, string(Wildcard))
}

// Match compares two transcriptions position by position. It reports how
// many positions were covered by a wildcard on either side, and whether the
// strings agree everywhere else. Strings of different length never match.
func Match(a, b string) (wildcards int, ok bool) {
	if len(a) != len(b) {
		return 0, false
	}
	for i := 0; i < len(a); i++ {
		if a[i] == Wildcard || b[i] == Wildcard {
			wildcards++
			continue
		}
		if a[i] != b[i] {
			return wildcards, false
		}
	}
	return wildcards, true
}

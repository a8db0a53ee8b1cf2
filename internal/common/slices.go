package common

// UnknownStr is the name rendered for enum values outside their declared range.
const UnknownStr = "unknown"

// IsEmpty returns true if the slice is empty.
func IsEmpty[S ~[]E, E any](s S) bool {
	return len(s) == 0
}

// First returns the first element of the slice and true, or the zero value and false if empty.
func First[S ~[]E, E any](s S) (E, bool) {
	if len(s) == 0 {
		var zero E
		return zero, false
	}

	return s[0], true
}

// Duplicates returns every key that occurs more than once, in order of its
// second occurrence.
func Duplicates[S ~[]E, E any](s S, key func(E) string) []string {
	seen := make(map[string]int, len(s))

	var dups []string

	for _, e := range s {
		k := key(e)

		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}

	return dups
}

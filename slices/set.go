// Package slices provides set operations on small slices.
package slices

func Contains[L ~[]E, E comparable](l L, x E) bool {
	for _, y := range l {
		if x == y {
			return true
		}
	}

	return false
}

// Subset reports whether every element of a occurs in b. Both slices are
// assumed to be free of duplicates.
func Subset[L ~[]E, E comparable](a, b L) bool {
	if len(a) > len(b) {
		return false
	}

	for _, x := range a {
		if !Contains(b, x) {
			return false
		}
	}

	return true
}

// SameElements reports whether a and b hold the same set of elements.
func SameElements[L ~[]E, E comparable](a, b L) bool {
	return len(a) == len(b) && Subset(a, b)
}

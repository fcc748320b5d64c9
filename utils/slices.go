package utils

import (
	"sort"
)

// CloneSlice returns a shallow copy of s with its own backing array.
func CloneSlice[V any](s []V) (c []V) {
	c = make([]V, len(s))
	copy(c, s)
	return
}

// MapSlice returns the slice of f(s[i]).
func MapSlice[V, W any](s []V, f func(V) W) (w []W) {
	w = make([]W, len(s))
	for i := range s {
		w[i] = f(s[i])
	}
	return
}

// SortSliceFunc sorts s in place with the strict weak order less.
// Equal elements keep their relative order.
func SortSliceFunc[V any](s []V, less func(a, b V) bool) {
	sort.SliceStable(s, func(i, j int) bool {
		return less(s[i], s[j])
	})
}

// Package utils implements various helper functions.
package utils

import (
	"golang.org/x/exp/constraints"
)

// Min returns the minimum value of the input values.
func Min[V constraints.Ordered](a, b V) (r V) {
	if a <= b {
		return a
	}
	return b
}

// Max returns the maximum value of the input values.
func Max[V constraints.Ordered](a, b V) (r V) {
	if a >= b {
		return a
	}
	return b
}

// Clamp returns x restricted to [lo, hi].
func Clamp[V constraints.Ordered](x, lo, hi V) V {
	return Max(lo, Min(x, hi))
}

// Abs returns |x|.
func Abs[V constraints.Signed | constraints.Float](x V) V {
	if x < 0 {
		return -x
	}
	return x
}

// ISqrt returns floor(sqrt(n)) for n >= 0.
func ISqrt(n int) (r int) {
	if n < 2 {
		return n
	}

	// Newton iteration, starting above the root
	r = n
	for {
		y := (r + n/r) >> 1
		if y >= r {
			return r
		}
		r = y
	}
}

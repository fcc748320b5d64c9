package hypgeom

import (
	"github.com/tuneinsight/hypgeom/utils"
)

// maxRSStep bounds the number of precomputed powers of z.
const maxRSStep = 150

// SumRS computes the same (s, t) as SumForward by rectangular splitting.
//
// The sum is evaluated from the last term to the first as a nested product,
// where the powers z^0, ..., z^m with m = min(isqrt(n), 150) are
// precomputed, so that only one in m steps multiplies by a power of z. The
// last term only needs to be bounded and is tracked at low cost: a Mag
// majorant for scalars, a low precision computation for series.
func SumRS[T any](r Ring[T], a, b []T, z T, n int, regularized bool) (s, t T) {
	isReal := allReal(r, a, b, z)
	return sumSplit(r, a, b, z, n, regularized, func(start, n int) (u, v T) {
		return rsplit(r, a, b, z, start, n-start, isReal)
	})
}

func rsplit[T any](r Ring[T], a, b []T, z T, offset, n int, isReal bool) (s, t T) {

	if n == 0 {
		return r.Zero(), r.One()
	}

	m := utils.Min(utils.ISqrt(n), maxRSStep)

	zpow := make([]T, m+1)
	for i := range zpow {
		switch {
		case i == 0:
			zpow[i] = r.One()
		case i == 1:
			zpow[i] = r.Round(z)
		case i%2 == 0:
			zpow[i] = r.Mul(zpow[i/2], zpow[i/2])
		default:
			zpow[i] = r.Mul(zpow[i-1], zpow[1])
		}
	}

	tracker := r.newTermTracker(isReal)

	s = r.Zero()

	for k := n; k >= 0; k-- {

		j := k % m

		if k < n {
			s = r.Add(s, zpow[j])
		}

		if k > 0 {

			if len(a) > 0 {
				u := factor(r, a, offset+k-1, z, false)
				if k < n {
					s = r.Mul(s, u)
				}
				tracker.mulNum(u)
			}

			if len(b) > 0 {
				u := factor(r, b, offset+k-1, z, false)
				if k < n {
					s = r.Div(s, u)
				}
				tracker.mulDen(u)
			}

			if j == 0 && k < n {
				s = r.Mul(s, zpow[m])
			}
		}
	}

	return s, tracker.term(z, n)
}

package hypgeom

import (
	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/poly"
)

// SumWith computes the partial sum s of the terms of indices [0, n) of
// sum_k prod (a_i)_k / prod (b_j)_k z^k and the term t of index n with the
// given strategy. In regularized mode the lower Pochhammer symbols (b_j)_k
// are replaced by Gamma(b_j + k).
//
// Auto is treated as Forward. FME does not support the regularized mode,
// which is then computed with BS.
func SumWith[T any](r Ring[T], a, b []T, z T, regularized bool, n int, strategy Strategy) (s, t T) {

	switch strategy {
	case BS:
		return SumBS(r, a, b, z, n, regularized)
	case RS:
		return SumRS(r, a, b, z, n, regularized)
	case FME:
		if regularized {
			return SumBS(r, a, b, z, n, regularized)
		}
		return SumFME(r, a, b, z, n)
	default:
		if regularized {
			return sumForwardRegularized(r, a, b, z, n)
		}
		return SumForward(r, a, b, z, n)
	}
}

// Sum is SumWith on complex balls, with the strategy selected by pol.
func Sum(r *ScalarRing, a, b []*ball.Complex, z *ball.Complex, regularized bool, n int, pol Policy) (s, t *ball.Complex) {
	return SumWith[*ball.Complex](r, a, b, z, regularized, n, chooseScalar(r, a, b, z, n, pol))
}

// SeriesSum is SumWith on power series, with the strategy selected by pol.
func SeriesSum(r *SeriesRing, a, b []*poly.Poly, z *poly.Poly, regularized bool, n int, pol Policy) (s, t *poly.Poly) {
	return SumWith[*poly.Poly](r, a, b, z, regularized, n, chooseSeries(r, a, b, z, n, pol))
}

func chooseScalar(r *ScalarRing, a, b []*ball.Complex, z *ball.Complex, n int, pol Policy) Strategy {
	return pol.Choose(n, r.Prec(), maxBits[*ball.Complex](r, a, b), r.Bits(z), len(a), len(b))
}

func chooseSeries(r *SeriesRing, a, b []*poly.Poly, z *poly.Poly, n int, pol Policy) Strategy {
	return pol.ChooseSeries(n, r.Prec(), maxBits[*poly.Poly](r, a, b), r.Bits(z), len(a), len(b), r.Len())
}

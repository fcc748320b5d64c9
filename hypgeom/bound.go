package hypgeom

import (
	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/poly"
	"github.com/tuneinsight/hypgeom/utils"
)

// boundPrec returns the precision at which the bounds shift a parameter by n.
func boundPrec(prec uint) uint {
	return utils.Max(prec, 2*mag.Prec)
}

// BoundFactor returns C such that sum_{k>=n} |T(k)| <= |T(n)| * C, where T(k)
// is the k-th term of sum_k prod (a_i)_k / prod (b_j)_k z^k.
//
// Writing T(k+1)/T(k) = z * prod_{j<p} (a_j + k)/(b_j + k) * prod_{j>=p} 1/(b_j + k),
// each ratio with k >= n is bounded by
//
//	|z| * prod_{j<p} (1 + |a_j - b_j| / |b_j + n|) * prod_{j>=p} 1/|b_j + n|
//
// as long as Re(b_j + n) > 0, and the tail by the geometric series of this
// bound. The result is +Inf when p > q, when some Re(b_j + n) is not
// provably positive or when the bound is not < 1.
func BoundFactor(a, b []*ball.Complex, z *ball.Complex, n int) *mag.Mag {

	if len(a) > len(b) {
		return mag.NewInf()
	}

	C := z.MagUpper()

	for j := range b {

		w := ball.NewComplex(boundPrec(b[j].Prec())).AddInt64(b[j], int64(n))

		if !w.Real().IsPositive() {
			return mag.NewInf()
		}

		t := w.MagLower()

		if j < len(a) {
			prec := boundPrec(utils.Max(a[j].Prec(), b[j].Prec()))
			u := ball.NewComplex(prec).Sub(a[j], b[j]).MagUpper()
			u.Div(u, t)
			u.AddFloat64(u, 1)
			C.Mul(C, u)
		} else {
			C.Div(C, t)
		}
	}

	return C.GeomSeries(C)
}

// SeriesBoundFactor is BoundFactor for power series parameters. It returns
// the first length coefficients of a series F with nonnegative coefficients
// such that the coefficients of the tail sum_{k>=n} T(k) are bounded by
// those of maj(T(n)) * F, where maj(x) is the series of the absolute values
// of the coefficients of x.
//
// F = 1/(1 - U) with
//
//	U = maj(z) * prod_{j<p} (1 + maj(a_j - b_j)/rmaj(b_j + n)) * prod_{j>=p} 1/rmaj(b_j + n),
//
// where 1/rmaj(x) dominates 1/x coefficientwise. All the coefficients are
// +Inf when p > q, when the constant coefficient of some Re(b_j + n) is not
// provably positive or when the constant coefficient of U is not < 1.
func SeriesBoundFactor(a, b []*poly.Poly, z *poly.Poly, n, length int) []*mag.Mag {

	if len(a) > len(b) {
		return mag.NewInfSeries(length)
	}

	U := z.CoeffMagUpper()

	for j := range b {

		BN := poly.New(length, boundPrec(b[j].Prec())).AddInt64(b[j], int64(n))

		if length == 0 || !BN.Coeffs[0].Real().IsPositive() {
			return mag.NewInfSeries(length)
		}

		V := mag.RecipSeries(BN.Coeffs[0].MagLower(), BN.CoeffMagUpper(), length)

		if j < len(a) {
			prec := boundPrec(utils.Max(a[j].Prec(), b[j].Prec()))
			T := poly.New(length, prec).Sub(a[j], b[j]).CoeffMagUpper()
			T = mag.MulSeries(T, V, length)
			T[0].AddFloat64(T[0], 1)
			U = mag.MulSeries(U, T, length)
		} else {
			U = mag.MulSeries(U, V, length)
		}
	}

	return mag.GeomSeries(U, length)
}

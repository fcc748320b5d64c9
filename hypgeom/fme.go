package hypgeom

import (
	"github.com/tuneinsight/hypgeom/utils"
)

// fmeMaxParams is the largest number of upper or lower parameters supported
// by SumFME.
const fmeMaxParams = 3

// SumFME computes the same (s, t) as SumForward by fast multipoint evaluation.
//
// With m = isqrt(n-1)/4 and w = (n-1)/m, the products and the partial sum of
// a block of m consecutive terms starting at index X are polynomials in X of
// degree at most 3m, obtained by binary splitting. They are evaluated at the
// w block starts 0, m, ..., (w-1)m with a subproduct tree and combined in
// sequence. The indices w*m, ..., n-1 are summed with the forward method.
//
// SumFME falls back to SumForward when there are more than 3 upper or lower
// parameters or when n is too small to form a block.
func SumFME[T any](r Ring[T], a, b []T, z T, n int) (s, t T) {

	var m, w int

	// up to n-1 so that a terminating series does not divide by the pole
	// right after its last term
	if n > 4 {
		m = utils.ISqrt(n-1) / 4
		w = (n - 1) / utils.Max(m, 1)
	}

	if m < 1 || w < 1 || len(a) > fmeMaxParams || len(b) > fmeMaxParams {
		return SumForward(r, a, b, z, n)
	}

	A, B, C := fmeSplit(r, a, b, z, 0, m)

	points := make([]T, w)
	for i := range points {
		points[i] = r.FromInt64(int64(i * m))
	}

	tree := newSubproductTree(r, points)

	As := tree.evaluate(r, A, make([]T, 0, w))
	Bs := tree.evaluate(r, B, make([]T, 0, w))
	Cs := tree.evaluate(r, C, make([]T, 0, w))

	for i := 1; i < w; i++ {
		Cs[0] = r.Add(r.Mul(Cs[0], Bs[i]), r.Mul(As[0], Cs[i]))
		As[0] = r.Mul(As[0], As[i])
		Bs[0] = r.Mul(Bs[0], Bs[i])
	}

	s = r.Div(Cs[0], Bs[0])
	t = r.Div(As[0], Bs[0])

	return sumForwardFrom(r, a, b, z, s, t, w*m, n)
}

// factorPoly returns prod_i (X + a_i + k), multiplied by z if withZ is true.
func factorPoly[T any](r Ring[T], a []T, k int, z T, withZ bool) rpoly[T] {

	P := rpoly[T]{r.One()}
	for i := range a {
		P = polyMul(r, P, rpoly[T]{r.AddInt64(a[i], int64(k)), r.One()})
	}

	if withZ {
		P = polyScale(r, P, z)
	}

	return P
}

// fmeSplit returns the polynomials A(X) = prod_k num(X + k),
// B(X) = prod_k den(X + k) and C(X) such that C/B is the partial sum of the
// terms of indices [lo, hi) relative to the term of index lo, for k in [lo, hi).
func fmeSplit[T any](r Ring[T], a, b []T, z T, lo, hi int) (A, B, C rpoly[T]) {

	if hi-lo == 1 {
		A = factorPoly(r, a, lo, z, true)
		B = factorPoly(r, b, lo, z, false)
		return A, B, B
	}

	m := lo + (hi-lo)/2

	A1, B1, C1 := fmeSplit(r, a, b, z, lo, m)
	A2, B2, C2 := fmeSplit(r, a, b, z, m, hi)

	C = polyAdd(r, polyMul(r, C1, B2), polyMul(r, A1, C2))

	return polyMul(r, A1, A2), polyMul(r, B1, B2), C
}

package hypgeom

// SumBS computes the same (s, t) as SumForward by binary splitting.
//
// For a range [lo, hi) of indices, with ratio(k) = A(k)/C(k),
// A(k) = prod_i (a_i + k) * z and C(k) = prod_j (b_j + k), bsplit returns
// A = prod A(k), C = prod C(k) and B such that
//
//	B/C = sum_{k=lo}^{hi-1} prod_{l=lo}^{k-1} ratio(l).
//
// The divisions are deferred to the end. In regularized mode the terms up to
// the last pole of the lower parameters are summed with the forward method.
func SumBS[T any](r Ring[T], a, b []T, z T, n int, regularized bool) (s, t T) {
	return sumSplit(r, a, b, z, n, regularized, func(start, n int) (u, v T) {
		A, B, C := bsplit(r, a, b, z, start, n)
		return r.Div(B, C), r.Div(A, C)
	})
}

// sumSplit runs the regularized basecase and combines it with the partial
// sum u and term ratio v of the indices [start, n) computed by split.
func sumSplit[T any](r Ring[T], a, b []T, z T, n int, regularized bool, split func(start, n int) (u, v T)) (s, t T) {

	if n == 0 {
		if regularized {
			return sumForwardRegularized(r, a, b, z, n)
		}
		return SumForward(r, a, b, z, n)
	}

	start := 0

	if regularized {
		start = regularizedStart(r, b, n)
		s, t = sumForwardRegularized(r, a, b, z, start)
	} else {
		s, t = r.Zero(), r.One()
	}

	if start == n {
		return
	}

	u, v := split(start, n)

	s = r.Add(s, r.Mul(t, u))
	t = r.Mul(t, v)

	return
}

func bsplit[T any](r Ring[T], a, b []T, z T, lo, hi int) (A, B, C T) {

	if hi-lo == 1 {
		A = factor(r, a, lo, z, true)
		C = factor(r, b, lo, z, false)
		return A, C, C
	}

	m := lo + (hi-lo)/2

	A1, B1, C1 := bsplit(r, a, b, z, lo, m)
	A2, B2, C2 := bsplit(r, a, b, z, m, hi)

	if hi-m == 1 {
		// B2 = C2
		B = r.Mul(r.Add(A1, B1), C2)
	} else {
		B = r.Add(r.Mul(B1, C2), r.Mul(A1, B2))
	}

	return r.Mul(A1, A2), B, r.Mul(C1, C2)
}

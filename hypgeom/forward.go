package hypgeom

// SumForward computes s = sum_{k=0}^{n-1} T(k) and t = T(n), where
// T(k) = prod_i (a_i)_k / prod_j (b_j)_k * z^k, by updating the term with
// the ratio T(k+1)/T(k) = prod_i (a_i + k) / prod_j (b_j + k) * z.
// The summation stops early once the term is exactly zero.
func SumForward[T any](r Ring[T], a, b []T, z T, n int) (s, t T) {
	return sumForwardFrom(r, a, b, z, r.Zero(), r.One(), 0, n)
}

// sumForwardFrom continues the forward summation from the partial sum s of
// the terms before index k and the term t of index k.
func sumForwardFrom[T any](r Ring[T], a, b []T, z T, s, t T, k, n int) (T, T) {

	for ; k < n && !r.IsZero(t); k++ {

		s = r.Add(s, t)

		if len(a) > 0 {
			t = r.Mul(t, factor(r, a, k, z, false))
		}

		if len(b) > 0 {
			t = r.Div(t, factor(r, b, k, z, false))
		}

		t = r.Mul(t, z)
	}

	return s, t
}

// sumForwardRegularized is SumForward for the regularized terms
// T(k) = prod_i (a_i)_k / prod_j Gamma(b_j + k) * z^k.
//
// The factor 1/Gamma(b_j + k) of each lower parameter is kept separately:
// it is divided by b_j + k when the constant coefficient of b_j + k is
// not zero, and recomputed from scratch otherwise.
func sumForwardRegularized[T any](r Ring[T], a, b []T, z T, n int) (s, t T) {

	G := make([]T, len(b))
	for j := range b {
		G[j] = r.RGamma(b[j])
	}

	num := r.One()

	s = r.Zero()
	t = regularizedTerm(r, num, G)

	for k := 0; k < n; k++ {

		s = r.Add(s, t)

		num = r.Mul(num, factor(r, a, k, z, true))

		for j := range b {
			u := r.AddInt64(b[j], int64(k))
			if r.ContainsZero(u) {
				G[j] = r.RGamma(r.AddInt64(b[j], int64(k+1)))
			} else {
				G[j] = r.Div(G[j], u)
			}
		}

		t = regularizedTerm(r, num, G)
	}

	return
}

func regularizedTerm[T any](r Ring[T], num T, G []T) T {
	t := num
	for j := range G {
		t = r.Mul(t, G[j])
	}
	return t
}

// regularizedStart returns the index past the last pole of the lower
// parameters below n. The terms before this index are summed with
// sumForwardRegularized by the fast strategies.
func regularizedStart[T any](r Ring[T], b []T, n int) (start int) {
	for j := range b {
		if c, ok := r.MaxPoleIndex(b[j], n); ok && c < n {
			start = max(start, c+1)
		}
	}
	return
}

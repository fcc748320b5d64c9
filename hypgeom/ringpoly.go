package hypgeom

// rpoly is a polynomial in X with coefficients in a Ring, stored from the
// constant coefficient upwards.
type rpoly[T any] []T

func polyAdd[T any](r Ring[T], x, y rpoly[T]) rpoly[T] {

	if len(x) < len(y) {
		x, y = y, x
	}

	z := make(rpoly[T], len(x))
	for i := range x {
		if i < len(y) {
			z[i] = r.Add(x[i], y[i])
		} else {
			z[i] = x[i]
		}
	}

	return z
}

func polyMul[T any](r Ring[T], x, y rpoly[T]) rpoly[T] {

	if len(x) == 0 || len(y) == 0 {
		return nil
	}

	z := make(rpoly[T], len(x)+len(y)-1)
	for i := range z {
		z[i] = r.Zero()
	}

	for i := range x {
		for j := range y {
			z[i+j] = r.Add(z[i+j], r.Mul(x[i], y[j]))
		}
	}

	return z
}

func polyScale[T any](r Ring[T], x rpoly[T], c T) rpoly[T] {
	z := make(rpoly[T], len(x))
	for i := range x {
		z[i] = r.Mul(x[i], c)
	}
	return z
}

// polyRemMonic returns x mod d for a monic polynomial d.
func polyRemMonic[T any](r Ring[T], x, d rpoly[T]) rpoly[T] {

	m := len(d) - 1

	if len(x) <= m {
		return x
	}

	z := make(rpoly[T], len(x))
	copy(z, x)

	for i := len(z) - 1; i >= m; i-- {
		q := z[i]
		for j := 0; j < m; j++ {
			z[i-m+j] = r.Sub(z[i-m+j], r.Mul(q, d[j]))
		}
	}

	return z[:m]
}

// polyEval returns x(c) with Horner's rule.
func polyEval[T any](r Ring[T], x rpoly[T], c T) T {
	res := r.Zero()
	for i := len(x) - 1; i >= 0; i-- {
		res = r.Add(r.Mul(res, c), x[i])
	}
	return res
}

// subproductTree is the binary tree of the products prod_i (X - x_i) over
// halves of a list of points, used to evaluate a polynomial at all the
// points by successive remainders.
type subproductTree[T any] struct {
	poly        rpoly[T]
	left, right *subproductTree[T]
}

func newSubproductTree[T any](r Ring[T], points []T) *subproductTree[T] {

	if len(points) == 1 {
		return &subproductTree[T]{
			poly: rpoly[T]{r.Sub(r.Zero(), points[0]), r.One()},
		}
	}

	m := len(points) / 2

	left := newSubproductTree(r, points[:m])
	right := newSubproductTree(r, points[m:])

	return &subproductTree[T]{
		poly:  polyMul(r, left.poly, right.poly),
		left:  left,
		right: right,
	}
}

// evaluate writes x(x_i) on out for all the points x_i of the tree.
func (tree *subproductTree[T]) evaluate(r Ring[T], x rpoly[T], out []T) []T {

	x = polyRemMonic(r, x, tree.poly)

	if tree.left == nil {
		if len(x) == 0 {
			return append(out, r.Zero())
		}
		return append(out, x[0])
	}

	out = tree.left.evaluate(r, x, out)
	return tree.right.evaluate(r, x, out)
}

// Package gamma implements the reciprocal Gamma function 1/Gamma on complex
// balls and on truncated power series with complex ball coefficients.
//
// The evaluation shifts the argument to the right with the rising factorial,
// 1/Gamma(x) = (x)_r / Gamma(x + r), and evaluates log Gamma(x + r) with the
// Stirling series. The result is an entire function of x: the poles of Gamma
// become the zeros of the rising factorial.
package gamma

import (
	"math"
	"math/big"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/poly"
)

const (
	// MaxShift is the largest shift r of the argument. Arguments with a real
	// part below -MaxShift give an indeterminate result.
	MaxShift = 1 << 20

	// maxFactorialShortcut is the largest positive integer m for which
	// 1/Gamma(m) is computed as 1/(m-1)!.
	maxFactorialShortcut = 200

	guardBits = 30
)

// Evaluator evaluates the reciprocal Gamma function.
// It holds a Cache of Bernoulli numbers.
type Evaluator struct {
	cache *Cache
}

// NewEvaluator returns a new Evaluator with an empty Bernoulli cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{cache: NewCache()}
}

// ShallowCopy creates a shallow copy of this Evaluator in which the
// Bernoulli cache is fresh. The returned Evaluator can be used concurrently
// with the original one.
func (eval *Evaluator) ShallowCopy() *Evaluator {
	return NewEvaluator()
}

// Cache returns the Bernoulli cache of the Evaluator.
func (eval *Evaluator) Cache() *Cache {
	return eval.cache
}

// RGamma returns a ball containing 1/Gamma(x) with prec bits of precision.
func (eval *Evaluator) RGamma(x *ball.Complex, prec uint) *ball.Complex {

	if !x.IsFinite() {
		return ball.NewComplexIndeterminate(prec)
	}

	if x.IsReal() && x.IsInt() {

		m := new(big.Int)
		x.Real().Mid().Int(m)

		if m.Sign() <= 0 {
			return ball.NewComplex(prec)
		}

		if m.IsInt64() && m.Int64() <= maxFactorialShortcut {
			f := new(big.Int).MulRange(1, m.Int64()-1)
			return ball.ToComplex(new(big.Rat).SetFrac(big.NewInt(1), f), prec)
		}
	}

	return eval.RGammaSeries(poly.NewConstant(x, 1, prec), 1, prec).Coeffs[0]
}

// RGammaSeries returns 1/Gamma(x) mod t^n with prec bits of precision,
// where x is a power series in t.
func (eval *Evaluator) RGammaSeries(x *poly.Poly, n int, prec uint) *poly.Poly {

	res := poly.New(n, prec)

	if n == 0 {
		return res
	}

	x0 := x.Coeff(0)
	if x0 == nil {
		x0 = ball.NewComplex(prec)
	}

	if !x0.IsFinite() || !x.IsFinite() {
		return res.SetIndeterminate()
	}

	wp := workingPrecision(x0, prec)

	// shift such that Re(x + r) >= W
	W := 0.2*float64(wp) + 10

	lo, _ := x0.Real().Endpoints(64)
	d := new(big.Float).Sub(big.NewFloat(W), lo)

	r := 0
	if d.Sign() > 0 {
		if d.Cmp(big.NewFloat(MaxShift)) > 0 {
			return res.SetIndeterminate()
		}
		c, _ := d.Int64()
		r = int(c) + 1
	}

	xs := poly.NewFromCoeffs(x.Coeffs, n, wp)

	w := poly.New(n, wp).AddInt64(xs, int64(r))

	L := eval.logGammaStirling(w, wp)
	if !L.IsFinite() {
		return res.SetIndeterminate()
	}

	// (x)_r exp(-log Gamma(x + r))
	L.Neg(L)
	y := poly.New(n, wp).Exp(L)

	if r > 0 {
		y.Mul(y, rising(xs, 0, r, wp))
	}

	return res.Set(y)
}

// rising returns prod_{k=a}^{b-1} (x + k) by binary splitting.
func rising(x *poly.Poly, a, b int, prec uint) *poly.Poly {

	n := x.Len()

	switch b - a {
	case 0:
		return poly.New(n, prec).AddInt64(poly.New(n, prec), 1)
	case 1:
		return poly.New(n, prec).AddInt64(x, int64(a))
	}

	m := a + (b-a)/2

	return poly.New(n, prec).Mul(rising(x, a, m, prec), rising(x, m, b, prec))
}

// workingPrecision returns the precision needed so that the absolute error on
// log Gamma(x + r) translates into a relative error of about 2^-prec.
func workingPrecision(x0 *ball.Complex, prec uint) uint {

	m := x0.MagUpper().Float64()
	m = math.Min(math.Max(m, 0.2*float64(prec)+10), 0x1p1000)

	// |log Gamma(w)| <= |w| log|w| for the magnitudes considered
	extra := math.Ceil(math.Log2(m)) + math.Ceil(math.Log2(math.Log2(m)+1)) + 2

	return prec + guardBits + uint(extra)
}

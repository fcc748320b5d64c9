package hypgeom

import (
	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/gamma"
	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/poly"
)

// Ring is the set of operations the summation strategies need on the values
// of the parameters, of the argument and of the terms of the series.
// Operations return newly allocated values and never modify their operands.
//
// Two instantiations are provided: ScalarRing over *ball.Complex and
// SeriesRing over *poly.Poly (power series truncated to a fixed length).
type Ring[T any] interface {
	// Prec returns the precision of the results.
	Prec() uint
	// WithPrec returns the same ring with a different precision.
	WithPrec(prec uint) Ring[T]

	Zero() T
	One() T
	FromInt64(c int64) T
	// Round returns a copy of x rounded to the precision of the ring.
	Round(x T) T

	Add(x, y T) T
	Sub(x, y T) T
	Mul(x, y T) T
	// Div returns x/y, indeterminate if the constant coefficient of y may be zero.
	Div(x, y T) T
	AddInt64(x T, c int64) T
	MulInt64(x T, c int64) T
	// RGamma returns 1/Gamma(x).
	RGamma(x T) T

	IsZero(x T) bool
	IsReal(x T) bool
	IsFinite(x T) bool
	// ContainsZero returns true if the constant coefficient of x may be zero.
	ContainsZero(x T) bool
	// MaxPoleIndex returns the largest c <= limit such that the constant
	// coefficient of x may be -c, and false if it contains no integer <= 0.
	MaxPoleIndex(x T, limit int) (int, bool)
	// Bits returns the number of significant bits of the midpoints of x.
	Bits(x T) int

	newTermTracker(isReal bool) termTracker[T]
}

// termTracker accumulates a cheap enclosure of the last term of the
// rectangular splitting algorithm, which only needs to be bounded.
type termTracker[T any] interface {
	mulNum(u T)
	mulDen(u T)
	term(z T, n int) T
}

// ScalarRing is the Ring of complex balls.
type ScalarRing struct {
	prec  uint
	gamma *gamma.Evaluator
}

// NewScalarRing returns a ScalarRing with the given precision. The reciprocal
// gamma function uses eval, a new gamma.Evaluator is created if eval is nil.
func NewScalarRing(prec uint, eval *gamma.Evaluator) *ScalarRing {
	if eval == nil {
		eval = gamma.NewEvaluator()
	}
	return &ScalarRing{prec: prec, gamma: eval}
}

func (r *ScalarRing) Prec() uint {
	return r.prec
}

func (r *ScalarRing) WithPrec(prec uint) Ring[*ball.Complex] {
	return &ScalarRing{prec: prec, gamma: r.gamma}
}

func (r *ScalarRing) Zero() *ball.Complex {
	return ball.NewComplex(r.prec)
}

func (r *ScalarRing) One() *ball.Complex {
	return ball.NewComplex(r.prec).SetInt64(1)
}

func (r *ScalarRing) FromInt64(c int64) *ball.Complex {
	return ball.NewComplex(r.prec).SetInt64(c)
}

func (r *ScalarRing) Round(x *ball.Complex) *ball.Complex {
	return ball.NewComplex(r.prec).Set(x)
}

func (r *ScalarRing) Add(x, y *ball.Complex) *ball.Complex {
	return ball.NewComplex(r.prec).Add(x, y)
}

func (r *ScalarRing) Sub(x, y *ball.Complex) *ball.Complex {
	return ball.NewComplex(r.prec).Sub(x, y)
}

func (r *ScalarRing) Mul(x, y *ball.Complex) *ball.Complex {
	return ball.NewComplex(r.prec).Mul(x, y)
}

func (r *ScalarRing) Div(x, y *ball.Complex) *ball.Complex {
	return ball.NewComplex(r.prec).Div(x, y)
}

func (r *ScalarRing) AddInt64(x *ball.Complex, c int64) *ball.Complex {
	return ball.NewComplex(r.prec).AddInt64(x, c)
}

func (r *ScalarRing) MulInt64(x *ball.Complex, c int64) *ball.Complex {
	return ball.NewComplex(r.prec).MulInt64(x, c)
}

func (r *ScalarRing) RGamma(x *ball.Complex) *ball.Complex {
	return r.gamma.RGamma(x, r.prec)
}

func (r *ScalarRing) IsZero(x *ball.Complex) bool {
	return x.IsZero()
}

func (r *ScalarRing) IsReal(x *ball.Complex) bool {
	return x.IsReal()
}

func (r *ScalarRing) IsFinite(x *ball.Complex) bool {
	return x.IsFinite()
}

func (r *ScalarRing) ContainsZero(x *ball.Complex) bool {
	return x.ContainsZero()
}

func (r *ScalarRing) MaxPoleIndex(x *ball.Complex, limit int) (int, bool) {
	return x.MaxNonPositiveIntIndex(limit)
}

func (r *ScalarRing) Bits(x *ball.Complex) int {
	return x.Bits()
}

func (r *ScalarRing) newTermTracker(isReal bool) termTracker[*ball.Complex] {
	return &magTracker{num: mag.FromInt64(1), den: mag.FromInt64(1), prec: r.prec, isReal: isReal}
}

// magTracker bounds |t| = prod |num| / prod |den| * |z|^n with Mag arithmetic.
type magTracker struct {
	num, den *mag.Mag
	prec     uint
	isReal   bool
}

func (m *magTracker) mulNum(u *ball.Complex) {
	m.num.Mul(m.num, u.MagUpper())
}

func (m *magTracker) mulDen(u *ball.Complex) {
	m.den.MulLower(m.den, u.MagLower())
}

func (m *magTracker) term(z *ball.Complex, n int) *ball.Complex {

	b := mag.New().Div(m.num, m.den)
	b.Mul(b, mag.New().Pow(z.MagUpper(), uint64(n)))

	t := ball.NewComplex(m.prec)
	if m.isReal {
		return t.AddErrorReal(b)
	}
	return t.AddError(b)
}

// SeriesRing is the Ring of power series with complex ball coefficients,
// truncated to a fixed length.
type SeriesRing struct {
	length int
	prec   uint
	gamma  *gamma.Evaluator
}

// NewSeriesRing returns a SeriesRing of series truncated to length
// coefficients of the given precision. The reciprocal gamma function uses
// eval, a new gamma.Evaluator is created if eval is nil.
func NewSeriesRing(length int, prec uint, eval *gamma.Evaluator) *SeriesRing {
	if eval == nil {
		eval = gamma.NewEvaluator()
	}
	return &SeriesRing{length: length, prec: prec, gamma: eval}
}

// Len returns the length of the series of the ring.
func (r *SeriesRing) Len() int {
	return r.length
}

func (r *SeriesRing) Prec() uint {
	return r.prec
}

func (r *SeriesRing) WithPrec(prec uint) Ring[*poly.Poly] {
	return &SeriesRing{length: r.length, prec: prec, gamma: r.gamma}
}

func (r *SeriesRing) new() *poly.Poly {
	return poly.New(r.length, r.prec)
}

func (r *SeriesRing) Zero() *poly.Poly {
	return r.new()
}

func (r *SeriesRing) One() *poly.Poly {
	return r.new().AddInt64(r.new(), 1)
}

func (r *SeriesRing) FromInt64(c int64) *poly.Poly {
	return r.new().AddInt64(r.new(), c)
}

func (r *SeriesRing) Round(x *poly.Poly) *poly.Poly {
	return r.new().Set(x)
}

func (r *SeriesRing) Add(x, y *poly.Poly) *poly.Poly {
	return r.new().Add(x, y)
}

func (r *SeriesRing) Sub(x, y *poly.Poly) *poly.Poly {
	return r.new().Sub(x, y)
}

func (r *SeriesRing) Mul(x, y *poly.Poly) *poly.Poly {
	return r.new().Mul(x, y)
}

func (r *SeriesRing) Div(x, y *poly.Poly) *poly.Poly {
	return r.new().Div(x, y)
}

func (r *SeriesRing) AddInt64(x *poly.Poly, c int64) *poly.Poly {
	return r.new().AddInt64(x, c)
}

func (r *SeriesRing) MulInt64(x *poly.Poly, c int64) *poly.Poly {
	return r.new().MulInt64(x, c)
}

func (r *SeriesRing) RGamma(x *poly.Poly) *poly.Poly {
	return r.gamma.RGammaSeries(x, r.length, r.prec)
}

func (r *SeriesRing) IsZero(x *poly.Poly) bool {
	return x.IsZero()
}

func (r *SeriesRing) IsReal(x *poly.Poly) bool {
	return x.IsReal()
}

func (r *SeriesRing) IsFinite(x *poly.Poly) bool {
	return x.IsFinite()
}

func (r *SeriesRing) ContainsZero(x *poly.Poly) bool {
	if c := x.Coeff(0); c != nil {
		return c.ContainsZero()
	}
	return true
}

func (r *SeriesRing) MaxPoleIndex(x *poly.Poly, limit int) (int, bool) {
	if c := x.Coeff(0); c != nil {
		return c.MaxNonPositiveIntIndex(limit)
	}
	return 0, true
}

func (r *SeriesRing) Bits(x *poly.Poly) int {
	return x.Bits()
}

func (r *SeriesRing) newTermTracker(isReal bool) termTracker[*poly.Poly] {
	low := r.WithPrec(2 * mag.Prec)
	return &ringTracker[*poly.Poly]{r: low, num: low.One(), den: low.One()}
}

// ringTracker computes the last term in the ring at a low precision.
type ringTracker[T any] struct {
	r        Ring[T]
	num, den T
}

func (rt *ringTracker[T]) mulNum(u T) {
	rt.num = rt.r.Mul(rt.num, rt.r.Round(u))
}

func (rt *ringTracker[T]) mulDen(u T) {
	rt.den = rt.r.Mul(rt.den, rt.r.Round(u))
}

func (rt *ringTracker[T]) term(z T, n int) T {
	t := rt.r.Div(rt.num, rt.den)
	return rt.r.Mul(t, pow(rt.r, rt.r.Round(z), n))
}

// pow returns x^n by binary exponentiation.
func pow[T any](r Ring[T], x T, n int) T {
	res := r.One()
	for ; n > 0; n >>= 1 {
		if n&1 == 1 {
			res = r.Mul(res, x)
		}
		if n > 1 {
			x = r.Mul(x, x)
		}
	}
	return res
}

// factor returns prod_i (a_i + k), multiplied by z if withZ is true.
func factor[T any](r Ring[T], a []T, k int, z T, withZ bool) T {

	if len(a) == 0 {
		if withZ {
			return z
		}
		return r.One()
	}

	u := r.AddInt64(a[0], int64(k))
	for i := 1; i < len(a); i++ {
		u = r.Mul(u, r.AddInt64(a[i], int64(k)))
	}

	if withZ {
		u = r.Mul(u, z)
	}

	return u
}

// allReal returns true if all the values are real.
func allReal[T any](r Ring[T], a, b []T, z T) bool {
	for i := range a {
		if !r.IsReal(a[i]) {
			return false
		}
	}
	for i := range b {
		if !r.IsReal(b[i]) {
			return false
		}
	}
	return r.IsReal(z)
}

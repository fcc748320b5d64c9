package hypgeom

import (
	"io"
	"math/big"

	"github.com/rs/zerolog"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/gamma"
	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/poly"
	"github.com/tuneinsight/hypgeom/utils"
)

// AutoTerms requests the number of terms to be chosen by ChooseN or
// SeriesChooseN.
const AutoTerms = -1

// Evaluator evaluates generalized hypergeometric series with rigorous error
// bounds. It holds a reciprocal gamma evaluator, with its cache of Bernoulli
// numbers, and an optional memo cache of results.
//
// An Evaluator is not safe for concurrent use, see ShallowCopy.
type Evaluator struct {
	params Parameters
	gamma  *gamma.Evaluator
	memo   *Memo
	logger zerolog.Logger
}

// NewEvaluator instantiates a new Evaluator from the given parameters.
// It does not log, see WithLogger.
func NewEvaluator(params Parameters) *Evaluator {
	eval := &Evaluator{
		params: params,
		gamma:  gamma.NewEvaluator(),
		logger: zerolog.Nop(),
	}
	if params.MemoCapacity() > 0 {
		eval.memo = NewMemo(params.MemoCapacity())
	}
	return eval
}

// ShallowCopy creates a shallow copy of this Evaluator in which the
// parameters and the logger are shared with the receiver and the caches are
// reallocated. The returned Evaluator can be used concurrently with the
// receiver.
func (eval *Evaluator) ShallowCopy() *Evaluator {
	cpy := NewEvaluator(eval.params)
	cpy.logger = eval.logger
	return cpy
}

// WithLogger returns an instance of the receiver that shares its caches and
// reports its decisions on logger at the Debug level.
func (eval *Evaluator) WithLogger(logger zerolog.Logger) *Evaluator {
	return &Evaluator{
		params: eval.params,
		gamma:  eval.gamma,
		memo:   eval.memo,
		logger: logger,
	}
}

// Parameters returns the parameters of the Evaluator.
func (eval *Evaluator) Parameters() Parameters {
	return eval.params
}

// Memo returns the memo cache of the Evaluator, nil if it is disabled.
func (eval *Evaluator) Memo() *Memo {
	return eval.memo
}

// Gamma returns the reciprocal gamma evaluator used by the Evaluator.
func (eval *Evaluator) Gamma() *gamma.Evaluator {
	return eval.gamma
}

// Direct returns a ball containing sum_{k>=0} prod (a_i)_k / prod (b_j)_k z^k,
// computed at precision prec with n terms, or with the number of terms given
// by ChooseN if n is AutoTerms. There is no implicit factorial, see HypGeom.
//
// The sum of the first n terms is enclosed with the strategy selected by the
// Policy of the Evaluator and the tail is bounded with BoundFactor. The
// result is indeterminate if an input is not finite or if the tail cannot be
// bounded. The result does not depend on the order of the upper parameters
// nor on that of the lower parameters.
func (eval *Evaluator) Direct(a, b []*ball.Complex, z *ball.Complex, n int, prec uint) (res *ball.Complex) {

	if !finiteScalars(a, b, z) {
		eval.logger.Debug().Str("op", "direct").Msg("non-finite input")
		return ball.NewComplexIndeterminate(prec)
	}

	a, b = sortedComplex(a), sortedComplex(b)

	var key [32]byte
	if eval.memo != nil {
		var err error
		if key, err = eval.memo.digest(memoKey{op: opDirect, prec: prec, n: n, p: len(a)}, values(a, b, z)...); err == nil {
			res = new(ball.Complex)
			if eval.memo.load(key, res) {
				return
			}
			defer func() { eval.memo.store(key, res) }()
		}
	}

	if n < 0 {
		n = ChooseN(a, b, z, prec)
	}

	r := NewScalarRing(prec, eval.gamma)
	strategy := chooseScalar(r, a, b, z, n, eval.params.policy)

	s, t := SumWith[*ball.Complex](r, a, b, z, false, n, strategy)

	if !t.IsZero() {

		C := BoundFactor(a, b, z, n)
		e := t.MagUpper()

		if !C.IsFinite() || !e.IsFinite() {
			eval.logger.Debug().Str("op", "direct").Int("n", n).Msg("tail bound is not finite")
			return ball.NewComplexIndeterminate(prec)
		}

		e.Mul(e, C)

		if allReal[*ball.Complex](r, a, b, z) {
			s.AddErrorReal(e)
		} else {
			s.AddError(e)
		}
	}

	eval.logger.Debug().
		Str("op", "direct").
		Int("p", len(a)).
		Int("q", len(b)).
		Int("n", n).
		Uint("prec", prec).
		Stringer("strategy", strategy).
		Msg("summed")

	return s
}

// SeriesDirect is Direct for power series parameters truncated to length
// coefficients. It returns the first length coefficients of the power series
// in the variable of the parameters obtained by composition with the sum.
//
// In regularized mode, the lower Pochhammer symbols (b_j)_k are replaced by
// Gamma(b_j + k), that is, the sum is divided by prod Gamma(b_j), which is
// well defined when some b_j is a nonpositive integer.
func (eval *Evaluator) SeriesDirect(a, b []*poly.Poly, z *poly.Poly, regularized bool, n, length int, prec uint) (res *poly.Poly) {

	if length <= 0 {
		return poly.New(0, prec)
	}

	if !finiteSeries(a, b, z) {
		eval.logger.Debug().Str("op", "series direct").Msg("non-finite input")
		return poly.New(length, prec).SetIndeterminate()
	}

	a, b = sortedPoly(a), sortedPoly(b)

	var key [32]byte
	if eval.memo != nil {
		var err error
		k := memoKey{op: opSeriesDirect, regularized: regularized, prec: prec, n: n, length: length, p: len(a)}
		if key, err = eval.memo.digest(k, values(a, b, z)...); err == nil {
			res = new(poly.Poly)
			if eval.memo.load(key, res) {
				return
			}
			defer func() { eval.memo.store(key, res) }()
		}
	}

	if n < 0 {
		n = SeriesChooseN(a, b, z, length, prec)
	}

	r := NewSeriesRing(length, prec, eval.gamma)
	strategy := chooseSeries(r, a, b, z, n, eval.params.policy)

	s, t := SumWith[*poly.Poly](r, a, b, z, regularized, n, strategy)

	if !seriesTerminates(a, b, z, regularized, n, length) {

		T := t.CoeffMagUpper()
		C := SeriesBoundFactor(a, b, z, n, length)

		var E []*mag.Mag
		if !mag.IsFiniteSeries(T) || !mag.IsFiniteSeries(C) {
			eval.logger.Debug().Str("op", "series direct").Int("n", n).Msg("tail bound is not finite")
			E = mag.NewInfSeries(length)
		} else {
			E = mag.MulSeries(T, C, length)
		}

		realOnly := allReal[*poly.Poly](r, a, b, z)
		for i := range E {
			s.AddError(i, E[i], realOnly)
		}
	}

	eval.logger.Debug().
		Str("op", "series direct").
		Int("p", len(a)).
		Int("q", len(b)).
		Int("n", n).
		Int("len", length).
		Bool("regularized", regularized).
		Uint("prec", prec).
		Stringer("strategy", strategy).
		Msg("summed")

	return s
}

// HypGeom returns a ball containing the generalized hypergeometric function
//
//	pFq(a; b; z) = sum_{k>=0} prod (a_i)_k / prod (b_j)_k z^k / k!
//
// at precision prec. In regularized mode, the result is divided by
// prod Gamma(b_j), which is an entire function of the lower parameters.
func (eval *Evaluator) HypGeom(a, b []*ball.Complex, z *ball.Complex, regularized bool, prec uint) *ball.Complex {

	bk := append(append(make([]*ball.Complex, 0, len(b)+1), b...), ball.NewComplex(prec).SetInt64(1))

	if !regularized {
		return eval.Direct(a, bk, z, AutoTerms, prec)
	}

	var pole bool
	for i := range b {
		pole = pole || b[i].ContainsNonPositiveInt()
	}

	if !pole {
		res := eval.Direct(a, bk, z, AutoTerms, prec)
		for i := range b {
			res.Mul(res, eval.gamma.RGamma(b[i], prec))
		}
		return res
	}

	constant := func(x *ball.Complex) *poly.Poly { return poly.NewConstant(x, 1, x.Prec()) }
	ap, bp := utils.MapSlice(a, constant), utils.MapSlice(bk, constant)

	res := eval.SeriesDirect(ap, bp, poly.NewConstant(z, 1, z.Prec()), true, AutoTerms, 1, prec)

	return res.Coeffs[0]
}

// HypGeomSeries is HypGeom for power series parameters truncated to length
// coefficients.
func (eval *Evaluator) HypGeomSeries(a, b []*poly.Poly, z *poly.Poly, regularized bool, length int, prec uint) *poly.Poly {
	bk := append(append(make([]*poly.Poly, 0, len(b)+1), b...), poly.NewConstant(ball.NewComplex(prec).SetInt64(1), 1, prec))
	return eval.SeriesDirect(a, bk, z, regularized, AutoTerms, length, prec)
}

// seriesTerminates returns true if the terms of index >= n of the series
// vanish to order length: an upper parameter is zero or a negative integer
// of magnitude < n, or z vanishes to order length.
func seriesTerminates(a, b []*poly.Poly, z *poly.Poly, regularized bool, n, length int) bool {

	bn := new(big.Float).SetInt64(int64(n))

	for i := range a {
		switch {
		case a[i].IsZero():
			if n > 0 {
				return true
			}
		case a[i].IsConstant():
			c := a[i].Coeffs[0]
			if c.IsInt() && c.Real().IsNegative() && new(big.Float).Abs(c.Real().Mid()).Cmp(bn) < 0 {
				return true
			}
		}
	}

	if z.IsZero() {
		return n >= 1
	}

	if !constCoeff(z).IsZero() || n < length {
		return false
	}

	if regularized {
		return true
	}

	for j := range b {
		if c := constCoeff(b[j]); !c.Real().IsPositive() && c.ContainsInt() {
			return false
		}
	}

	return true
}

func finiteScalars(a, b []*ball.Complex, z *ball.Complex) bool {
	for _, x := range a {
		if !x.IsFinite() {
			return false
		}
	}
	for _, x := range b {
		if !x.IsFinite() {
			return false
		}
	}
	return z.IsFinite()
}

func finiteSeries(a, b []*poly.Poly, z *poly.Poly) bool {
	for _, x := range a {
		if !x.IsFinite() {
			return false
		}
	}
	for _, x := range b {
		if !x.IsFinite() {
			return false
		}
	}
	return z.IsFinite()
}

// sortedComplex returns a sorted copy of x.
func sortedComplex(x []*ball.Complex) []*ball.Complex {
	y := utils.CloneSlice(x)
	utils.SortSliceFunc(y, (*ball.Complex).Less)
	return y
}

// sortedPoly returns a copy of x sorted by length, then lexicographically on
// the coefficients.
func sortedPoly(x []*poly.Poly) []*poly.Poly {
	y := utils.CloneSlice(x)
	utils.SortSliceFunc(y, func(p, q *poly.Poly) bool {
		if p.Len() != q.Len() {
			return p.Len() < q.Len()
		}
		for k := range p.Coeffs {
			if !p.Coeffs[k].Equal(q.Coeffs[k]) {
				return p.Coeffs[k].Less(q.Coeffs[k])
			}
		}
		return false
	})
	return y
}

// values lists the inputs of an evaluation in order.
func values[T io.WriterTo](a, b []T, z T) []io.WriterTo {
	f := func(x T) io.WriterTo { return x }
	return append(append(utils.MapSlice(a, f), utils.MapSlice(b, f)...), z)
}

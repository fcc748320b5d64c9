package gamma

import (
	"math"
	"math/big"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/poly"
)

// maxStirlingTerms bounds the number of terms of the Stirling series.
const maxStirlingTerms = 1 << 14

// stirlingTerms returns the smallest N such that the float64 estimate of
// the remainder of the Stirling series with N terms at a point of real
// part sigma is below 2^target.
func stirlingTerms(sigma, target float64) (N int, ok bool) {

	log2TwoPi := math.Log2(2 * math.Pi)
	log2Sigma := math.Log2(sigma)

	for N = 1; N < maxStirlingTerms; N++ {
		n2 := float64(2 * N)
		// |B_2N| <= 4 (2N)! / (2pi)^2N
		lg, _ := math.Lgamma(n2 + 1)
		log2B := lg/math.Ln2 + 2 - n2*log2TwoPi
		e := 1 + log2B - math.Log2(n2) - math.Log2(n2-1) - (n2-1)*log2Sigma
		if e < target {
			return N, true
		}
	}

	return 0, false
}

// logGammaStirling returns log Gamma(w) mod x^w.Len() for a series w whose
// constant coefficient has a real part bounded below by a positive number,
// using the Stirling series with a rigorous remainder bound.
func (eval *Evaluator) logGammaStirling(w *poly.Poly, prec uint) *poly.Poly {

	n := w.Len()
	res := poly.New(n, prec)

	w0 := w.Coeffs[0]
	lo, _ := w0.Real().Endpoints(64)
	if lo.Sign() <= 0 || !w0.IsFinite() {
		return res.SetIndeterminate()
	}

	sigma := mag.New().SetAbsLower(lo)

	N, ok := stirlingTerms(bigToFloat64(lo), -float64(prec)-4)
	if !ok {
		return res.SetIndeterminate()
	}

	// (w - 1/2) log(w) - w + log(2 pi)/2
	logw := poly.New(n, prec).Log(w)
	half := ball.ToComplex(0.5, prec)
	res.Sub(w, poly.NewConstant(half, n, prec))
	res.Mul(res, logw)
	res.Sub(res, w)

	logTwoPi := ball.NewPi(prec)
	logTwoPi.Mul2Exp(logTwoPi, 1)
	logTwoPi.Log(logTwoPi)
	logTwoPi.Mul2Exp(logTwoPi, -1)
	res.AddScalar(res, ball.NewComplex(prec).SetBall(logTwoPi))

	// sum_{k=1}^{N-1} B_2k / (2k (2k-1) w^(2k-1))
	winv := poly.New(n, prec).Inv(w)
	winv2 := poly.New(n, prec).Mul(winv, winv)
	t := winv.Clone()
	tmp := poly.New(n, prec)
	for k := 1; k < N; k++ {
		q := eval.cache.Bernoulli(2 * k)
		q.Quo(q, big.NewRat(int64(2*k)*int64(2*k-1), 1))
		tmp.MulScalar(t, ball.ToComplex(q, prec))
		res.Add(res, tmp)
		if k+1 < N {
			t.Mul(t, winv2)
		}
	}

	// remainder
	bound := stirlingRemainder(eval.cache.Bernoulli(2*N), N, sigma, w)
	for i := range bound {
		res.AddError(i, bound[i], false)
	}

	return res
}

// stirlingRemainder returns upper bounds on the coefficients of the remainder
// R_N(w(x)) of the Stirling series for log Gamma. With W = w - w_0 and
// sigma <= Re(w_0), the j-th Taylor coefficient of R_N at w_0 is bounded by
//
//	E_j = 2|B_2N|/(2N) * binomial(2N+j-1, j) / ((2N+j-1) sigma^(2N+j-1))
//
// and the bound is sum_j E_j maj(W)^j.
func stirlingRemainder(b2N *big.Rat, N int, sigma *mag.Mag, w *poly.Poly) []*mag.Mag {

	n := w.Len()

	b := ball.NewFromRat(new(big.Rat).Abs(b2N), 64).MagUpper()
	b.Mul2Exp(b, 1)
	b.Div(b, mag.FromInt64(int64(2*N)))

	E := make([]*mag.Mag, n)
	for j := 0; j < n; j++ {
		e := int64(2*N + j - 1)
		binom := new(big.Int).Binomial(e, int64(j))
		E[j] = ball.NewFromRat(new(big.Rat).SetInt(binom), 64).MagUpper()
		E[j].Mul(E[j], b)
		den := mag.New().PowLower(sigma, uint64(e))
		den.MulLower(den, mag.FromFloat64Lower(float64(e)))
		E[j].Div(E[j], den)
	}

	// majorant of the non-constant part of w
	M := make([]*mag.Mag, n)
	M[0] = mag.New()
	for i := 1; i < n; i++ {
		M[i] = w.Coeffs[i].MagUpper()
	}

	bound := mag.NewSeries(n)
	P := mag.NewSeries(n)
	P[0].Set(mag.FromInt64(1))

	for j := 0; j < n; j++ {
		for i := range bound {
			bound[i].Add(bound[i], mag.New().Mul(E[j], P[i]))
		}
		P = mag.MulSeries(P, M, n)
	}

	return bound
}

func bigToFloat64(x *big.Float) float64 {
	f, _ := x.Float64()
	return f
}

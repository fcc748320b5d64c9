package hypgeom

import (
	"math"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/poly"
	"github.com/tuneinsight/hypgeom/utils"
	"github.com/tuneinsight/hypgeom/utils/bignum"
)

// maxTermsCap bounds the number of terms independently of the precision.
const maxTermsCap = math.MaxInt / 2

// MaxTerms returns the default bound min(MaxInt/2, 50 + 10*prec) on the
// number of terms chosen by ChooseN.
func MaxTerms(prec uint) int {
	return clampToInt(50 + 10*float64(prec))
}

// ChooseN returns a number of terms n >= 1 such that summing the first n
// terms of sum_k prod (a_i)_k / prod (b_j)_k z^k is expected to give prec
// bits of accuracy. The estimate uses float64 arithmetic on the midpoints
// and is not rigorous: the tail bound certifies the result afterwards.
func ChooseN(a, b []*ball.Complex, z *ball.Complex, prec uint) int {
	return ChooseNMax(a, b, z, prec, MaxTerms(prec))
}

// ChooseNMax is ChooseN with an explicit bound nMax on the number of terms.
func ChooseNMax(a, b []*ball.Complex, z *ball.Complex, prec uint, nMax int) int {

	if z.IsZero() || !z.IsFinite() {
		return 1
	}

	e := newEstimator(len(a), len(b), z.MagUpper().Log2(), 1, nMax)

	for i := range a {
		e.addUpper(a[i], true)
	}

	for j := range b {
		e.addLower(b[j])
	}

	return e.choose(prec)
}

// SeriesChooseN is ChooseN for power series parameters truncated to length
// coefficients. Only the constant coefficients are used, at least length
// terms are chosen, and an upper parameter only makes the series terminate
// when it is constant.
func SeriesChooseN(a, b []*poly.Poly, z *poly.Poly, length int, prec uint) int {

	if z.IsZero() || !z.IsFinite() {
		return 1
	}

	nMin := utils.Max(1, length)
	nMax := utils.Max(MaxTerms(prec), nMin)

	e := newEstimator(len(a), len(b), constCoeff(z).MagUpper().Log2(), nMin, nMax)

	for i := range a {
		e.addUpper(constCoeff(a[i]), a[i].IsConstant())
	}

	for j := range b {
		e.addLower(constCoeff(b[j]))
	}

	return e.choose(prec)
}

func constCoeff(p *poly.Poly) *ball.Complex {
	if c := p.Coeff(0); c != nil {
		return c
	}
	return ball.NewComplex(p.Prec())
}

// estimator holds the float64 approximations of the parameters and the
// constraints on the number of terms.
type estimator struct {
	are, aim []float64
	bre, bim []float64
	log2z    float64

	nSkip        int
	nMin         int
	nMax         int
	nTerminating int
}

func newEstimator(p, q int, log2z float64, nMin, nMax int) *estimator {
	return &estimator{
		are:          make([]float64, 0, p),
		aim:          make([]float64, 0, p),
		bre:          make([]float64, 0, q),
		bim:          make([]float64, 0, q),
		log2z:        log2z,
		nSkip:        1,
		nMin:         nMin,
		nMax:         nMax,
		nTerminating: maxTermsCap,
	}
}

func midFloat64(c *ball.Complex) (re, im float64) {
	return bignum.Float64(c.Real().Mid()), bignum.Float64(c.Imag().Mid())
}

func clampToInt(f float64) int {
	if math.IsNaN(f) || f >= maxTermsCap {
		return maxTermsCap
	}
	if f <= -maxTermsCap {
		return -maxTermsCap
	}
	return int(f)
}

// skipNearPole fast forwards past a parameter too close to an integer <= 0
// to be handled in float64.
func (e *estimator) skipNearPole(re, im float64) {
	if re <= 0.01 && math.Abs(im) < 0.01 {
		nint := math.Floor(re + 0.5)
		if math.Abs(nint-re) < 0.01 {
			e.nSkip = utils.Max(e.nSkip, clampToInt(2-nint))
		}
	}
}

func (e *estimator) addUpper(c *ball.Complex, canTerminate bool) {

	re, im := midFloat64(c)
	e.are = append(e.are, re)
	e.aim = append(e.aim, im)

	if canTerminate && c.IsInt() && re <= 0 {
		e.nTerminating = utils.Min(e.nTerminating, clampToInt(1-re))
		e.nTerminating = utils.Max(e.nTerminating, 1)
	} else {
		e.skipNearPole(re, im)
	}
}

func (e *estimator) addLower(c *ball.Complex) {

	re, im := midFloat64(c)
	e.bre = append(e.bre, re)
	e.bim = append(e.bim, im)

	if re <= 0.25 {
		e.nMin = utils.Max(e.nMin, clampToInt(2-re))
		e.skipNearPole(re, im)
	}
}

func (e *estimator) choose(prec uint) int {

	nMax := utils.Min(e.nMax, e.nTerminating)

	n, ok := e.search(nMax, prec)

	if !ok {
		if e.nTerminating <= nMax {
			return e.nTerminating
		}
		n = utils.Clamp(n, e.nMin, nMax)
	}

	return n
}

// search walks n from nSkip to nMax, accumulating the estimated log2 of the
// magnitude of the n-th term, and returns the n giving the best accuracy
// relative to the largest term, or the first one beyond prec + 4 bits.
func (e *estimator) search(nMax int, prec uint) (nBest int, success bool) {

	requiredDecrease := 0.01
	if len(e.are) == len(e.bre) {
		requiredDecrease = 0.0001
	}

	var term, termMax, accuracyBest float64

	p, q := len(e.are), len(e.bre)

	nBest = e.nSkip

	for n := e.nSkip; n < nMax; n++ {

		t := 1.0
		nf := float64(n - 1)

		for k := 0; k < utils.Max(p, q); k++ {

			if k < p {
				u := (e.are[k]+nf)*(e.are[k]+nf) + e.aim[k]*e.aim[k]
				t *= math.Abs(u)
			}

			if k < q {
				u := math.Abs((e.bre[k]+nf)*(e.bre[k]+nf) + e.bim[k]*e.bim[k])
				if u > 1e-100 {
					t /= u
				}
			}
		}

		increase := 0.5*math.Log2(t) + e.log2z

		// overflow of the float64 estimate
		if math.IsNaN(increase) || math.IsInf(increase, 1) {
			break
		}

		term += increase
		termMax = math.Max(termMax, term)
		accuracy := termMax - term

		if accuracy > accuracyBest && n >= e.nMin && increase < -requiredDecrease {
			nBest = n
			accuracyBest = accuracy
		}

		if accuracyBest > float64(prec)+4 {
			return nBest, true
		}
	}

	return nBest, false
}

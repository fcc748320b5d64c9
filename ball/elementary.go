package ball

import (
	"math/big"

	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/utils/bignum"
)

// GuardBits is the number of extra bits used to approximate the
// midpoint of elementary functions.
const GuardBits = 32

// maxExpArg bounds |x| in Exp; beyond it the result is indeterminate.
const maxExpArg = 1 << 28

// evalError returns a bound on the error of an approximation y with wp
// bits of relative accuracy: 2^(exp(y) - wp + 4), or 2^(-wp + 4) if y = 0.
func evalError(y *big.Float, wp uint) *mag.Mag {
	if y.Sign() == 0 || y.IsInf() {
		return mag.New().SetMantExp(1, 4-int(wp))
	}
	return mag.New().SetMantExp(1, y.MantExp(nil)+4-int(wp))
}

// evalErrorAbs is evalError plus 2^(-wp + 4), for approximations that are
// only accurate in absolute terms after argument reduction.
func evalErrorAbs(y *big.Float, wp uint) *mag.Mag {
	e := evalError(y, wp)
	if y.Sign() != 0 && !y.IsInf() {
		e.Add(e, mag.New().SetMantExp(1, 4-int(wp)))
	}
	return e
}

func (z *Ball) resultPrec(x *Ball) uint {
	if p := z.Prec(); p != 0 {
		return p
	}
	return x.Prec()
}

// NewPi returns a ball containing Pi.
func NewPi(prec uint) *Ball {
	return New(prec).SetMidRad(bignum.Pi(prec+GuardBits), mag.New().SetMantExp(1, 3-int(prec+GuardBits)))
}

// NewLog2 returns a ball containing ln(2).
func NewLog2(prec uint) *Ball {
	return New(prec).SetMidRad(bignum.Log2(prec+GuardBits), mag.New().SetMantExp(1, 1-int(prec+GuardBits)))
}

// Exp sets z to exp(x) and returns z.
func (z *Ball) Exp(x *Ball) *Ball {

	prec := z.resultPrec(x)

	if !x.IsFinite() {
		return z.SetIndeterminate()
	}

	if x.mid.MantExp(nil) > 28 && new(big.Float).Abs(&x.mid).Cmp(big.NewFloat(maxExpArg)) > 0 {
		return z.SetIndeterminate()
	}

	wp := prec + GuardBits
	if e := x.mid.MantExp(nil); e > 0 {
		wp += uint(e)
	}
	y := bignum.Exp(new(big.Float).SetPrec(wp).Set(&x.mid))

	// the log of the result is accurate to 2^(e - wp), hence y to prec + GuardBits bits
	// exp(m + d) - exp(m) <= exp(m) expm1(r)
	err := evalError(y, prec+GuardBits)
	prop := mag.New().SetAbsUpper(y)
	prop.Add(prop, err)
	prop.Mul(prop, mag.New().Expm1(&x.rad))
	err.Add(err, prop)

	return z.SetMidRad(y, err)
}

// Log sets z to ln(x) and returns z.
// If x is not positive, z is set to the indeterminate ball.
func (z *Ball) Log(x *Ball) *Ball {

	prec := z.resultPrec(x)

	if !x.IsPositive() {
		return z.SetIndeterminate()
	}

	wp := prec + GuardBits
	y := bignum.Log(new(big.Float).SetPrec(wp).Set(&x.mid))

	// the reciprocal taken for m < 1 costs 2^(-wp - 64) in absolute terms
	// |log(m + d) - log(m)| <= r / (m - r)
	err := evalError(y, wp)
	err.Add(err, mag.New().SetMantExp(1, -60-int(wp)))
	if !x.rad.IsZero() {
		den := mag.New().SetAbsLower(&x.mid)
		den.SubLower(den, &x.rad)
		err.Add(err, mag.New().Div(&x.rad, den))
	}

	return z.SetMidRad(y, err)
}

// Sqrt sets z to sqrt(x) and returns z.
// If x may be negative, z is set to the indeterminate ball.
func (z *Ball) Sqrt(x *Ball) *Ball {

	prec := z.resultPrec(x)

	if x.IsZero() {
		return z.SetZero()
	}

	if !x.IsPositive() {
		return z.SetIndeterminate()
	}

	wp := prec + GuardBits
	y := new(big.Float).SetPrec(wp).Sqrt(&x.mid)

	// |sqrt(m + d) - sqrt(m)| <= r / (sqrt(m - r) + sqrt(m))
	err := evalError(y, wp)
	if !x.rad.IsZero() {
		lo := mag.New().SetAbsLower(&x.mid)
		lo.SubLower(lo, &x.rad)
		den := mag.New().SqrtLower(lo)
		den.AddLower(den, mag.New().SqrtLower(mag.New().SetAbsLower(&x.mid)))
		err.Add(err, mag.New().Div(&x.rad, den))
	}

	return z.SetMidRad(y, err)
}

// Atan sets z to atan(x) and returns z.
func (z *Ball) Atan(x *Ball) *Ball {

	prec := z.resultPrec(x)

	if !x.IsFinite() {
		return z.SetIndeterminate()
	}

	wp := prec + GuardBits
	y := bignum.Atan(new(big.Float).SetPrec(wp).Set(&x.mid))

	// |atan'| <= 1
	err := evalErrorAbs(y, wp)
	err.Add(err, &x.rad)

	return z.SetMidRad(y, err)
}

// SinCos sets s to sin(x) and c to cos(x).
func SinCos(s, c, x *Ball) {

	prec := s.resultPrec(x)

	if !x.IsFinite() {
		s.SetIndeterminate()
		c.SetIndeterminate()
		return
	}

	wp := prec + GuardBits
	sin, cos := bignum.SinCos(new(big.Float).SetPrec(wp).Set(&x.mid))

	// |sin'|, |cos'| <= 1
	rad := x.rad.Clone()

	es := evalErrorAbs(sin, wp)
	es.Add(es, rad)
	ec := evalErrorAbs(cos, wp)
	ec.Add(ec, rad)

	s.SetMidRad(sin, es)
	c.SetMidRad(cos, ec)
}

package ball

import (
	"math/big"

	"github.com/tuneinsight/hypgeom/mag"
)

// Neg sets z to -x and returns z.
func (z *Ball) Neg(x *Ball) *Ball {
	z.Set(x)
	z.mid.Neg(&z.mid)
	return z
}

// Abs sets z to a ball containing |x| for x in x and returns z.
func (z *Ball) Abs(x *Ball) *Ball {
	z.Set(x)
	z.mid.Abs(&z.mid)
	return z
}

// Add sets z to x + y and returns z.
func (z *Ball) Add(x, y *Ball) *Ball {
	rad := mag.New().Add(&x.rad, &y.rad)
	acc := z.mid.Add(&x.mid, &y.mid).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// Sub sets z to x - y and returns z.
func (z *Ball) Sub(x, y *Ball) *Ball {
	rad := mag.New().Add(&x.rad, &y.rad)
	acc := z.mid.Sub(&x.mid, &y.mid).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// AddInt64 sets z to x + c and returns z.
func (z *Ball) AddInt64(x *Ball, c int64) *Ball {
	rad := x.rad.Clone()
	acc := z.mid.Add(&x.mid, new(big.Float).SetInt64(c)).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// Mul sets z to x * y and returns z.
func (z *Ball) Mul(x, y *Ball) *Ball {

	// |xm| ry + |ym| rx + rx ry
	xm := mag.New().SetAbsUpper(&x.mid)
	ym := mag.New().SetAbsUpper(&y.mid)
	rad := mag.New().Mul(xm, &y.rad)
	rad.Add(rad, mag.New().Mul(ym, &x.rad))
	rad.Add(rad, mag.New().Mul(&x.rad, &y.rad))

	acc := z.mid.Mul(&x.mid, &y.mid).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// MulInt64 sets z to x * c and returns z.
func (z *Ball) MulInt64(x *Ball, c int64) *Ball {
	rad := mag.New().Mul(&x.rad, mag.FromInt64(c))
	acc := z.mid.Mul(&x.mid, new(big.Float).SetInt64(c)).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// Mul2Exp sets z to x * 2^e and returns z.
func (z *Ball) Mul2Exp(x *Ball, e int) *Ball {
	rad := mag.New().Mul2Exp(&x.rad, e)
	acc := big.Exact
	if x.mid.Sign() != 0 {
		acc = z.mid.SetMantExp(&x.mid, e).Acc()
	} else {
		z.mid.SetInt64(0)
	}
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// Div sets z to x / y and returns z.
// If y contains zero, z is set to the indeterminate ball.
func (z *Ball) Div(x, y *Ball) *Ball {

	if y.ContainsZero() {
		return z.SetIndeterminate()
	}

	// (|xm| ry + |ym| rx) / (|ym| (|ym| - ry))
	var rad *mag.Mag
	if x.rad.IsZero() && y.rad.IsZero() {
		rad = mag.New()
	} else {
		xm := mag.New().SetAbsUpper(&x.mid)
		ym := mag.New().SetAbsUpper(&y.mid)
		num := mag.New().Mul(xm, &y.rad)
		num.Add(num, mag.New().Mul(ym, &x.rad))

		ymLow := mag.New().SetAbsLower(&y.mid)
		den := mag.New().SubLower(ymLow, &y.rad)
		den.MulLower(den, ymLow)
		rad = mag.New().Div(num, den)
	}

	acc := z.mid.Quo(&x.mid, &y.mid).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// DivInt64 sets z to x / c and returns z.
func (z *Ball) DivInt64(x *Ball, c int64) *Ball {
	if c == 0 {
		return z.SetIndeterminate()
	}
	rad := mag.New().Div(&x.rad, mag.FromInt64(c))
	rad.Mul(rad, mag.FromFloat64(1+0x1p-28))
	acc := z.mid.Quo(&x.mid, new(big.Float).SetInt64(c)).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// Inv sets z to 1/x and returns z.
func (z *Ball) Inv(x *Ball) *Ball {
	one := New(x.Prec()).SetInt64(1)
	return z.Div(one, x)
}

// Sqr sets z to x^2 and returns z.
func (z *Ball) Sqr(x *Ball) *Ball {
	return z.Mul(x, x)
}

// PowUint64 sets z to x^e and returns z.
func (z *Ball) PowUint64(x *Ball, e uint64) *Ball {

	prec := z.Prec()
	if prec == 0 {
		prec = x.Prec()
	}

	base := New(prec).Set(x)
	acc := New(prec).SetInt64(1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			acc.Mul(acc, base)
		}
		if e > 1 {
			base.Mul(base, base)
		}
	}

	return z.Set(acc)
}

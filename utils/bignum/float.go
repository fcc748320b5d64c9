// Package bignum implements arbitrary precision helpers on top of math/big
// and github.com/ALTree/bigfloat. The functions of this package compute
// approximations only: the enclosures are tracked by the ball package.
package bignum

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
)

const pi = "3.1415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679821480865132823066470938446095505822317253594081284811174502841027019385211055596446229489549303819644288109756659334461284756482337867831652712019091456485669234603486104543266482133936072602491412737245870066063155881748815209209628292540917153643678925903600113305305488204665213841469519415116094330572703657595919530921861173819326117931051185480744623799627495673518857527248912279381830119491298336733624406566430860213949463952247371907021798609437027705392171762931767523846748184676694051320005681271452635608277857713427577896091736371787214684409012249534301465495853710507922796892589235420199561121290219608640344181598136297747713099605187072113499999983729780499510597317328160963185950244594553469083026425223082533446850352619311881710100031378387528865875332083814206171776691473035982534904287554687311595628638823537875937519577818577805321712268066130019278766111959092164201989"
const log2 = "0.693147180559945309417232121458176568075500134360255254120680009493393621969694715605863326996418687542001481020570685733685520235758130557032670751635075961930727570828371435190307038623891673471123350115364497955239120475172681574932065155524734139525882950453007095326366642654104239157814952043740430385500801944170641671518644712839968171784546957026271631064546150257207402481637773389638550695260668341137273873722928956493547025762652098859693201965058554764703306793654432547632744951250406069438147104689946506220167720424524529612687946546193165174681392672504103802546259656869144192871608293803172714367782654877566485085674077648451464439940461422603193096735402574446070308096085047486638523138181676751438667476647890881437141985494231519973548803751658612753529166100071053558249879414729509293113897155998205654392871700072180857610252368892132449713893203784393530887748259701715591070882368362758984258918535302436342143670611892367891923723146723217205340164925687274778234453534764811494186423867767744060695626573796008670762571991847340226514628379048830620330611446300737194890027436439650025809365194430411911506080948793067865158870900605203468429736193841289652556539686022194122924207574321757489097706753"

// constantsPrec is the number of bits carried by the decimal
// strings above, with a safety margin.
const constantsPrec = 3200

// Pi returns Pi with prec bits of precision.
func Pi(prec uint) *big.Float {
	if prec <= constantsPrec {
		pi, _ := new(big.Float).SetPrec(prec).SetString(pi)
		return pi
	}

	// Machin: pi = 16 atan(1/5) - 4 atan(1/239)
	wp := prec + 64
	a := atanInv(5, wp)
	a.Mul(a, NewFloat(16, wp))
	b := atanInv(239, wp)
	b.Mul(b, NewFloat(4, wp))
	return new(big.Float).SetPrec(prec).Sub(a, b)
}

// Log2 returns ln(2) with prec bits of precision.
func Log2(prec uint) *big.Float {
	if prec <= constantsPrec {
		log2, _ := new(big.Float).SetPrec(prec).SetString(log2)
		return log2
	}
	return bigfloat.Log(NewFloat(2, prec+64)).SetPrec(prec)
}

// atanInv returns atan(1/n) for an integer n > 1.
func atanInv(n int64, prec uint) *big.Float {

	sum := new(big.Float).SetPrec(prec)
	pow := NewFloat(1, prec)
	pow.Quo(pow, NewFloat(n, prec))
	n2 := NewFloat(n*n, prec)
	tmp := new(big.Float).SetPrec(prec)

	for k := int64(0); ; k++ {
		tmp.Quo(pow, NewFloat(2*k+1, prec))
		if k&1 == 0 {
			sum.Add(sum, tmp)
		} else {
			sum.Sub(sum, tmp)
		}

		if tmp.Sign() == 0 || tmp.MantExp(nil) < -int(prec)-2 {
			break
		}

		pow.Quo(pow, n2)
	}

	return sum
}

// NewFloat creates a new big.Float element with "prec" bits of precision.
// Valide types for x are: int, int64, uint, uint64, float64, *big.Int, *big.Rat or *big.Float.
func NewFloat(x interface{}, prec uint) (y *big.Float) {

	y = new(big.Float)
	y.SetPrec(prec)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case int:
		y.SetInt64(int64(x))
	case int64:
		y.SetInt64(x)
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case float64:
		y.SetFloat64(x)
	case *big.Int:
		y.SetInt(x)
	case *big.Rat:
		y.SetRat(x)
	case *big.Float:
		y.Set(x)
	default:
		panic(fmt.Errorf("invalid x.(type): valide types are int, int64, uint, uint64, float64, *big.Int, *big.Rat or *big.Float but is %T", x))
	}

	return
}

// Round returns round(x), ties away from zero.
func Round(x *big.Float) (r *big.Float) {
	r = new(big.Float).Set(x)
	if r.Sign() >= 0 {
		r.Add(r, new(big.Float).SetFloat64(0.5))
	} else {
		r.Sub(r, new(big.Float).SetFloat64(0.5))
	}

	tmp := new(big.Int)
	r.Int(tmp)
	r.SetInt(tmp)
	return
}

// Float64 returns the closest float64 of x, with overflows clamped to
// +/- 1e300 and underflows to +/- 1e-300 so that logarithms stay finite.
func Float64(x *big.Float) float64 {

	if x.Sign() == 0 {
		return 0
	}

	if x.IsInf() {
		if x.Sign() > 0 {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}

	f, _ := x.Float64()

	switch {
	case math.IsInf(f, 1):
		return 1e300
	case math.IsInf(f, -1):
		return -1e300
	case f == 0 && x.Sign() > 0:
		return 1e-300
	case f == 0:
		return -1e-300
	}

	return f
}

// Log2Abs returns an approximation of log2|x| valid for any
// finite exponent. Returns -Inf for x = 0.
func Log2Abs(x *big.Float) float64 {
	if x.Sign() == 0 {
		return math.Inf(-1)
	}
	if x.IsInf() {
		return math.Inf(1)
	}
	mant := new(big.Float)
	exp := x.MantExp(mant)
	m, _ := mant.Float64()
	return math.Log2(math.Abs(m)) + float64(exp)
}

// Log return ln(x) with x.Prec() bits.
func Log(x *big.Float) (ln *big.Float) {
	return bigfloat.Log(x)
}

// Exp returns exp(x) with x.Prec() bits.
func Exp(x *big.Float) (exp *big.Float) {
	return bigfloat.Exp(x)
}

// Pow returns x^y
func Pow(x, y *big.Float) (pow *big.Float) {
	return bigfloat.Pow(x, y)
}

// Atan returns atan(x) with x.Prec() bits.
func Atan(x *big.Float) (y *big.Float) {

	prec := x.Prec()

	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec)
	}

	if x.IsInf() {
		y = Pi(prec)
		y.Quo(y, NewFloat(2, prec))
		if x.Sign() < 0 {
			y.Neg(y)
		}
		return
	}

	const halvings = 8
	wp := prec + 2*halvings + 32

	z := new(big.Float).SetPrec(wp).Set(x)
	invert := z.MantExp(nil) > 0
	if invert {
		z.Quo(NewFloat(1, wp), z)
	}

	// atan(z) = 2 atan(z / (1 + sqrt(1 + z^2)))
	one := NewFloat(1, wp)
	tmp := new(big.Float).SetPrec(wp)
	for i := 0; i < halvings; i++ {
		tmp.Mul(z, z)
		tmp.Add(tmp, one)
		tmp.Sqrt(tmp)
		tmp.Add(tmp, one)
		z.Quo(z, tmp)
	}

	// Taylor series z - z^3/3 + z^5/5 - ...
	z2 := new(big.Float).SetPrec(wp).Mul(z, z)
	pow := new(big.Float).SetPrec(wp).Set(z)
	sum := new(big.Float).SetPrec(wp).Set(z)
	for k := int64(1); ; k++ {
		pow.Mul(pow, z2)
		tmp.Quo(pow, NewFloat(2*k+1, wp))
		if tmp.Sign() == 0 || tmp.MantExp(nil) < sum.MantExp(nil)-int(wp)-2 {
			break
		}
		if k&1 == 1 {
			sum.Sub(sum, tmp)
		} else {
			sum.Add(sum, tmp)
		}
	}

	sum.SetMantExp(sum, halvings)

	if invert {
		halfPi := Pi(wp)
		halfPi.Quo(halfPi, NewFloat(2, wp))
		if x.Sign() < 0 {
			halfPi.Neg(halfPi)
		}
		sum.Sub(halfPi, sum)
	}

	return sum.SetPrec(prec)
}

// SinCos returns sin(x) and cos(x) with x.Prec() bits.
func SinCos(x *big.Float) (sin, cos *big.Float) {

	prec := x.Prec()

	if x.Sign() == 0 {
		return new(big.Float).SetPrec(prec), NewFloat(1, prec)
	}

	const halvings = 10

	// reduction modulo 2pi, with extra bits for the integer part of x/2pi
	wp := prec + 2*halvings + 32
	if e := x.MantExp(nil); e > 0 {
		wp += uint(e)
	}

	twoPi := Pi(wp)
	twoPi.SetMantExp(twoPi, 1)

	y := new(big.Float).SetPrec(wp).Set(x)
	k := Round(new(big.Float).SetPrec(wp).Quo(y, twoPi))
	y.Sub(y, k.Mul(k, twoPi))
	y.SetMantExp(y, -halvings)

	// Taylor series of sin and cos at y
	y2 := new(big.Float).SetPrec(wp).Mul(y, y)
	s := new(big.Float).SetPrec(wp).Set(y)
	c := NewFloat(1, wp)
	term := new(big.Float).SetPrec(wp).Set(y)
	for k := int64(1); ; k++ {
		term.Mul(term, y2)
		term.Quo(term, NewFloat((2*k)*(2*k+1), wp))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp)-2 {
			break
		}
		if k&1 == 1 {
			s.Sub(s, term)
		} else {
			s.Add(s, term)
		}
	}

	term.SetInt64(1)
	for k := int64(1); ; k++ {
		term.Mul(term, y2)
		term.Quo(term, NewFloat((2*k-1)*(2*k), wp))
		if term.Sign() == 0 || term.MantExp(nil) < -int(wp)-2 {
			break
		}
		if k&1 == 1 {
			c.Sub(c, term)
		} else {
			c.Add(c, term)
		}
	}

	// doubling: sin 2t = 2 sin t cos t, cos 2t = cos^2 t - sin^2 t
	tmp := new(big.Float).SetPrec(wp)
	for i := 0; i < halvings; i++ {
		tmp.Mul(s, c)
		c.Mul(c, c)
		s.Mul(s, s)
		c.Sub(c, s)
		s.SetMantExp(tmp, 1)
	}

	return s.SetPrec(prec), c.SetPrec(prec)
}

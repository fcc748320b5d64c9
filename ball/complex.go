package ball

import (
	"fmt"
	"math/big"

	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/utils"
)

// Complex is a complex ball: a pair of real balls for the real and
// imaginary parts.
type Complex [2]*Ball

// NewComplex creates a new exact complex zero with prec bits of precision.
func NewComplex(prec uint) (c *Complex) {
	return &Complex{New(prec), New(prec)}
}

// NewComplexIndeterminate returns a complex ball with both parts indeterminate.
func NewComplexIndeterminate(prec uint) (c *Complex) {
	return NewComplex(prec).SetIndeterminate()
}

// ToComplex takes a complex128, float64, int, int64, *big.Int, *big.Rat, *big.Float, *Ball or *Complex
// and returns a *Complex with prec bits of precision containing it.
func ToComplex(value interface{}, prec uint) (c *Complex) {

	c = NewComplex(prec)

	switch value := value.(type) {
	case complex128:
		c[0].SetFloat64(real(value))
		c[1].SetFloat64(imag(value))
	case float64:
		c[0].SetFloat64(value)
	case int:
		c[0].SetInt64(int64(value))
	case int64:
		c[0].SetInt64(value)
	case *big.Int:
		c[0].SetRat(new(big.Rat).SetInt(value))
	case *big.Rat:
		c[0].SetRat(value)
	case *big.Float:
		c[0].SetBigFloat(value)
	case *Ball:
		c[0].Set(value)
	case *Complex:
		c.Set(value)
	default:
		panic(fmt.Errorf("invalid value.(type): must be int, int64, float64, complex128, *big.Int, *big.Rat, *big.Float, *Ball or *Complex but is %T", value))
	}

	return
}

// NewComplexFromString parses the real and imaginary parts with NewFromString.
// An empty imaginary part is zero.
func NewComplexFromString(re, im string, prec uint) (c *Complex, err error) {

	c = NewComplex(prec)

	if c[0], err = NewFromString(re, prec); err != nil {
		return nil, fmt.Errorf("cannot NewComplexFromString: real part: %w", err)
	}

	if im != "" {
		if c[1], err = NewFromString(im, prec); err != nil {
			return nil, fmt.Errorf("cannot NewComplexFromString: imaginary part: %w", err)
		}
	}

	return
}

// Real returns the real part.
func (c *Complex) Real() *Ball {
	return c[0]
}

// Imag returns the imaginary part.
func (c *Complex) Imag() *Ball {
	return c[1]
}

// Prec returns the precision of c.
func (c *Complex) Prec() uint {
	return utils.Max(c[0].Prec(), c[1].Prec())
}

// SetPrec sets the precision of both parts of c.
func (c *Complex) SetPrec(prec uint) *Complex {
	c[0].SetPrec(prec)
	c[1].SetPrec(prec)
	return c
}

// Clone returns a deep copy of c.
func (c *Complex) Clone() *Complex {
	return &Complex{c[0].Clone(), c[1].Clone()}
}

// Set sets c to a and returns c.
func (c *Complex) Set(a *Complex) *Complex {
	c[0].Set(a[0])
	c[1].Set(a[1])
	return c
}

// SetZero sets c to the exact zero and returns c.
func (c *Complex) SetZero() *Complex {
	c[0].SetZero()
	c[1].SetZero()
	return c
}

// SetInt64 sets c to x and returns c.
func (c *Complex) SetInt64(x int64) *Complex {
	c[0].SetInt64(x)
	c[1].SetZero()
	return c
}

// SetBall sets c to the real ball x and returns c.
func (c *Complex) SetBall(x *Ball) *Complex {
	c[0].Set(x)
	c[1].SetZero()
	return c
}

// SetIndeterminate sets both parts of c to 0 +/- Inf.
func (c *Complex) SetIndeterminate() *Complex {
	c[0].SetIndeterminate()
	c[1].SetIndeterminate()
	return c
}

// IsReal returns true if the imaginary part is exactly zero.
func (c *Complex) IsReal() bool {
	return c[1].IsZero()
}

// IsZero returns true if c is the exact zero.
func (c *Complex) IsZero() bool {
	return c[0].IsZero() && c[1].IsZero()
}

// IsExact returns true if both radii are zero.
func (c *Complex) IsExact() bool {
	return c[0].IsExact() && c[1].IsExact()
}

// IsFinite returns true if both radii are finite.
func (c *Complex) IsFinite() bool {
	return c[0].IsFinite() && c[1].IsFinite()
}

// IsInt returns true if c is an exact integer.
func (c *Complex) IsInt() bool {
	return c.IsReal() && c[0].IsInt()
}

// IsNonPositiveInt returns true if c is an exact integer <= 0.
func (c *Complex) IsNonPositiveInt() bool {
	return c.IsReal() && c[0].IsNonPositiveInt()
}

// ContainsZero returns true if c may be zero.
func (c *Complex) ContainsZero() bool {
	return c[0].ContainsZero() && c[1].ContainsZero()
}

// ContainsInt returns true if c may be an integer.
func (c *Complex) ContainsInt() bool {
	return c[1].ContainsZero() && c[0].ContainsInt()
}

// ContainsNonPositiveInt returns true if c may be an integer <= 0.
func (c *Complex) ContainsNonPositiveInt() bool {
	return c[1].ContainsZero() && c[0].ContainsNonPositiveInt()
}

// MaxNonPositiveIntIndex returns the largest c >= 0, capped at limit, such
// that -c may be in x, and false if x contains no integer <= 0.
func (c *Complex) MaxNonPositiveIntIndex(limit int) (int, bool) {
	if !c[1].ContainsZero() {
		return 0, false
	}
	return c[0].MaxNonPositiveIntIndex(limit)
}

// Overlaps returns true if c and a may have a common point.
func (c *Complex) Overlaps(a *Complex) bool {
	return c[0].Overlaps(a[0]) && c[1].Overlaps(a[1])
}

// Contains returns true if a is contained in c.
func (c *Complex) Contains(a *Complex) bool {
	return c[0].Contains(a[0]) && c[1].Contains(a[1])
}

// Equal returns true if both parts of c and a have the same midpoint and radius.
func (c *Complex) Equal(a *Complex) bool {
	return c[0].Equal(a[0]) && c[1].Equal(a[1])
}

// Less is a total order on complex balls: by real part, then by imaginary part.
func (c *Complex) Less(a *Complex) bool {
	if !c[0].Equal(a[0]) {
		return c[0].Less(a[0])
	}
	return c[1].Less(a[1])
}

// Bits returns the maximum number of significant bits of the midpoints.
func (c *Complex) Bits() int {
	return utils.Max(c[0].Bits(), c[1].Bits())
}

// MagUpper returns an upper bound of |x| for x in c.
func (c *Complex) MagUpper() *mag.Mag {
	if c[1].IsZero() {
		return c[0].MagUpper()
	}
	if c[0].IsZero() {
		return c[1].MagUpper()
	}
	re := c[0].MagUpper()
	im := c[1].MagUpper()
	re.Mul(re, re)
	im.Mul(im, im)
	re.Add(re, im)
	return re.Sqrt(re)
}

// MagLower returns a lower bound of |x| for x in c.
func (c *Complex) MagLower() *mag.Mag {
	if c[1].IsZero() {
		return c[0].MagLower()
	}
	if c[0].IsZero() {
		return c[1].MagLower()
	}
	re := c[0].MagLower()
	im := c[1].MagLower()
	re.MulLower(re, re)
	im.MulLower(im, im)
	re.AddLower(re, im)
	return re.SqrtLower(re)
}

// Complex128 returns the midpoint of c as a complex128.
func (c *Complex) Complex128() complex128 {
	return complex(c[0].Float64(), c[1].Float64())
}

// AddError adds e to the radius of both parts of c.
func (c *Complex) AddError(e *mag.Mag) *Complex {
	c[0].AddError(e)
	c[1].AddError(e)
	return c
}

// AddErrorReal adds e to the radius of the real part of c.
func (c *Complex) AddErrorReal(e *mag.Mag) *Complex {
	c[0].AddError(e)
	return c
}

// Add sets c to a + b and returns c.
func (c *Complex) Add(a, b *Complex) *Complex {
	c[0].Add(a[0], b[0])
	c[1].Add(a[1], b[1])
	return c
}

// Sub sets c to a - b and returns c.
func (c *Complex) Sub(a, b *Complex) *Complex {
	c[0].Sub(a[0], b[0])
	c[1].Sub(a[1], b[1])
	return c
}

// Neg sets c to -a and returns c.
func (c *Complex) Neg(a *Complex) *Complex {
	c[0].Neg(a[0])
	c[1].Neg(a[1])
	return c
}

// AddInt64 sets c to a + x and returns c.
func (c *Complex) AddInt64(a *Complex, x int64) *Complex {
	c[0].AddInt64(a[0], x)
	c[1].Set(a[1])
	return c
}

// MulInt64 sets c to a * x and returns c.
func (c *Complex) MulInt64(a *Complex, x int64) *Complex {
	c[0].MulInt64(a[0], x)
	c[1].MulInt64(a[1], x)
	return c
}

// DivInt64 sets c to a / x and returns c.
func (c *Complex) DivInt64(a *Complex, x int64) *Complex {
	c[0].DivInt64(a[0], x)
	c[1].DivInt64(a[1], x)
	return c
}

// Mul2Exp sets c to a * 2^e and returns c.
func (c *Complex) Mul2Exp(a *Complex, e int) *Complex {
	c[0].Mul2Exp(a[0], e)
	c[1].Mul2Exp(a[1], e)
	return c
}

// MulBall sets c to a * x for a real ball x and returns c.
func (c *Complex) MulBall(a *Complex, x *Ball) *Complex {
	c[0].Mul(a[0], x)
	c[1].Mul(a[1], x)
	return c
}

// Mul sets c to a * b and returns c.
func (c *Complex) Mul(a, b *Complex) *Complex {
	NewMultiplier(c.Prec()).Mul(a, b, c)
	return c
}

// Sqr sets c to a^2 and returns c.
func (c *Complex) Sqr(a *Complex) *Complex {
	return c.Mul(a, a)
}

// Div sets c to a / b and returns c.
// If b may be zero, c is set to the indeterminate complex ball.
func (c *Complex) Div(a, b *Complex) *Complex {
	NewMultiplier(c.Prec()).Quo(a, b, c)
	return c
}

// Inv sets c to 1/a and returns c.
func (c *Complex) Inv(a *Complex) *Complex {
	one := NewComplex(a.Prec()).SetInt64(1)
	return c.Div(one, a)
}

// PowUint64 sets c to a^e and returns c.
func (c *Complex) PowUint64(a *Complex, e uint64) *Complex {

	if a.IsReal() {
		c[0].PowUint64(a[0], e)
		c[1].SetZero()
		return c
	}

	m := NewMultiplier(c.Prec())
	base := a.Clone()
	acc := NewComplex(c.Prec()).SetInt64(1)
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			m.Mul(acc, base, acc)
		}
		if e > 1 {
			m.Mul(base, base, base)
		}
	}

	return c.Set(acc)
}

// Multiplier is a struct for the multiplication or division of two complex balls.
// It holds the scratch space of the operations and takes the real operands
// shortcuts.
type Multiplier struct {
	tmp0 *Ball
	tmp1 *Ball
	tmp2 *Ball
	tmp3 *Ball
}

// NewMultiplier creates a new Multiplier whose intermediate values carry prec bits.
// If prec is zero, the precision of the operands is used.
func NewMultiplier(prec uint) (cEval *Multiplier) {
	cEval = new(Multiplier)
	cEval.tmp0 = New(prec)
	cEval.tmp1 = New(prec)
	cEval.tmp2 = New(prec)
	cEval.tmp3 = New(prec)
	return
}

// Mul evaluates c = a * b.
func (cEval *Multiplier) Mul(a, b, c *Complex) {

	if a.IsReal() {
		if b.IsReal() {
			c[0].Mul(a[0], b[0])
			c[1].SetZero()
		} else {
			cEval.tmp0.Set(a[0])
			c[1].Mul(cEval.tmp0, b[1])
			c[0].Mul(cEval.tmp0, b[0])
		}
	} else {
		if b.IsReal() {
			cEval.tmp0.Set(b[0])
			c[1].Mul(a[1], cEval.tmp0)
			c[0].Mul(a[0], cEval.tmp0)
		} else {
			cEval.tmp0.Mul(a[0], b[0])
			cEval.tmp1.Mul(a[1], b[1])
			cEval.tmp2.Mul(a[0], b[1])
			cEval.tmp3.Mul(a[1], b[0])

			c[0].Sub(cEval.tmp0, cEval.tmp1)
			c[1].Add(cEval.tmp2, cEval.tmp3)
		}
	}
}

// Quo evaluates c = a / b.
func (cEval *Multiplier) Quo(a, b, c *Complex) {

	if b.IsReal() {
		cEval.tmp0.Set(b[0])
		if a.IsReal() {
			c[0].Div(a[0], cEval.tmp0)
			c[1].SetZero()
		} else {
			c[1].Div(a[1], cEval.tmp0)
			c[0].Div(a[0], cEval.tmp0)
		}
		return
	}

	// tmp0 = a[0] b[0] + a[1] b[1] real part
	// tmp1 = a[1] b[0] - a[0] b[1] imaginary part
	// tmp2 = b[0]^2 + b[1]^2 denominator

	cEval.tmp0.Mul(a[0], b[0])
	cEval.tmp1.Mul(a[1], b[1])
	cEval.tmp2.Mul(a[1], b[0])
	cEval.tmp3.Mul(a[0], b[1])

	cEval.tmp0.Add(cEval.tmp0, cEval.tmp1)
	cEval.tmp1.Sub(cEval.tmp2, cEval.tmp3)

	cEval.tmp2.Mul(b[0], b[0])
	cEval.tmp3.Mul(b[1], b[1])
	cEval.tmp2.Add(cEval.tmp2, cEval.tmp3)

	if cEval.tmp2.ContainsZero() {
		c.SetIndeterminate()
		return
	}

	c[0].Div(cEval.tmp0, cEval.tmp2)
	c[1].Div(cEval.tmp1, cEval.tmp2)
}

// String returns the decimal representation of c.
func (c *Complex) String() string {
	if c.IsReal() {
		return c[0].String()
	}
	return fmt.Sprintf("(%s) + i*(%s)", c[0].String(), c[1].String())
}

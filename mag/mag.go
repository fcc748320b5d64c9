// Package mag implements Mag, a nonnegative real number with a short mantissa
// used to carry rigorous upper bounds on magnitudes and errors.
//
// Upper bound operations (Add, Mul, Div, ...) round toward +Inf and lower
// bound operations (AddLower, MulLower, ...) round toward zero, so that the
// result of a chain of operations of the same kind is guaranteed to bound
// the exact result from the corresponding side. +Inf is a regular value.
package mag

import (
	"fmt"
	"math"
	"math/big"

	"github.com/tuneinsight/hypgeom/utils/bignum"
)

// Prec is the number of mantissa bits of a Mag.
const Prec = 30

// Mag is a nonnegative number in [0, +Inf].
// The zero value is a valid Mag equal to zero.
// A Mag must not be copied by value.
type Mag struct {
	f big.Float
}

// New returns a new Mag equal to zero.
func New() *Mag {
	m := new(Mag)
	m.f.SetPrec(Prec).SetMode(big.ToPositiveInf)
	return m
}

// NewInf returns a new Mag equal to +Inf.
func NewInf() *Mag {
	return New().SetInf()
}

// FromFloat64 returns a new Mag upper bounding |x|.
// NaN is mapped to +Inf.
func FromFloat64(x float64) *Mag {
	m := New()
	if math.IsNaN(x) {
		return m.SetInf()
	}
	m.f.SetFloat64(math.Abs(x))
	return m
}

// FromFloat64Lower returns a new Mag lower bounding |x|.
func FromFloat64Lower(x float64) *Mag {
	m := New()
	if math.IsNaN(x) {
		return m
	}
	m.lower()
	m.f.SetFloat64(math.Abs(x))
	m.upper()
	return m
}

// FromInt64 returns a new Mag upper bounding |x|.
func FromInt64(x int64) *Mag {
	m := New()
	u := uint64(x)
	if x < 0 {
		u = -u
	}
	m.f.SetUint64(u)
	return m
}

func (m *Mag) init() {
	if m.f.Prec() == 0 {
		m.f.SetPrec(Prec)
	}
	m.f.SetMode(big.ToPositiveInf)
}

func (m *Mag) lower() {
	if m.f.Prec() == 0 {
		m.f.SetPrec(Prec)
	}
	m.f.SetMode(big.ToZero)
}

func (m *Mag) upper() {
	m.f.SetMode(big.ToPositiveInf)
}

// Clone returns a deep copy of m.
func (m *Mag) Clone() *Mag {
	return New().Set(m)
}

// Set sets m to x and returns m.
func (m *Mag) Set(x *Mag) *Mag {
	m.init()
	m.f.Set(&x.f)
	return m
}

// SetZero sets m to zero and returns m.
func (m *Mag) SetZero() *Mag {
	m.init()
	m.f.SetInt64(0)
	return m
}

// SetInf sets m to +Inf and returns m.
func (m *Mag) SetInf() *Mag {
	m.init()
	m.f.SetInf(false)
	return m
}

// SetAbsUpper sets m to an upper bound of |x| and returns m.
func (m *Mag) SetAbsUpper(x *big.Float) *Mag {
	m.init()
	m.f.Abs(x)
	return m
}

// SetAbsLower sets m to a lower bound of |x| and returns m.
func (m *Mag) SetAbsLower(x *big.Float) *Mag {
	m.lower()
	m.f.Abs(x)
	m.upper()
	return m
}

// SetMantExp sets m to an upper bound of |mant| * 2^exp and returns m.
func (m *Mag) SetMantExp(mant float64, exp int) *Mag {
	m.init()
	m.f.SetFloat64(math.Abs(mant))
	return m.Mul2Exp(m, exp)
}

// IsZero returns true if m is zero.
func (m *Mag) IsZero() bool {
	return m.f.Sign() == 0
}

// IsInf returns true if m is +Inf.
func (m *Mag) IsInf() bool {
	return m.f.IsInf()
}

// IsFinite returns true if m is not +Inf.
func (m *Mag) IsFinite() bool {
	return !m.f.IsInf()
}

// Cmp compares m and x and returns -1, 0 or +1.
func (m *Mag) Cmp(x *Mag) int {
	return m.f.Cmp(&x.f)
}

// CmpFloat64 compares m and x.
func (m *Mag) CmpFloat64(x float64) int {
	return m.f.Cmp(new(big.Float).SetFloat64(x))
}

// Float returns a copy of m as a *big.Float of precision Prec.
func (m *Mag) Float() *big.Float {
	return new(big.Float).SetPrec(Prec).Set(&m.f)
}

// Float64 returns an upper bound of m as a float64 (+Inf on overflow).
func (m *Mag) Float64() float64 {
	f, acc := m.f.Float64()
	if acc == big.Below {
		f = math.Nextafter(f, math.Inf(1))
	}
	return f
}

// Log2 returns an approximation of log2(m), -Inf for zero.
func (m *Mag) Log2() float64 {
	return bignum.Log2Abs(&m.f)
}

// Add sets m to an upper bound of x + y and returns m.
func (m *Mag) Add(x, y *Mag) *Mag {
	m.init()
	m.f.Add(&x.f, &y.f)
	return m
}

// AddLower sets m to a lower bound of x + y and returns m.
func (m *Mag) AddLower(x, y *Mag) *Mag {
	m.lower()
	m.f.Add(&x.f, &y.f)
	m.upper()
	return m
}

// SubLower sets m to a lower bound of max(x - y, 0) and returns m.
// If x is +Inf, the result is +Inf unless y is also +Inf, in which case it is zero.
func (m *Mag) SubLower(x, y *Mag) *Mag {
	switch {
	case y.IsInf():
		return m.SetZero()
	case x.IsInf():
		return m.SetInf()
	}
	m.lower()
	m.f.Sub(&x.f, &y.f)
	if m.f.Sign() < 0 {
		m.f.SetInt64(0)
	}
	m.upper()
	return m
}

// Mul sets m to an upper bound of x * y and returns m.
// A zero operand gives zero, even if the other operand is +Inf.
func (m *Mag) Mul(x, y *Mag) *Mag {
	if x.IsZero() || y.IsZero() {
		return m.SetZero()
	}
	m.init()
	m.f.Mul(&x.f, &y.f)
	return m
}

// MulLower sets m to a lower bound of x * y and returns m.
func (m *Mag) MulLower(x, y *Mag) *Mag {
	if x.IsZero() || y.IsZero() {
		return m.SetZero()
	}
	m.lower()
	m.f.Mul(&x.f, &y.f)
	m.upper()
	return m
}

// Div sets m to an upper bound of x / y and returns m.
// Division by zero and division of +Inf give +Inf.
func (m *Mag) Div(x, y *Mag) *Mag {
	switch {
	case y.IsZero() || x.IsInf():
		return m.SetInf()
	case x.IsZero() || y.IsInf():
		return m.SetZero()
	}
	m.init()
	m.f.Quo(&x.f, &y.f)
	return m
}

// DivLower sets m to a lower bound of x / y and returns m.
func (m *Mag) DivLower(x, y *Mag) *Mag {
	switch {
	case x.IsZero() || y.IsInf():
		return m.SetZero()
	case y.IsZero() || x.IsInf():
		return m.SetInf()
	}
	m.lower()
	m.f.Quo(&x.f, &y.f)
	m.upper()
	return m
}

// Inv sets m to an upper bound of 1/x and returns m.
func (m *Mag) Inv(x *Mag) *Mag {
	return m.Div(one(), x)
}

// InvLower sets m to a lower bound of 1/x and returns m.
func (m *Mag) InvLower(x *Mag) *Mag {
	return m.DivLower(one(), x)
}

// AddFloat64 sets m to an upper bound of x + |c| and returns m.
func (m *Mag) AddFloat64(x *Mag, c float64) *Mag {
	return m.Add(x, FromFloat64(c))
}

// MulFloat64 sets m to an upper bound of x * |c| and returns m.
func (m *Mag) MulFloat64(x *Mag, c float64) *Mag {
	return m.Mul(x, FromFloat64(c))
}

// Mul2Exp sets m to x * 2^e and returns m.
func (m *Mag) Mul2Exp(x *Mag, e int) *Mag {
	m.init()
	if x.IsZero() || x.IsInf() {
		return m.Set(x)
	}
	m.f.SetMantExp(&x.f, e)
	return m
}

// Pow sets m to an upper bound of x^e and returns m.
func (m *Mag) Pow(x *Mag, e uint64) *Mag {
	if e == 0 {
		return m.Set(one())
	}

	base := x.Clone()
	acc := New().Set(one())
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			acc.Mul(acc, base)
		}
		if e > 1 {
			base.Mul(base, base)
		}
	}

	return m.Set(acc)
}

// PowLower sets m to a lower bound of x^e and returns m.
func (m *Mag) PowLower(x *Mag, e uint64) *Mag {
	if e == 0 {
		return m.Set(one())
	}

	base := x.Clone()
	acc := New().Set(one())
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			acc.MulLower(acc, base)
		}
		if e > 1 {
			base.MulLower(base, base)
		}
	}

	return m.Set(acc)
}

// Sqrt sets m to an upper bound of sqrt(x) and returns m.
func (m *Mag) Sqrt(x *Mag) *Mag {
	if x.IsZero() || x.IsInf() {
		return m.Set(x)
	}
	s := new(big.Float).SetPrec(Prec + 8).Sqrt(&x.f)
	s.Mul(s, big.NewFloat(1+0x1p-26))
	m.init()
	m.f.Set(s)
	return m
}

// SqrtLower sets m to a lower bound of sqrt(x) and returns m.
func (m *Mag) SqrtLower(x *Mag) *Mag {
	if x.IsZero() || x.IsInf() {
		return m.Set(x)
	}
	s := new(big.Float).SetPrec(Prec + 8).Sqrt(&x.f)
	s.Mul(s, big.NewFloat(1-0x1p-26))
	m.lower()
	m.f.Set(s)
	m.upper()
	return m
}

// Max sets m to max(x, y) and returns m.
func (m *Mag) Max(x, y *Mag) *Mag {
	if x.Cmp(y) >= 0 {
		return m.Set(x)
	}
	return m.Set(y)
}

// Min sets m to min(x, y) and returns m.
func (m *Mag) Min(x, y *Mag) *Mag {
	if x.Cmp(y) <= 0 {
		return m.Set(x)
	}
	return m.Set(y)
}

// GeomSeries sets m to an upper bound of sum_{k>=0} x^k = 1/(1-x)
// and returns m. The result is +Inf if x >= 1.
func (m *Mag) GeomSeries(x *Mag) *Mag {
	if x.CmpFloat64(1) >= 0 {
		return m.SetInf()
	}
	d := New().SubLower(one(), x)
	return m.Div(one(), d)
}

// Expm1 sets m to an upper bound of exp(x) - 1 and returns m.
func (m *Mag) Expm1(x *Mag) *Mag {

	switch {
	case x.IsZero():
		return m.SetZero()
	case x.IsInf():
		return m.SetInf()
	case x.CmpFloat64(0x1p-10) <= 0:
		// exp(x) - 1 <= x (1 + x/2 e^x) <= 1.001 x
		return m.MulFloat64(x, 1.001)
	case x.CmpFloat64(700) > 0:
		return m.SetInf()
	}

	f := math.Expm1(x.Float64())
	return m.Set(FromFloat64(f*(1+1e-12) + 1e-300))
}

// Exp sets m to an upper bound of exp(x) and returns m.
func (m *Mag) Exp(x *Mag) *Mag {
	m.Expm1(x)
	return m.Add(m, one())
}

// String returns a decimal representation of m.
func (m *Mag) String() string {
	if m.IsInf() {
		return "+Inf"
	}
	return m.f.Text('g', 10)
}

// Format implements fmt.Formatter.
func (m *Mag) Format(s fmt.State, verb rune) {
	m.f.Format(s, verb)
}

func one() *Mag {
	m := New()
	m.f.SetInt64(1)
	return m
}

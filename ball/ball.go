// Package ball implements real and complex ball arithmetic: a value is
// represented by a midpoint and a radius, and every operation returns a ball
// guaranteed to contain all the exact results for inputs taken in the
// operand balls.
//
// Following math/big, the precision of a result is the precision of the
// receiver, or the maximum precision of the operands if the receiver has
// precision zero.
package ball

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/utils"
)

// Ball is a real interval [mid - rad, mid + rad].
// The midpoint is always finite; a ball with an infinite radius
// is indeterminate.
// A Ball must not be copied by value.
type Ball struct {
	mid big.Float
	rad mag.Mag
}

// New returns a new exact zero ball with prec bits of precision.
func New(prec uint) *Ball {
	b := new(Ball)
	b.mid.SetPrec(prec)
	b.rad.SetZero()
	return b
}

// NewFromFloat64 returns a ball with prec bits of precision containing x.
// A NaN or infinite x gives the indeterminate ball.
func NewFromFloat64(x float64, prec uint) *Ball {
	return New(prec).SetFloat64(x)
}

// NewFromInt64 returns a ball with prec bits of precision containing x.
func NewFromInt64(x int64, prec uint) *Ball {
	return New(prec).SetInt64(x)
}

// NewFromRat returns a ball with prec bits of precision containing x.
func NewFromRat(x *big.Rat, prec uint) *Ball {
	return New(prec).SetRat(x)
}

// NewFromBigFloat returns a ball with prec bits of precision containing x.
func NewFromBigFloat(x *big.Float, prec uint) *Ball {
	return New(prec).SetBigFloat(x)
}

// NewIndeterminate returns the indeterminate ball (0 +/- Inf).
func NewIndeterminate(prec uint) *Ball {
	return New(prec).SetIndeterminate()
}

// NewFromString parses s as a ball with prec bits of precision.
// Accepted forms are "x", "x +/- r" and "[x +/- r]", where x and r are
// decimal numbers. The decimal value of x is enclosed exactly.
func NewFromString(s string, prec uint) (b *Ball, err error) {

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "["), "]")

	midStr, radStr, hasRad := strings.Cut(s, "+/-")

	r, ok := new(big.Rat).SetString(strings.TrimSpace(midStr))
	if !ok {
		return nil, fmt.Errorf("cannot NewFromString: invalid midpoint %q", midStr)
	}

	b = NewFromRat(r, prec)

	if hasRad {
		rad, _, err := new(big.Float).SetPrec(mag.Prec).SetMode(big.ToPositiveInf).Parse(strings.TrimSpace(radStr), 10)
		if err != nil {
			return nil, fmt.Errorf("cannot NewFromString: invalid radius %q: %w", radStr, err)
		}
		b.AddError(mag.New().SetAbsUpper(rad))
	}

	return b, nil
}

// Mid returns the midpoint of b. The returned value must not be modified.
func (b *Ball) Mid() *big.Float {
	return &b.mid
}

// Rad returns the radius of b. The returned value must not be modified.
func (b *Ball) Rad() *mag.Mag {
	return &b.rad
}

// Prec returns the precision of b.
func (b *Ball) Prec() uint {
	return b.mid.Prec()
}

// SetPrec sets the precision of b and rounds the midpoint if needed.
func (b *Ball) SetPrec(prec uint) *Ball {
	acc := b.mid.SetPrec(prec).Acc()
	b.addRoundingError(acc)
	return b
}

// Clone returns a deep copy of b.
func (b *Ball) Clone() *Ball {
	return New(b.Prec()).Set(b)
}

// Set sets z to x, rounding the midpoint to the precision of z, and returns z.
func (z *Ball) Set(x *Ball) *Ball {
	if z == x {
		return z
	}
	rad := x.rad.Clone()
	acc := z.mid.Set(&x.mid).Acc()
	z.rad.Set(rad)
	z.addRoundingError(acc)
	return z
}

// SetMidRad sets z to mid +/- rad and returns z.
func (z *Ball) SetMidRad(mid *big.Float, rad *mag.Mag) *Ball {
	if mid.IsInf() {
		return z.SetIndeterminate()
	}
	r := rad.Clone()
	acc := z.mid.Set(mid).Acc()
	z.rad.Set(r)
	z.addRoundingError(acc)
	return z
}

// SetZero sets z to the exact zero and returns z.
func (z *Ball) SetZero() *Ball {
	z.mid.SetInt64(0)
	z.rad.SetZero()
	return z
}

// SetInt64 sets z to a ball containing x and returns z.
func (z *Ball) SetInt64(x int64) *Ball {
	acc := z.mid.SetInt64(x).Acc()
	z.rad.SetZero()
	z.addRoundingError(acc)
	return z
}

// SetFloat64 sets z to a ball containing x and returns z.
func (z *Ball) SetFloat64(x float64) *Ball {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return z.SetIndeterminate()
	}
	acc := z.mid.SetFloat64(x).Acc()
	z.rad.SetZero()
	z.addRoundingError(acc)
	return z
}

// SetRat sets z to a ball containing x and returns z.
func (z *Ball) SetRat(x *big.Rat) *Ball {
	acc := z.mid.SetRat(x).Acc()
	z.rad.SetZero()
	z.addRoundingError(acc)
	return z
}

// SetBigFloat sets z to a ball containing x and returns z.
func (z *Ball) SetBigFloat(x *big.Float) *Ball {
	return z.SetMidRad(x, mag.New())
}

// SetIndeterminate sets z to 0 +/- Inf and returns z.
func (z *Ball) SetIndeterminate() *Ball {
	z.mid.SetInt64(0)
	z.rad.SetInf()
	return z
}

// AddError adds e to the radius of z and returns z.
func (z *Ball) AddError(e *mag.Mag) *Ball {
	z.rad.Add(&z.rad, e)
	return z
}

// addRoundingError accounts for the rounding of the midpoint.
func (z *Ball) addRoundingError(acc big.Accuracy) {

	if acc == big.Exact {
		return
	}

	if z.mid.IsInf() {
		z.SetIndeterminate()
		return
	}

	prec := int(z.mid.Prec())

	if z.mid.Sign() == 0 {
		// underflow
		z.rad.Add(&z.rad, mag.New().SetMantExp(1, big.MinExp-prec))
		return
	}

	z.rad.Add(&z.rad, mag.New().SetMantExp(1, z.mid.MantExp(nil)-prec))
}

// IsZero returns true if z is the exact zero.
func (z *Ball) IsZero() bool {
	return z.mid.Sign() == 0 && z.rad.IsZero()
}

// IsExact returns true if the radius of z is zero.
func (z *Ball) IsExact() bool {
	return z.rad.IsZero()
}

// IsFinite returns true if the radius of z is finite.
func (z *Ball) IsFinite() bool {
	return z.rad.IsFinite() && !z.mid.IsInf()
}

// IsInt returns true if z is an exact integer.
func (z *Ball) IsInt() bool {
	return z.rad.IsZero() && z.mid.IsInt()
}

// IsNonPositiveInt returns true if z is an exact integer <= 0.
func (z *Ball) IsNonPositiveInt() bool {
	return z.IsInt() && z.mid.Sign() <= 0
}

// IsPositive returns true if all the points of z are > 0.
func (z *Ball) IsPositive() bool {
	return z.mid.Sign() > 0 && z.IsFinite() && absCmpRad(&z.mid, &z.rad) > 0
}

// IsNegative returns true if all the points of z are < 0.
func (z *Ball) IsNegative() bool {
	return z.mid.Sign() < 0 && z.IsFinite() && absCmpRad(&z.mid, &z.rad) > 0
}

// ContainsZero returns true if 0 is in z.
func (z *Ball) ContainsZero() bool {
	return !z.IsFinite() || absCmpRad(&z.mid, &z.rad) <= 0
}

// absCmpRad compares |x| and r exactly.
func absCmpRad(x *big.Float, r *mag.Mag) int {
	if r.IsInf() {
		return -1
	}
	return new(big.Float).Abs(x).Cmp(r.Float())
}

// Endpoints returns a lower bound of the left endpoint and an upper bound of
// the right endpoint of z, with prec bits.
func (z *Ball) Endpoints(prec uint) (lo, hi *big.Float) {

	if !z.IsFinite() {
		return new(big.Float).SetInf(true), new(big.Float).SetInf(false)
	}

	r := z.rad.Float()
	lo = new(big.Float).SetPrec(prec).SetMode(big.ToNegativeInf).Sub(&z.mid, r)
	hi = new(big.Float).SetPrec(prec).SetMode(big.ToPositiveInf).Add(&z.mid, r)
	return
}

// ContainsInt returns true if z may contain an integer.
func (z *Ball) ContainsInt() bool {

	if !z.IsFinite() {
		return true
	}

	lo, hi := z.Endpoints(utils.Max(z.Prec(), mag.Prec) + 64)

	return ceil(lo).Cmp(floorOrSelf(hi)) <= 0
}

// ContainsNonPositiveInt returns true if z may contain an integer <= 0.
func (z *Ball) ContainsNonPositiveInt() bool {

	if !z.IsFinite() {
		return true
	}

	lo, hi := z.Endpoints(utils.Max(z.Prec(), mag.Prec) + 64)

	c := ceil(lo)

	return c.Sign() <= 0 && c.Cmp(floorOrSelf(hi)) <= 0
}

// MaxNonPositiveIntIndex returns the largest c >= 0 such that -c may be in z,
// capped at limit, and false if z contains no integer <= 0.
func (z *Ball) MaxNonPositiveIntIndex(limit int) (c int, ok bool) {

	if !z.ContainsNonPositiveInt() {
		return 0, false
	}

	if !z.IsFinite() {
		return limit, true
	}

	lo, _ := z.Endpoints(utils.Max(z.Prec(), mag.Prec) + 64)

	f := ceil(lo)
	f.Neg(f)

	if !f.IsInt64() || f.Int64() > int64(limit) {
		return limit, true
	}

	return int(f.Int64()), true
}

func ceil(x *big.Float) *big.Int {
	i, acc := x.Int(nil)
	if acc == big.Below {
		i.Add(i, big.NewInt(1))
	}
	return i
}

func floorOrSelf(x *big.Float) *big.Int {
	i, acc := x.Int(nil)
	if acc == big.Above {
		i.Sub(i, big.NewInt(1))
	}
	return i
}

// MagUpper returns an upper bound of |x| for x in z.
func (z *Ball) MagUpper() *mag.Mag {
	m := mag.New().SetAbsUpper(&z.mid)
	return m.Add(m, &z.rad)
}

// MagLower returns a lower bound of |x| for x in z.
func (z *Ball) MagLower() *mag.Mag {
	m := mag.New().SetAbsLower(&z.mid)
	return m.SubLower(m, &z.rad)
}

// Bits returns the number of significant bits of the midpoint of z.
func (z *Ball) Bits() int {
	return int(z.mid.MinPrec())
}

// Float64 returns the float64 closest to the midpoint of z.
func (z *Ball) Float64() float64 {
	f, _ := z.mid.Float64()
	return f
}

// Overlaps returns true if z and x may have a common point.
func (z *Ball) Overlaps(x *Ball) bool {

	if !z.IsFinite() || !x.IsFinite() {
		return true
	}

	d := distLower(&z.mid, &x.mid)
	r := mag.New().Add(&z.rad, &x.rad)

	return d.Cmp(r) <= 0
}

// Contains returns true if x is contained in z.
func (z *Ball) Contains(x *Ball) bool {

	if !z.IsFinite() {
		return true
	}

	if !x.IsFinite() {
		return false
	}

	d := distUpper(&z.mid, &x.mid)
	d.Add(d, &x.rad)

	return d.Cmp(&z.rad) <= 0
}

func distLower(x, y *big.Float) *mag.Mag {
	prec := utils.Max(x.Prec(), y.Prec()) + 64
	d := new(big.Float).SetPrec(prec).SetMode(big.ToZero).Sub(x, y)
	return mag.New().SetAbsLower(d)
}

func distUpper(x, y *big.Float) *mag.Mag {
	prec := utils.Max(x.Prec(), y.Prec()) + 64
	d := new(big.Float).SetPrec(prec).SetMode(big.AwayFromZero).Sub(x, y)
	return mag.New().SetAbsUpper(d)
}

// Equal returns true if z and x have the same midpoint and radius.
func (z *Ball) Equal(x *Ball) bool {
	return z.mid.Cmp(&x.mid) == 0 && z.rad.Cmp(&x.rad) == 0
}

// Less is a total order on balls: by midpoint, then by radius.
func (z *Ball) Less(x *Ball) bool {
	if c := z.mid.Cmp(&x.mid); c != 0 {
		return c < 0
	}
	return z.rad.Cmp(&x.rad) < 0
}

// RelAccuracyBits returns an estimate of the number of correct bits
// of z relative to its magnitude.
func (z *Ball) RelAccuracyBits() int {

	if z.rad.IsZero() {
		return math.MaxInt32
	}

	if !z.IsFinite() || z.mid.Sign() == 0 {
		return -math.MaxInt32
	}

	return int(math.Floor(z.MagUpper().Log2() - z.rad.Log2()))
}

// String returns the decimal representation "mid +/- rad".
func (z *Ball) String() string {
	digits := int(float64(z.Prec())*0.30103) + 1
	return fmt.Sprintf("%s +/- %s", z.mid.Text('g', digits), z.rad.String())
}

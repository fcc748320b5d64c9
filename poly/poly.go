// Package poly implements truncated power series with complex ball coefficients.
//
// A Poly of length n represents a power series modulo x^n. Operations write
// their result on the receiver and truncate it to the receiver's length; the
// operands are padded with zeros when shorter.
package poly

import (
	"fmt"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/mag"
	"github.com/tuneinsight/hypgeom/utils"
)

// Poly is a truncated power series c_0 + c_1 x + ... + c_{n-1} x^{n-1}.
type Poly struct {
	Coeffs []*ball.Complex
	prec   uint
}

// New returns the zero series of the given length with coefficients of prec bits.
func New(length int, prec uint) *Poly {

	if length < 0 {
		panic(fmt.Errorf("invalid length: must be non-negative but is %d", length))
	}

	p := &Poly{Coeffs: make([]*ball.Complex, length), prec: prec}
	for i := range p.Coeffs {
		p.Coeffs[i] = ball.NewComplex(prec)
	}
	return p
}

// NewFromCoeffs returns a series of the given length with the provided
// leading coefficients, copied and rounded to prec bits.
func NewFromCoeffs(coeffs []*ball.Complex, length int, prec uint) *Poly {
	p := New(length, prec)
	for i := 0; i < length && i < len(coeffs); i++ {
		p.Coeffs[i].Set(coeffs[i])
	}
	return p
}

// NewConstant returns the constant series c of the given length.
func NewConstant(c *ball.Complex, length int, prec uint) *Poly {
	return NewFromCoeffs([]*ball.Complex{c}, length, prec)
}

// NewVariable returns the series c + x of the given length.
func NewVariable(c *ball.Complex, length int, prec uint) *Poly {
	p := NewConstant(c, length, prec)
	if length > 1 {
		p.Coeffs[1].SetInt64(1)
	}
	return p
}

// Len returns the length of p.
func (p *Poly) Len() int {
	return len(p.Coeffs)
}

// Prec returns the precision of the coefficients of p.
func (p *Poly) Prec() uint {
	return p.prec
}

// Coeff returns the i-th coefficient of p, or nil if i >= p.Len().
func (p *Poly) Coeff(i int) *ball.Complex {
	if i < len(p.Coeffs) {
		return p.Coeffs[i]
	}
	return nil
}

// Clone returns a deep copy of p.
func (p *Poly) Clone() *Poly {
	return New(p.Len(), p.prec).Set(p)
}

// CopyNew returns a deep copy of p with a different length and precision.
func (p *Poly) CopyNew(length int, prec uint) *Poly {
	return New(length, prec).Set(p)
}

// Set sets z to x truncated or zero-padded to z.Len() and returns z.
func (z *Poly) Set(x *Poly) *Poly {
	if z == x {
		return z
	}
	for i := range z.Coeffs {
		if i < x.Len() {
			z.Coeffs[i].Set(x.Coeffs[i])
		} else {
			z.Coeffs[i].SetZero()
		}
	}
	return z
}

// SetZero sets z to the zero series and returns z.
func (z *Poly) SetZero() *Poly {
	for i := range z.Coeffs {
		z.Coeffs[i].SetZero()
	}
	return z
}

// SetIndeterminate sets all the coefficients of z to indeterminate balls.
func (z *Poly) SetIndeterminate() *Poly {
	for i := range z.Coeffs {
		z.Coeffs[i].SetIndeterminate()
	}
	return z
}

// IsZero returns true if all the coefficients of p are exactly zero.
func (p *Poly) IsZero() bool {
	for i := range p.Coeffs {
		if !p.Coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

// IsConstant returns true if all the coefficients of p of degree >= 1 are exactly zero.
func (p *Poly) IsConstant() bool {
	for i := 1; i < len(p.Coeffs); i++ {
		if !p.Coeffs[i].IsZero() {
			return false
		}
	}
	return true
}

// IsReal returns true if all the coefficients of p are real.
func (p *Poly) IsReal() bool {
	for i := range p.Coeffs {
		if !p.Coeffs[i].IsReal() {
			return false
		}
	}
	return true
}

// IsFinite returns true if all the coefficients of p are finite.
func (p *Poly) IsFinite() bool {
	for i := range p.Coeffs {
		if !p.Coeffs[i].IsFinite() {
			return false
		}
	}
	return true
}

// Overlaps returns true if all the coefficients of p and x overlap.
// Missing coefficients are zero.
func (p *Poly) Overlaps(x *Poly) bool {
	n := utils.Max(p.Len(), x.Len())
	zero := ball.NewComplex(p.prec)
	for i := 0; i < n; i++ {
		a, b := p.Coeff(i), x.Coeff(i)
		if a == nil {
			a = zero
		}
		if b == nil {
			b = zero
		}
		if !a.Overlaps(b) {
			return false
		}
	}
	return true
}

// Contains returns true if all the coefficients of x are contained in those of p.
func (p *Poly) Contains(x *Poly) bool {
	if x.Len() > p.Len() {
		return false
	}
	zero := ball.NewComplex(p.prec)
	for i := range p.Coeffs {
		b := x.Coeff(i)
		if b == nil {
			b = zero
		}
		if !p.Coeffs[i].Contains(b) {
			return false
		}
	}
	return true
}

// Equal returns true if p and x have the same length and identical coefficients.
func (p *Poly) Equal(x *Poly) bool {
	if p.Len() != x.Len() {
		return false
	}
	for i := range p.Coeffs {
		if !p.Coeffs[i].Equal(x.Coeffs[i]) {
			return false
		}
	}
	return true
}

// Bits returns the maximum number of significant bits of the coefficients of p.
func (p *Poly) Bits() (bits int) {
	for i := range p.Coeffs {
		bits = utils.Max(bits, p.Coeffs[i].Bits())
	}
	return
}

// AddError adds e to the radius of the coefficient of degree i of z, on both
// parts or on the real part only.
func (z *Poly) AddError(i int, e *mag.Mag, realOnly bool) *Poly {
	if realOnly {
		z.Coeffs[i].AddErrorReal(e)
	} else {
		z.Coeffs[i].AddError(e)
	}
	return z
}

// String returns a readable representation of p.
func (p *Poly) String() string {
	s := "["
	for i := range p.Coeffs {
		if i > 0 {
			s += ", "
		}
		s += p.Coeffs[i].String()
	}
	return s + "]"
}

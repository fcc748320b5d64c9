package poly

import (
	"github.com/tuneinsight/hypgeom/ball"
)

func (z *Poly) coeffOrZero(x *Poly, i int) *ball.Complex {
	if c := x.Coeff(i); c != nil {
		return c
	}
	return ball.NewComplex(z.prec)
}

// Add sets z to x + y and returns z.
func (z *Poly) Add(x, y *Poly) *Poly {
	for i := range z.Coeffs {
		z.Coeffs[i].Add(z.coeffOrZero(x, i), z.coeffOrZero(y, i))
	}
	return z
}

// Sub sets z to x - y and returns z.
func (z *Poly) Sub(x, y *Poly) *Poly {
	for i := range z.Coeffs {
		z.Coeffs[i].Sub(z.coeffOrZero(x, i), z.coeffOrZero(y, i))
	}
	return z
}

// Neg sets z to -x and returns z.
func (z *Poly) Neg(x *Poly) *Poly {
	for i := range z.Coeffs {
		z.Coeffs[i].Neg(z.coeffOrZero(x, i))
	}
	return z
}

// AddScalar sets z to x + c and returns z.
func (z *Poly) AddScalar(x *Poly, c *ball.Complex) *Poly {
	z.Set(x)
	if z.Len() > 0 {
		z.Coeffs[0].Add(z.Coeffs[0], c)
	}
	return z
}

// AddInt64 sets z to x + c and returns z.
func (z *Poly) AddInt64(x *Poly, c int64) *Poly {
	z.Set(x)
	if z.Len() > 0 {
		z.Coeffs[0].AddInt64(z.Coeffs[0], c)
	}
	return z
}

// MulScalar sets z to x * c and returns z.
func (z *Poly) MulScalar(x *Poly, c *ball.Complex) *Poly {
	m := ball.NewMultiplier(z.prec)
	cc := c.Clone()
	for i := range z.Coeffs {
		m.Mul(z.coeffOrZero(x, i), cc, z.Coeffs[i])
	}
	return z
}

// MulInt64 sets z to x * c and returns z.
func (z *Poly) MulInt64(x *Poly, c int64) *Poly {
	for i := range z.Coeffs {
		z.Coeffs[i].MulInt64(z.coeffOrZero(x, i), c)
	}
	return z
}

// DivScalar sets z to x / c and returns z.
func (z *Poly) DivScalar(x *Poly, c *ball.Complex) *Poly {
	inv := ball.NewComplex(z.prec).Inv(c)
	return z.MulScalar(x, inv)
}

// Mul sets z to x * y mod x^z.Len() and returns z.
func (z *Poly) Mul(x, y *Poly) *Poly {

	n := z.Len()
	lx := min(x.Len(), n)
	ly := min(y.Len(), n)

	m := ball.NewMultiplier(z.prec)
	tmp := ball.NewComplex(z.prec)

	res := make([]*ball.Complex, n)
	for k := range res {
		res[k] = ball.NewComplex(z.prec)
		for i := max(0, k-ly+1); i <= k && i < lx; i++ {
			m.Mul(x.Coeffs[i], y.Coeffs[k-i], tmp)
			res[k].Add(res[k], tmp)
		}
	}

	z.Coeffs = res
	return z
}

// Inv sets z to 1/x mod x^z.Len() and returns z.
// If the constant coefficient of x may be zero, z is indeterminate.
func (z *Poly) Inv(x *Poly) *Poly {

	n := z.Len()
	if n == 0 {
		return z
	}

	x0 := z.coeffOrZero(x, 0)
	if x0.ContainsZero() {
		return z.SetIndeterminate()
	}

	m := ball.NewMultiplier(z.prec)
	tmp := ball.NewComplex(z.prec)

	// r_0 = 1/x_0, r_k = -r_0 sum_{j=1}^{k} x_j r_{k-j}
	res := make([]*ball.Complex, n)
	res[0] = ball.NewComplex(z.prec).Inv(x0)
	for k := 1; k < n; k++ {
		s := ball.NewComplex(z.prec)
		for j := 1; j <= k && j < x.Len(); j++ {
			m.Mul(x.Coeffs[j], res[k-j], tmp)
			s.Add(s, tmp)
		}
		m.Mul(s, res[0], s)
		res[k] = s.Neg(s)
	}

	z.Coeffs = res
	return z
}

// Div sets z to x / y mod x^z.Len() and returns z.
func (z *Poly) Div(x, y *Poly) *Poly {
	inv := New(z.Len(), z.prec).Inv(y)
	return z.Mul(x, inv)
}

// Derivative sets z to x' and returns z.
func (z *Poly) Derivative(x *Poly) *Poly {
	res := make([]*ball.Complex, z.Len())
	for i := range res {
		res[i] = ball.NewComplex(z.prec)
		if i+1 < x.Len() {
			res[i].MulInt64(x.Coeffs[i+1], int64(i+1))
		}
	}
	z.Coeffs = res
	return z
}

// Integral sets z to the antiderivative of x with constant coefficient c and returns z.
func (z *Poly) Integral(x *Poly, c *ball.Complex) *Poly {
	res := make([]*ball.Complex, z.Len())
	for i := range res {
		res[i] = ball.NewComplex(z.prec)
		switch {
		case i == 0:
			res[i].Set(c)
		case i-1 < x.Len():
			res[i].DivInt64(x.Coeffs[i-1], int64(i))
		}
	}
	z.Coeffs = res
	return z
}

// Log sets z to log(x) mod x^z.Len() and returns z.
// The constant coefficient uses the principal branch.
func (z *Poly) Log(x *Poly) *Poly {

	n := z.Len()
	if n == 0 {
		return z
	}

	c := ball.NewComplex(z.prec).Log(z.coeffOrZero(x, 0))

	if n == 1 {
		z.Coeffs[0] = c
		return z
	}

	// log(x) = log(x_0) + int x'/x
	d := New(n-1, z.prec).Derivative(x)
	d.Div(d, x)
	return z.Integral(d, c)
}

// Exp sets z to exp(x) mod x^z.Len() and returns z.
func (z *Poly) Exp(x *Poly) *Poly {

	n := z.Len()
	if n == 0 {
		return z
	}

	m := ball.NewMultiplier(z.prec)
	tmp := ball.NewComplex(z.prec)

	// e_0 = exp(x_0), e_k = (1/k) sum_{j=1}^{k} j x_j e_{k-j}
	res := make([]*ball.Complex, n)
	res[0] = ball.NewComplex(z.prec).Exp(z.coeffOrZero(x, 0))
	for k := 1; k < n; k++ {
		s := ball.NewComplex(z.prec)
		for j := 1; j <= k && j < x.Len(); j++ {
			m.Mul(x.Coeffs[j], res[k-j], tmp)
			tmp.MulInt64(tmp, int64(j))
			s.Add(s, tmp)
		}
		res[k] = s.DivInt64(s, int64(k))
	}

	z.Coeffs = res
	return z
}

// Evaluate returns p(c), summing all the coefficients of p with Horner's rule.
func (p *Poly) Evaluate(c *ball.Complex) *ball.Complex {
	m := ball.NewMultiplier(p.prec)
	res := ball.NewComplex(p.prec)
	for i := p.Len() - 1; i >= 0; i-- {
		m.Mul(res, c, res)
		res.Add(res, p.Coeffs[i])
	}
	return res
}

package mag

// NewSeries returns n zero Mag values.
func NewSeries(n int) []*Mag {
	s := make([]*Mag, n)
	for i := range s {
		s[i] = New()
	}
	return s
}

// NewInfSeries returns n +Inf Mag values.
func NewInfSeries(n int) []*Mag {
	s := make([]*Mag, n)
	for i := range s {
		s[i] = NewInf()
	}
	return s
}

// IsFiniteSeries returns true if all the values of x are finite.
func IsFiniteSeries(x []*Mag) bool {
	for i := range x {
		if !x[i].IsFinite() {
			return false
		}
	}
	return true
}

// MulSeries returns upper bounds of the first n coefficients of x * y,
// where x and y are power series with nonnegative coefficients.
// Missing coefficients are zero.
func MulSeries(x, y []*Mag, n int) []*Mag {
	z := NewSeries(n)
	tmp := New()
	for k := range z {
		for i := 0; i <= k && i < len(x); i++ {
			if k-i < len(y) {
				z[k].Add(z[k], tmp.Mul(x[i], y[k-i]))
			}
		}
	}
	return z
}

// RecipSeries returns upper bounds of the first n coefficients of
// 1/(x0 - x_1 t - x_2 t^2 - ...), where x0 is a lower bound of the constant
// coefficient and x_i, i >= 1, are upper bounds. The value of x[0] is ignored.
// The coefficients of the result dominate the absolute values of those of
// 1/y for any series y with |y_0| >= x0 and |y_i| <= x_i.
func RecipSeries(x0 *Mag, x []*Mag, n int) []*Mag {

	z := NewSeries(n)

	if n == 0 {
		return z
	}

	z[0].Inv(x0)

	tmp := New()
	for k := 1; k < n; k++ {
		for j := 1; j <= k && j < len(x); j++ {
			z[k].Add(z[k], tmp.Mul(x[j], z[k-j]))
		}
		z[k].Mul(z[k], z[0])
	}

	return z
}

// GeomSeries returns upper bounds of the first n coefficients of
// 1/(1 - x) = 1 + x + x^2 + ..., where x is a power series with nonnegative
// coefficients. The result is +Inf when x[0] >= 1.
func GeomSeries(x []*Mag, n int) []*Mag {

	if len(x) == 0 {
		z := NewSeries(n)
		if n > 0 {
			z[0].Set(one())
		}
		return z
	}

	if x[0].CmpFloat64(1) >= 0 {
		return NewInfSeries(n)
	}

	return RecipSeries(New().SubLower(one(), x[0]), x, n)
}

package ball

// Exp sets c to exp(a) and returns c.
func (c *Complex) Exp(a *Complex) *Complex {

	prec := c.Prec()

	if a.IsReal() {
		c[0].Exp(a[0])
		c[1].SetZero()
		return c
	}

	m := New(prec).Exp(a[0])
	s, co := New(prec), New(prec)
	SinCos(s, co, a[1])

	c[0].Mul(m, co)
	c[1].Mul(m, s)
	return c
}

// Log sets c to the principal branch of log(a) and returns c.
// Balls intersecting the branch cut (-Inf, 0] other than exactly on
// the negative real axis give an indeterminate imaginary part.
func (c *Complex) Log(a *Complex) *Complex {

	prec := c.Prec()

	if a.IsReal() && a[0].IsPositive() {
		c[0].Log(a[0])
		c[1].SetZero()
		return c
	}

	// log|a| = log(re^2 + im^2)/2
	wp := prec + 8
	mod2 := New(wp).Mul(a[0], a[0])
	mod2.Add(mod2, New(wp).Mul(a[1], a[1]))

	re := New(prec).Log(mod2)
	re.Mul2Exp(re, -1)

	im := New(prec).Arg(a)

	c[0].Set(re)
	c[1].Set(im)
	return c
}

// Arg sets z to the principal argument of a in (-Pi, Pi] and returns z.
func (z *Ball) Arg(a *Complex) *Ball {

	prec := z.Prec()
	if prec == 0 {
		prec = a.Prec()
	}
	wp := prec + 8

	re, im := a[0], a[1]

	switch {
	case im.IsZero() && re.IsPositive():
		return z.SetZero()
	case im.IsZero() && re.IsNegative():
		return z.Set(NewPi(wp))
	case re.IsPositive():
		// atan(im/re)
		t := New(wp).Div(im, re)
		return z.Atan(t)
	case im.IsPositive() || im.IsNegative():
		// sign(im) Pi/2 - atan(re/im)
		t := New(wp).Div(re, im)
		t.Atan(t)
		halfPi := NewPi(wp)
		halfPi.Mul2Exp(halfPi, -1)
		if im.IsNegative() {
			halfPi.Neg(halfPi)
		}
		return z.Sub(halfPi, t)
	}

	return z.SetIndeterminate()
}

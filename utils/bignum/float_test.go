package bignum

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFloat(t *testing.T) {
	testFunc1("Log", 1.4142135623730951, math.Log, Log, 1e-15, t)
	testFunc1("Exp", 1.4142135623730951, math.Exp, Exp, 1e-15, t)
	testFunc2("Pow", 2, 1.4142135623730951, math.Pow, Pow, 1e-15, t)

	for _, x := range []float64{0.125, -0.7, 1.4142135623730951, 9.5, -1e5} {
		testFunc1("Atan", x, math.Atan, Atan, 1e-15, t)
		testFunc1("Sin", x, math.Sin, func(x *big.Float) *big.Float { s, _ := SinCos(x); return s }, 1e-10, t)
		testFunc1("Cos", x, math.Cos, func(x *big.Float) *big.Float { _, c := SinCos(x); return c }, 1e-10, t)
	}

	t.Run("Constants", func(t *testing.T) {
		pi, _ := Pi(53).Float64()
		require.Equal(t, math.Pi, pi)
		ln2, _ := Log2(53).Float64()
		require.Equal(t, math.Ln2, ln2)
		require.Equal(t, uint(300), Pi(300).Prec())
	})

	t.Run("Round", func(t *testing.T) {
		for x, want := range map[float64]int64{2.5: 3, -2.5: -3, 2.49: 2, -0.2: 0} {
			r, _ := Round(NewFloat(x, 53)).Int64()
			require.Equal(t, want, r)
		}
	})

	t.Run("Float64", func(t *testing.T) {
		huge := new(big.Float).SetMantExp(NewFloat(1, 53), 5000)
		tiny := new(big.Float).SetMantExp(NewFloat(1, 53), -5000)
		require.Equal(t, 1e300, Float64(huge))
		require.Equal(t, -1e300, Float64(new(big.Float).Neg(huge)))
		require.Equal(t, 1e-300, Float64(tiny))
		require.Equal(t, 0.0, Float64(new(big.Float)))
		require.Equal(t, 0.5, Float64(NewFloat(0.5, 53)))
	})

	t.Run("Log2Abs", func(t *testing.T) {
		huge := new(big.Float).SetMantExp(NewFloat(3, 53), 5000)
		require.InDelta(t, 5000+math.Log2(3), Log2Abs(huge), 1e-9)
		require.InDelta(t, -3.0, Log2Abs(NewFloat(-0.125, 53)), 1e-15)
		require.True(t, math.IsInf(Log2Abs(new(big.Float)), -1))
	})
}

func testFunc1(name string, x float64, f func(x float64) (y float64), g func(x *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 53)).Float64()
		require.InDelta(t, f(x), y, delta)
	})
}

func testFunc2(name string, x, e float64, f func(x, e float64) (y float64), g func(x, e *big.Float) (y *big.Float), delta float64, t *testing.T) {
	t.Run(name, func(t *testing.T) {
		y, _ := g(NewFloat(x, 53), NewFloat(e, 53)).Float64()
		require.InDelta(t, f(x, e), y, delta)
	})
}

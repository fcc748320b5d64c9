package gamma

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/poly"
)

func testString(opname string, prec uint) string {
	return fmt.Sprintf("%s/prec=%d", opname, prec)
}

func TestBernoulli(t *testing.T) {

	c := NewCache()

	require.Equal(t, 0, big.NewRat(1, 1).Cmp(c.Bernoulli(0)))
	require.Equal(t, 0, big.NewRat(1, 2).Cmp(c.Bernoulli(1)))
	require.Equal(t, 0, big.NewRat(1, 6).Cmp(c.Bernoulli(2)))
	require.Equal(t, 0, new(big.Rat).Cmp(c.Bernoulli(3)))
	require.Equal(t, 0, big.NewRat(-1, 30).Cmp(c.Bernoulli(4)))
	require.Equal(t, 0, big.NewRat(-691, 2730).Cmp(c.Bernoulli(12)))
	require.Equal(t, 13, c.Len())

	// returned values are copies
	b := c.Bernoulli(2)
	b.SetInt64(7)
	require.Equal(t, 0, big.NewRat(1, 6).Cmp(c.Bernoulli(2)))

	c.Reset()
	require.Equal(t, 0, c.Len())
	require.Equal(t, 0, big.NewRat(5, 66).Cmp(c.Bernoulli(10)))
}

func TestRGamma(t *testing.T) {

	eval := NewEvaluator()

	for _, prec := range []uint{53, 128, 333} {

		t.Run(testString("Half", prec), func(t *testing.T) {
			// 1/Gamma(1/2) = 1/sqrt(pi)
			ref := ball.New(prec).Sqrt(ball.NewPi(prec))
			ref.Inv(ref)
			y := eval.RGamma(ball.ToComplex(0.5, prec), prec)
			require.True(t, y.Real().Overlaps(ref))
			require.True(t, y.Imag().ContainsZero())
			require.Greater(t, y.Real().RelAccuracyBits(), int(prec)-16)
		})

		t.Run(testString("Integers", prec), func(t *testing.T) {
			require.True(t, eval.RGamma(ball.ToComplex(-3, prec), prec).IsZero())
			require.True(t, eval.RGamma(ball.ToComplex(0, prec), prec).IsZero())

			y := eval.RGamma(ball.ToComplex(5, prec), prec)
			require.True(t, y.Overlaps(ball.ToComplex(big.NewRat(1, 24), prec)))

			// without the factorial shortcut
			s := eval.RGammaSeries(poly.NewConstant(ball.ToComplex(5, prec), 1, prec), 1, prec)
			require.True(t, s.Coeffs[0].Overlaps(ball.ToComplex(big.NewRat(1, 24), prec)))

			s = eval.RGammaSeries(poly.NewConstant(ball.ToComplex(-2, prec), 1, prec), 1, prec)
			require.True(t, s.Coeffs[0].ContainsZero())
		})

		t.Run(testString("Real", prec), func(t *testing.T) {
			for _, x := range []float64{2.5, -2.5, 0.125, 17.75, -40.3} {
				y := eval.RGamma(ball.ToComplex(x, prec), prec)
				require.InDelta(t, 1, y.Real().Float64()*math.Gamma(x), 1e-12, x)
			}
		})

		t.Run(testString("Complex", prec), func(t *testing.T) {
			y := eval.RGamma(ball.ToComplex(complex(1, 1), prec), prec)
			require.InDelta(t, 1.8307443965905248, y.Real().Float64(), 1e-14)
			require.InDelta(t, 0.5696076410366818, y.Imag().Float64(), 1e-14)
		})
	}

	t.Run("Precision", func(t *testing.T) {
		x := ball.ToComplex(complex(0.3, -2), 256)
		lo := eval.RGamma(x, 64)
		hi := eval.RGamma(x, 256)
		require.True(t, lo.Overlaps(hi))
		require.Greater(t, hi.Real().RelAccuracyBits(), lo.Real().RelAccuracyBits())
	})

	t.Run("Indeterminate", func(t *testing.T) {
		require.False(t, eval.RGamma(ball.NewComplexIndeterminate(64), 64).IsFinite())
		require.False(t, eval.RGamma(ball.ToComplex(-2*float64(MaxShift)+0.5, 64), 64).IsFinite())
	})
}

func TestRGammaSeries(t *testing.T) {

	eval := NewEvaluator()

	prec := uint(128)

	// 1/Gamma(1 + t) = 1 + gamma t + (gamma^2/2 - pi^2/12) t^2 + O(t^3)
	x := poly.NewVariable(ball.ToComplex(1, prec), 3, prec)
	y := eval.RGammaSeries(x, 3, prec)

	require.Equal(t, 3, y.Len())
	require.True(t, y.Coeffs[0].Contains(ball.ToComplex(1, prec)))
	require.InDelta(t, 0.5772156649015329, y.Coeffs[1].Real().Float64(), 1e-15)
	require.InDelta(t, -0.6558780715202539, y.Coeffs[2].Real().Float64(), 1e-15)
	require.Greater(t, y.Coeffs[1].Real().RelAccuracyBits(), int(prec)-16)

	// around a pole: 1/Gamma(-1 + t) = -t + O(t^2)
	x = poly.NewVariable(ball.ToComplex(-1, prec), 2, prec)
	y = eval.RGammaSeries(x, 2, prec)
	require.True(t, y.Coeffs[0].ContainsZero())
	require.True(t, y.Coeffs[1].Contains(ball.ToComplex(-1, prec)))

	// truncation to a longer length pads x with zeros
	y = eval.RGammaSeries(poly.NewConstant(ball.ToComplex(3, prec), 1, prec), 4, prec)
	require.True(t, y.Coeffs[0].Contains(ball.ToComplex(0.5, prec)))

	require.Equal(t, 0, eval.RGammaSeries(x, 0, prec).Len())
}

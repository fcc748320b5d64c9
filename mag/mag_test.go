package mag

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMag(t *testing.T) {

	t.Run("Rounding", func(t *testing.T) {
		// 1/3 is not representable: upper and lower bounds must differ and bracket it
		three := FromInt64(3)
		up := New().Inv(three)
		lo := New().InvLower(three)
		require.Equal(t, 1, up.Cmp(lo))

		third := new(big.Float).SetPrec(200).Quo(big.NewFloat(1), big.NewFloat(3))
		require.Equal(t, 1, up.Float().SetPrec(200).Cmp(third))
		require.Equal(t, -1, lo.Float().SetPrec(200).Cmp(third))
	})

	t.Run("FromInt64", func(t *testing.T) {
		x := FromInt64(-(1<<40 + 1))
		require.GreaterOrEqual(t, x.Float64(), float64(1<<40+1))
		require.Equal(t, 0, FromInt64(math.MinInt64).CmpFloat64(0x1p63))
	})

	t.Run("Infinity", func(t *testing.T) {
		inf := NewInf()
		zero := New()
		two := FromFloat64(2)

		require.True(t, New().Add(inf, two).IsInf())
		require.True(t, New().Mul(inf, two).IsInf())
		require.True(t, New().Mul(zero, inf).IsZero())
		require.True(t, New().Div(two, zero).IsInf())
		require.True(t, New().Div(inf, inf).IsInf())
		require.True(t, New().Div(two, inf).IsZero())
		require.True(t, New().SubLower(inf, inf).IsZero())
		require.True(t, FromFloat64(math.NaN()).IsInf())
	})

	t.Run("SubLower", func(t *testing.T) {
		require.True(t, New().SubLower(FromFloat64(1), FromFloat64(2)).IsZero())
		require.Equal(t, 0, New().SubLower(FromFloat64(3), FromFloat64(1)).CmpFloat64(2))
	})

	t.Run("GeomSeries", func(t *testing.T) {
		require.True(t, New().GeomSeries(FromFloat64(1)).IsInf())
		require.True(t, New().GeomSeries(FromFloat64(1.5)).IsInf())
		g := New().GeomSeries(FromFloat64(0.5))
		require.GreaterOrEqual(t, g.Float64(), 2.0)
		require.InDelta(t, 2.0, g.Float64(), 1e-7)
		require.Equal(t, 0, New().GeomSeries(New()).CmpFloat64(1))
	})

	t.Run("Expm1", func(t *testing.T) {
		for _, x := range []float64{1e-30, 1e-4, 0.5, 3, 40} {
			e := New().Expm1(FromFloat64(x)).Float64()
			require.GreaterOrEqual(t, e, math.Expm1(x))
			require.InDelta(t, 1, e/math.Expm1(x), 2e-3)
		}
		require.True(t, New().Expm1(FromFloat64(1e4)).IsInf())
		require.GreaterOrEqual(t, New().Exp(FromFloat64(1)).Float64(), math.E)
	})

	t.Run("Pow", func(t *testing.T) {
		require.Equal(t, 0, New().Pow(FromFloat64(2), 10).CmpFloat64(1024))
		up := New().Pow(FromFloat64(1.1), 7).Float64()
		lo := New().PowLower(FromFloat64(1.1), 7).Float64()
		require.LessOrEqual(t, lo, up)
		require.InDelta(t, math.Pow(1.1, 7), up, 1e-6)
		require.Equal(t, 0, New().Pow(NewInf(), 0).CmpFloat64(1))
	})

	t.Run("Mul2ExpLog2", func(t *testing.T) {
		x := New().Mul2Exp(FromFloat64(1), -100000)
		require.False(t, x.IsZero())
		require.InDelta(t, -100000, x.Log2(), 1e-9)
		require.True(t, math.IsInf(New().Log2(), -1))
	})
}

func TestMagSqrt(t *testing.T) {
	for _, x := range []float64{0, 2, 1e-200, 1e200} {
		up := New().Sqrt(FromFloat64(x)).Float64()
		lo := New().SqrtLower(FromFloat64(x)).Float64()
		require.GreaterOrEqual(t, up, math.Sqrt(x))
		require.LessOrEqual(t, lo, math.Sqrt(x))
	}
}

func TestMagSeries(t *testing.T) {

	one := FromInt64(1)
	half := FromFloat64(0.5)

	t.Run("MulSeries", func(t *testing.T) {
		// (1 + t)^2 = 1 + 2t + t^2
		x := []*Mag{one, one}
		z := MulSeries(x, x, 4)
		require.Len(t, z, 4)
		require.Equal(t, 0, z[0].CmpFloat64(1))
		require.Equal(t, 0, z[1].CmpFloat64(2))
		require.Equal(t, 0, z[2].CmpFloat64(1))
		require.True(t, z[3].IsZero())
	})

	t.Run("RecipSeries", func(t *testing.T) {
		// 1/(2 - t) = 1/2 + t/4 + t^2/8 + ...
		z := RecipSeries(FromInt64(2), []*Mag{nil, one}, 4)
		for k := range z {
			require.InDelta(t, math.Pow(2, -float64(k+1)), z[k].Float64(), 1e-8)
			require.GreaterOrEqual(t, z[k].Float64(), math.Pow(2, -float64(k+1)))
		}
		require.True(t, RecipSeries(New(), []*Mag{nil, one}, 2)[1].IsInf())
	})

	t.Run("GeomSeries", func(t *testing.T) {
		// 1/(1 - 1/2 - t/2) = 2 + 2t + 2t^2 + ...
		z := GeomSeries([]*Mag{half, half}, 3)
		for k := range z {
			require.InDelta(t, 2, z[k].Float64(), 1e-8)
		}
		require.False(t, IsFiniteSeries(GeomSeries([]*Mag{one}, 3)))
		require.Equal(t, 0, GeomSeries(nil, 2)[0].CmpFloat64(1))
	})
}

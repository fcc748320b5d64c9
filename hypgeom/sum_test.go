package hypgeom

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/poly"
	"github.com/tuneinsight/hypgeom/utils/sampling"
)

func testStrategyString(opname string, strategy Strategy, prec uint) string {
	return fmt.Sprintf("%s/strategy=%s/prec=%d", opname, strategy, prec)
}

func complexes(prec uint, values ...complex128) []*ball.Complex {
	c := make([]*ball.Complex, len(values))
	for i := range values {
		c[i] = ball.ToComplex(values[i], prec)
	}
	return c
}

func constants(length int, prec uint, values ...complex128) []*poly.Poly {
	p := make([]*poly.Poly, len(values))
	for i := range values {
		p[i] = poly.NewConstant(ball.ToComplex(values[i], prec), length, prec)
	}
	return p
}

var allStrategies = []Strategy{Forward, BS, RS, FME}

func TestChooseN(t *testing.T) {

	t.Run("Exp", func(t *testing.T) {
		// sum 1/k!: the first n with n! > 2^57
		require.Equal(t, 20, ChooseN(nil, complexes(53, 1), ball.ToComplex(1, 53), 53))
	})

	t.Run("Terminating", func(t *testing.T) {
		require.Equal(t, 4, ChooseN(complexes(64, -3), complexes(64, 1), ball.ToComplex(1, 64), 64))
		require.Equal(t, 1, ChooseN(complexes(64, 0), complexes(64, 1), ball.ToComplex(1, 64), 64))
	})

	t.Run("Degenerate", func(t *testing.T) {
		require.Equal(t, 1, ChooseN(complexes(64, 1), complexes(64, 1), ball.NewComplex(64), 64))
		require.Equal(t, 1, ChooseN(complexes(64, 1), complexes(64, 1), ball.NewComplexIndeterminate(64), 64))
	})

	t.Run("Divergent", func(t *testing.T) {
		n := ChooseN(complexes(64, 1, 1), nil, ball.ToComplex(1, 64), 64)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, MaxTerms(64))
	})

	t.Run("NearPole", func(t *testing.T) {
		// the lower parameter -9.5 forces past the index 11
		n := ChooseN(complexes(64, 1), complexes(64, -9.5), ball.ToComplex(0.125, 64), 64)
		require.GreaterOrEqual(t, n, 11)
	})

	t.Run("Series", func(t *testing.T) {
		b := constants(10, 53, 1)
		z := poly.NewVariable(ball.ToComplex(1, 53), 10, 53)
		require.Equal(t, 20, SeriesChooseN(nil, b, z, 10, 53))
		require.Equal(t, 30, SeriesChooseN(nil, b, z, 30, 53))
		require.Equal(t, 1, SeriesChooseN(nil, b, poly.New(10, 53), 10, 53))

		// a non-constant upper parameter does not terminate
		a := []*poly.Poly{poly.NewVariable(ball.ToComplex(-3, 53), 2, 53)}
		require.Greater(t, SeriesChooseN(a, constants(2, 53, 1), z, 2, 53), 4)
		require.Equal(t, 4, SeriesChooseN(constants(2, 53, -3), constants(2, 53, 1), z, 2, 53))
	})
}

func TestBoundFactor(t *testing.T) {

	prec := uint(64)

	t.Run("Divergent", func(t *testing.T) {
		require.True(t, BoundFactor(complexes(prec, 1, 1), nil, ball.ToComplex(0.5, prec), 10).IsInf())
	})

	t.Run("NonPositiveLower", func(t *testing.T) {
		require.True(t, BoundFactor(nil, complexes(prec, -20), ball.ToComplex(0.5, prec), 5).IsInf())
	})

	t.Run("Geometric", func(t *testing.T) {
		// |z|/|b+n| = 1/22
		C := BoundFactor(nil, complexes(prec, 1), ball.ToComplex(0.5, prec), 10).Float64()
		require.GreaterOrEqual(t, C, 22.0/21)
		require.Less(t, C, 22.0/21*(1+1e-6))
	})

	t.Run("Tail", func(t *testing.T) {
		// sum_{k>=10} 1/k! <= C/10!
		var tail, term float64 = 0, 1
		for k := 1; k < 40; k++ {
			term /= float64(k)
			if k >= 10 {
				tail += term
			}
		}
		C := BoundFactor(nil, complexes(prec, 1), ball.ToComplex(1, prec), 10).Float64()
		require.LessOrEqual(t, tail*math.Gamma(11), C)
	})

	t.Run("Series", func(t *testing.T) {
		length := 3
		a, b := constants(length, prec, 0.5), constants(length, prec, 1.5)
		z := poly.NewConstant(ball.ToComplex(0.25, prec), length, prec)

		F := SeriesBoundFactor(a, b, z, 10, length)
		C := BoundFactor(complexes(prec, 0.5), complexes(prec, 1.5), ball.ToComplex(0.25, prec), 10)

		require.Len(t, F, length)
		require.InDelta(t, C.Float64(), F[0].Float64(), 1e-6)
		require.True(t, F[1].IsZero())
		require.True(t, F[2].IsZero())

		z = poly.NewVariable(ball.ToComplex(0.25, prec), length, prec)
		F = SeriesBoundFactor(a, b, z, 10, length)
		require.Greater(t, F[1].Float64(), 0.0)

		F = SeriesBoundFactor(a, constants(length, prec, -20), z, 5, length)
		require.False(t, F[0].IsFinite())
	})
}

func TestStrategies(t *testing.T) {

	for _, prec := range []uint{64, 128, 256} {

		r := NewScalarRing(prec, nil)

		a := complexes(prec, 0.5, 0.25+0.125i)
		b := complexes(prec, 1.5, 0.75)
		z := ball.ToComplex(0.375-0.25i, prec)

		n := 100

		s0, t0 := SumForward[*ball.Complex](r, a, b, z, n)

		for _, strategy := range allStrategies {
			t.Run(testStrategyString("Scalar", strategy, prec), func(t *testing.T) {
				s, tn := SumWith[*ball.Complex](r, a, b, z, false, n, strategy)
				require.True(t, s.IsFinite())
				require.True(t, s.Overlaps(s0))
				require.True(t, tn.Overlaps(t0))
			})
		}

		// the pole of 1/Gamma(b + k) at k = 2
		br := complexes(prec, -2, 1.5)
		sr, tr := sumForwardRegularized[*ball.Complex](r, a[:1], br, z, 30)

		for _, strategy := range allStrategies {
			t.Run(testStrategyString("Regularized", strategy, prec), func(t *testing.T) {
				s, tn := SumWith[*ball.Complex](r, a[:1], br, z, true, 30, strategy)
				require.True(t, s.IsFinite())
				require.True(t, s.Overlaps(sr))
				require.True(t, tn.Overlaps(tr))
			})
		}

		t.Run(testString("Empty", prec), func(t *testing.T) {
			for _, strategy := range allStrategies {
				s, tn := SumWith[*ball.Complex](r, a, b, z, false, 0, strategy)
				require.True(t, s.IsZero())
				require.True(t, tn.Overlaps(r.One()))
			}
		})
	}
}

func TestSeriesStrategies(t *testing.T) {

	for _, prec := range []uint{64, 128} {

		length := 3
		r := NewSeriesRing(length, prec, nil)

		a := []*poly.Poly{poly.NewVariable(ball.ToComplex(0.5, prec), length, prec)}
		b := constants(length, prec, 1.5)
		z := poly.NewVariable(ball.ToComplex(0.25, prec), length, prec)

		n := 40

		s0, t0 := SumForward[*poly.Poly](r, a, b, z, n)

		for _, strategy := range allStrategies {
			t.Run(testStrategyString("Series", strategy, prec), func(t *testing.T) {
				s, tn := SumWith[*poly.Poly](r, a, b, z, false, n, strategy)
				require.True(t, s.IsFinite())
				require.True(t, s.Overlaps(s0))
				require.True(t, tn.Overlaps(t0))
			})
		}
	}
}

func TestSubproductTree(t *testing.T) {

	src, err := sampling.NewSourceFromKey([]byte("subproduct"))
	require.NoError(t, err)

	prec := uint(128)
	r := NewScalarRing(prec, nil)

	x := make(rpoly[*ball.Complex], 10)
	for i := range x {
		x[i] = ball.ToComplex(src.Complex128(-1, 1), prec)
	}

	points := make([]*ball.Complex, 7)
	for i := range points {
		points[i] = r.FromInt64(int64(3 * i))
	}

	tree := newSubproductTree[*ball.Complex](r, points)
	have := tree.evaluate(r, x, nil)

	require.Len(t, have, len(points))
	for i := range points {
		require.True(t, have[i].Overlaps(polyEval[*ball.Complex](r, x, points[i])))
	}
}

func TestPolicy(t *testing.T) {

	pol := DefaultPolicy()
	require.NoError(t, pol.Validate())

	t.Run("Choose", func(t *testing.T) {
		require.Equal(t, Forward, pol.Choose(3, 256, 1, 1, 1, 1))
		require.Equal(t, Forward, pol.Choose(100, 64, 1, 1, 1, 1))
		require.Equal(t, BS, pol.Choose(100, 256, 1, 1, 1, 1))
		require.Equal(t, RS, pol.Choose(100, 512, 300, 1, 1, 1))
		require.Equal(t, FME, pol.Choose(200, 4000, 3000, 1, 1, 1))
		require.Equal(t, RS, pol.Choose(200, 4000, 3000, 1, 4, 1))
		require.Equal(t, RS, pol.Choose(40, 4000, 3000, 1, 1, 1))

		// thresholds of a zero Policy do not enable FME at or below 1000 bits
		var zero Policy
		require.Equal(t, BS, zero.Choose(100, 1000, 1, 1, 1, 1))
		require.Equal(t, RS, zero.Choose(100, 1000, 600, 1, 1, 1))
		require.Equal(t, RS, zero.Choose(100, 999, 600, 1, 1, 1))
		require.Equal(t, FME, zero.Choose(100, 1001, 600, 1, 1, 1))

		forced := pol
		forced.Strategy = FME
		require.Equal(t, FME, forced.Choose(1, 16, 1, 1, 1, 1))
	})

	t.Run("ChooseSeries", func(t *testing.T) {
		require.Equal(t, BS, pol.ChooseSeries(100, 512, 300, 1, 1, 1, 30))
		require.Equal(t, RS, pol.ChooseSeries(100, 512, 300, 1, 1, 1, 3))
		require.Equal(t, RS, pol.ChooseSeries(200, 4000, 3000, 1, 1, 1, 3))
		require.Equal(t, Forward, pol.ChooseSeries(4, 4000, 1, 1, 1, 1, 30))
	})

	t.Run("Strategy", func(t *testing.T) {
		for _, s := range []Strategy{Auto, Forward, BS, RS, FME} {
			p, err := s.MarshalText()
			require.NoError(t, err)
			var have Strategy
			require.NoError(t, have.UnmarshalText(p))
			require.Equal(t, s, have)
		}

		_, err := ParseStrategy("newton")
		require.Error(t, err)

		s, err := ParseStrategy("BS")
		require.NoError(t, err)
		require.Equal(t, BS, s)
	})

	t.Run("JSON", func(t *testing.T) {
		pol := DefaultPolicy()
		pol.Strategy = RS
		pol.RSMinPrec = 64

		data, err := json.Marshal(pol)
		require.NoError(t, err)
		require.Contains(t, string(data), `"Strategy":"rs"`)

		var have Policy
		require.NoError(t, json.Unmarshal(data, &have))
		require.True(t, cmp.Equal(pol, have), cmp.Diff(pol, have))
	})

	t.Run("Validate", func(t *testing.T) {
		invalid := DefaultPolicy()
		invalid.FMEMinPrec = 1000
		require.Error(t, invalid.Validate())

		invalid = DefaultPolicy()
		invalid.Strategy = Strategy(7)
		require.Error(t, invalid.Validate())
	})
}

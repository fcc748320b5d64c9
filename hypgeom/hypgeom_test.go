package hypgeom

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/tuneinsight/hypgeom/ball"
	"github.com/tuneinsight/hypgeom/poly"
	"github.com/tuneinsight/hypgeom/utils"
)

var flagPrec = flag.Uint("prec", 0, "run the tests at this precision only (default 64, 128 and 256).")

func testString(opname string, prec uint) string {
	return fmt.Sprintf("%s/prec=%d", opname, prec)
}

func testPrecisions() []uint {
	if *flagPrec != 0 {
		return []uint{*flagPrec}
	}
	return []uint{64, 128, 256}
}

func requireClose(t *testing.T, want complex128, have *ball.Complex, delta float64) {
	require.True(t, have.IsFinite(), have.String())
	require.InDelta(t, real(want), have.Real().Float64(), delta)
	require.InDelta(t, imag(want), have.Imag().Float64(), delta)
}

func TestDirect(t *testing.T) {

	eval := NewEvaluator(DefaultParameters())

	for _, prec := range testPrecisions() {

		t.Run(testString("Exp", prec), func(t *testing.T) {
			// sum 1/k! = e
			e := ball.ToComplex(ball.New(prec).Exp(ball.NewFromInt64(1, prec)), prec)

			y := eval.Direct(nil, complexes(prec, 1), ball.ToComplex(1, prec), 20, prec)
			require.True(t, y.Overlaps(e))
			require.True(t, y.IsReal())
			requireClose(t, math.E, y, 1e-15)

			y = eval.Direct(nil, complexes(prec, 1), ball.ToComplex(1, prec), AutoTerms, prec)
			require.True(t, y.Overlaps(e))
			require.Greater(t, y.Real().RelAccuracyBits(), int(prec)-16)
		})

		t.Run(testString("Geometric", prec), func(t *testing.T) {
			two := ball.ToComplex(2, prec)
			for _, strategy := range []Strategy{Forward, BS, RS, FME} {
				pol := DefaultPolicy()
				pol.Strategy = strategy
				params, err := NewParametersFromLiteral(ParametersLiteral{Policy: &pol})
				require.NoError(t, err)

				y := NewEvaluator(params).Direct(complexes(prec, 1), complexes(prec, 1), ball.ToComplex(0.5, prec), AutoTerms, prec)
				require.True(t, y.Contains(two), strategy.String())
			}
		})

		t.Run(testString("Precision", prec), func(t *testing.T) {
			a := complexes(prec, 0.5, 0.25+0.125i)
			b := complexes(prec, 1.5, 0.75)
			z := ball.ToComplex(0.375-0.25i, prec)

			lo := eval.Direct(a, b, z, AutoTerms, prec)
			hi := eval.Direct(a, b, z, AutoTerms, 2*prec)

			require.True(t, lo.Overlaps(hi))
			require.Greater(t, lo.Real().RelAccuracyBits(), int(prec)-20)
			require.Greater(t, hi.Real().RelAccuracyBits(), lo.Real().RelAccuracyBits())
		})

		t.Run(testString("Symmetry", prec), func(t *testing.T) {
			a := complexes(prec, 1.0/3, 2.5, 0.25-1i)
			b := complexes(prec, 1.75, 2.0/3, 3)
			z := ball.ToComplex(0.625, prec)

			y0 := eval.Direct(a, b, z, AutoTerms, prec)
			y1 := eval.Direct([]*ball.Complex{a[2], a[0], a[1]}, []*ball.Complex{b[1], b[2], b[0]}, z, AutoTerms, prec)

			require.True(t, y0.Equal(y1))
		})

		t.Run(testString("Terms", prec), func(t *testing.T) {
			a := complexes(prec, 0.5)
			b := complexes(prec, 1.5, 1)
			z := ball.ToComplex(-2, prec)

			ref := eval.Direct(a, b, z, AutoTerms, prec)

			for n := 20; n < 24; n++ {
				y0 := eval.Direct(a, b, z, n, prec)
				y1 := eval.Direct(a, b, z, n+1, prec)
				require.True(t, y0.Overlaps(y1))
				require.True(t, y0.Overlaps(ref))
			}
		})

		t.Run(testString("Terminating", prec), func(t *testing.T) {
			// sum_{k=0}^{3} (-3)_k/(2)_k 2^k = 1 - 3 + 4 - 2
			y := eval.Direct(complexes(prec, -3), complexes(prec, 2), ball.ToComplex(2, prec), AutoTerms, prec)
			require.True(t, y.Contains(ball.NewComplex(prec)))
			require.True(t, y.IsExact())
		})

		t.Run(testString("Degenerate", prec), func(t *testing.T) {
			one := ball.ToComplex(1, prec)

			y := eval.Direct(complexes(prec, 0.5), complexes(prec, 1.5), ball.NewComplex(prec), AutoTerms, prec)
			require.True(t, y.Contains(one))
			require.True(t, y.IsFinite())

			y = eval.Direct(complexes(prec, 0.5), []*ball.Complex{ball.NewComplexIndeterminate(prec)}, one, AutoTerms, prec)
			require.False(t, y.IsFinite())

			// 2F0 diverges
			y = eval.Direct(complexes(prec, 1, 1), nil, ball.ToComplex(0.5, prec), AutoTerms, prec)
			require.False(t, y.IsFinite())

			// pole of the lower parameter
			y = eval.Direct(complexes(prec, 1), complexes(prec, -2), ball.ToComplex(0.5, prec), AutoTerms, prec)
			require.False(t, y.IsFinite())
		})
	}
}

func TestHypGeom(t *testing.T) {

	eval := NewEvaluator(DefaultParameters())

	for _, prec := range testPrecisions() {

		t.Run(testString("1F0", prec), func(t *testing.T) {
			// 1F0(1;;1/2) = 1/(1-1/2)
			y := eval.HypGeom(complexes(prec, 1), nil, ball.ToComplex(0.5, prec), false, prec)
			require.True(t, y.Contains(ball.ToComplex(2, prec)))
		})

		t.Run(testString("0F0", prec), func(t *testing.T) {
			z := ball.ToComplex(0.5+1i, prec)
			y := eval.HypGeom(nil, nil, z, false, prec)
			require.True(t, y.Overlaps(ball.NewComplex(prec).Exp(z)))
		})

		t.Run(testString("1F1", prec), func(t *testing.T) {
			// 1F1(1;2;z) = (e^z - 1)/z
			y := eval.HypGeom(complexes(prec, 1), complexes(prec, 2), ball.ToComplex(0.5, prec), false, prec)
			requireClose(t, 1.2974425414002564, y, 1e-15)
		})

		t.Run(testString("Regularized", prec), func(t *testing.T) {
			z := ball.ToComplex(0.5, prec)

			// 1F1(1;2;z)/Gamma(2)
			y := eval.HypGeom(complexes(prec, 1), complexes(prec, 2), z, true, prec)
			requireClose(t, 1.2974425414002564, y, 1e-15)

			// 1F1(1;-1;z)/Gamma(-1) = z^2 e^z
			y = eval.HypGeom(complexes(prec, 1), complexes(prec, -1), z, true, prec)
			requireClose(t, 0.41218031767503205, y, 1e-15)
			require.Greater(t, y.Real().RelAccuracyBits(), int(prec)-16)

			// 1F1(1;1.5;z)/Gamma(1.5)
			y = eval.HypGeom(complexes(prec, 1), complexes(prec, 1.5), z, true, prec)
			x := eval.HypGeom(complexes(prec, 1), complexes(prec, 1.5), z, false, prec)
			x.Mul(x, eval.Gamma().RGamma(ball.ToComplex(1.5, prec), prec))
			require.True(t, y.Overlaps(x))
		})

		t.Run(testString("Pole", prec), func(t *testing.T) {
			z := ball.ToComplex(0.25, prec)

			y := eval.HypGeom(complexes(prec, 1, 1), complexes(prec, 0), z, false, prec)
			require.False(t, y.IsFinite())

			// 2F1(1,1;0;z)/Gamma(0) = z/(1-z)^2
			y = eval.HypGeom(complexes(prec, 1, 1), complexes(prec, 0), z, true, prec)
			requireClose(t, 4.0/9, y, 1e-15)
		})

		t.Run(testString("RegularizedPrecision", prec), func(t *testing.T) {
			z := ball.ToComplex(0.5, prec)
			for _, b := range []complex128{1.5, 0, -1} {
				lo := eval.HypGeom(complexes(prec, 1, 1), complexes(prec, b), z, true, prec)
				hi := eval.HypGeom(complexes(prec, 1, 1), complexes(prec, b), z, true, 2*prec)
				require.True(t, lo.Overlaps(hi))
				require.Greater(t, lo.Real().RelAccuracyBits(), int(prec)-20)
				require.Greater(t, hi.Real().RelAccuracyBits(), lo.Real().RelAccuracyBits())
			}
		})

		t.Run(testString("Jet", prec), func(t *testing.T) {
			// d/dz 1F1(a;b;z) = a/b 1F1(a+1;b+1;z)
			length := 3
			z0 := ball.ToComplex(0.75, prec)
			a, b := ball.ToComplex(0.5, prec), ball.ToComplex(2.5, prec)

			y := eval.HypGeomSeries(
				[]*poly.Poly{poly.NewConstant(a, length, prec)},
				[]*poly.Poly{poly.NewConstant(b, length, prec)},
				poly.NewVariable(z0, length, prec), false, length, prec)

			require.Equal(t, length, y.Len())

			f := eval.HypGeom([]*ball.Complex{a}, []*ball.Complex{b}, z0, false, prec)
			require.True(t, y.Coeffs[0].Overlaps(f))

			df := eval.HypGeom(complexes(prec, 1.5), complexes(prec, 3.5), z0, false, prec)
			df.Mul(df, ball.NewComplex(prec).Div(a, b))
			require.True(t, y.Coeffs[1].Overlaps(df))
			require.Greater(t, y.Coeffs[1].Real().RelAccuracyBits(), int(prec)-20)
		})
	}
}

func TestSeriesDirect(t *testing.T) {

	eval := NewEvaluator(DefaultParameters())

	for _, prec := range testPrecisions() {

		t.Run(testString("Scalar", prec), func(t *testing.T) {
			a := complexes(prec, 0.5, 0.25)
			b := complexes(prec, 1.5, 0.75)
			z := ball.ToComplex(0.375-0.25i, prec)

			y := eval.SeriesDirect(constants(1, prec, 0.5, 0.25), constants(1, prec, 1.5, 0.75), poly.NewConstant(z, 1, prec), false, AutoTerms, 1, prec)
			require.True(t, y.Coeffs[0].Overlaps(eval.Direct(a, b, z, AutoTerms, prec)))
		})

		t.Run(testString("Regularized", prec), func(t *testing.T) {
			// 1F1(1;-1;z)/Gamma(-1) at z = 1/2 + t: z^2 e^z
			length := 2
			z := poly.NewVariable(ball.ToComplex(0.5, prec), length, prec)
			y := eval.SeriesDirect(constants(length, prec, 1), constants(length, prec, -1, 1), z, true, AutoTerms, length, prec)

			// (z^2 e^z)' = (2z + z^2) e^z
			e := math.Exp(0.5)
			requireClose(t, complex(0.25*e, 0), y.Coeffs[0], 1e-14)
			requireClose(t, complex(1.25*e, 0), y.Coeffs[1], 1e-14)
		})

		t.Run(testString("RegularizedPrecision", prec), func(t *testing.T) {
			length := 2
			a, b := constants(length, prec, 0.5), constants(length, prec, -1, 1.5)
			z := poly.NewVariable(ball.ToComplex(0.25, prec), length, prec)

			lo := eval.SeriesDirect(a, b, z, true, AutoTerms, length, prec)
			hi := eval.SeriesDirect(a, b, z, true, AutoTerms, length, 2*prec)

			require.True(t, lo.Overlaps(hi))
			for i := 0; i < length; i++ {
				require.Greater(t, lo.Coeffs[i].Real().RelAccuracyBits(), int(prec)-20)
				require.Greater(t, hi.Coeffs[i].Real().RelAccuracyBits(), lo.Coeffs[i].Real().RelAccuracyBits())
			}
		})

		t.Run(testString("Terminating", prec), func(t *testing.T) {
			length := 3
			z := poly.NewVariable(ball.ToComplex(2, prec), length, prec)

			y := eval.SeriesDirect(constants(length, prec, -3), constants(length, prec, 2), z, false, AutoTerms, length, prec)
			require.True(t, y.IsFinite())
			require.True(t, y.Coeffs[0].Contains(ball.NewComplex(prec)))

			// z = t vanishes to order length
			z = poly.NewVariable(ball.NewComplex(prec), length, prec)
			y = eval.SeriesDirect(constants(length, prec, 0.5), constants(length, prec, 1.5), z, false, length, length, prec)
			require.True(t, y.Coeffs[0].Contains(ball.ToComplex(1, prec)))
			require.True(t, y.Coeffs[1].Overlaps(ball.ToComplex(big.NewRat(1, 3), prec)))
		})

		t.Run(testString("Degenerate", prec), func(t *testing.T) {
			require.Equal(t, 0, eval.SeriesDirect(nil, nil, poly.New(2, prec), false, AutoTerms, 0, prec).Len())

			z := poly.New(2, prec).SetIndeterminate()
			y := eval.SeriesDirect(nil, nil, z, false, AutoTerms, 2, prec)
			require.False(t, y.IsFinite())
		})
	}
}

func TestParameters(t *testing.T) {

	t.Run("Default", func(t *testing.T) {
		params := DefaultParameters()
		require.Equal(t, DefaultPolicy(), params.Policy())
		require.Equal(t, DefaultMemoCapacity, params.MemoCapacity())
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := NewParametersFromLiteral(ParametersLiteral{MemoCapacity: utils.Pointy(-1)})
		require.Error(t, err)

		pol := DefaultPolicy()
		pol.MinTerms = -1
		_, err = NewParametersFromLiteral(ParametersLiteral{Policy: &pol})
		require.Error(t, err)
	})

	t.Run("JSON", func(t *testing.T) {
		pol := DefaultPolicy()
		pol.Strategy = BS
		params, err := NewParametersFromLiteral(ParametersLiteral{Policy: &pol, MemoCapacity: utils.Pointy(16)})
		require.NoError(t, err)

		data, err := json.Marshal(params)
		require.NoError(t, err)

		var have Parameters
		require.NoError(t, json.Unmarshal(data, &have))
		require.True(t, params.Equal(have))
		require.True(t, cmp.Equal(params.ParametersLiteral(), have.ParametersLiteral()))

		// omitted fields take their default value
		require.NoError(t, json.Unmarshal([]byte(`{"MemoCapacity":2}`), &have))
		require.Equal(t, DefaultPolicy(), have.Policy())
		require.Equal(t, 2, have.MemoCapacity())
	})
}

func TestMemo(t *testing.T) {

	prec := uint(128)

	params, err := NewParametersFromLiteral(ParametersLiteral{MemoCapacity: utils.Pointy(2)})
	require.NoError(t, err)

	eval := NewEvaluator(params)
	memo := eval.Memo()
	require.NotNil(t, memo)

	a, b := complexes(prec, 0.5), complexes(prec, 1.5)
	z := ball.ToComplex(0.25, prec)

	y0 := eval.Direct(a, b, z, AutoTerms, prec)
	require.Equal(t, 1, memo.Len())
	require.Equal(t, 0, memo.Hits())

	y1 := eval.Direct(a, b, z, AutoTerms, prec)
	require.Equal(t, 1, memo.Hits())
	require.True(t, y0.Equal(y1))

	// the returned values are not shared with the cache
	y1.Mul(y1, z)
	y2 := eval.Direct(a, b, z, AutoTerms, prec)
	require.True(t, y0.Equal(y2))

	// upper and lower parameters are not interchangeable
	eval.Direct(b, a, z, AutoTerms, prec)
	require.Equal(t, 2, memo.Len())

	// eviction of the oldest result
	eval.Direct(a, b, z, AutoTerms, 2*prec)
	require.Equal(t, 2, memo.Len())

	ps := eval.SeriesDirect(constants(2, prec, 0.5), constants(2, prec, 1.5), poly.NewVariable(z, 2, prec), false, AutoTerms, 2, prec)
	pc := eval.SeriesDirect(constants(2, prec, 0.5), constants(2, prec, 1.5), poly.NewVariable(z, 2, prec), false, AutoTerms, 2, prec)
	require.True(t, ps.Equal(pc))

	memo.Reset()
	require.Equal(t, 0, memo.Len())
	require.Equal(t, 0, memo.Hits())

	require.Nil(t, NewEvaluator(DefaultParameters()).Memo())
}

func TestShallowCopy(t *testing.T) {

	prec := uint(128)

	params, err := NewParametersFromLiteral(ParametersLiteral{MemoCapacity: utils.Pointy(4)})
	require.NoError(t, err)

	eval := NewEvaluator(params)
	cpy := eval.ShallowCopy()

	require.True(t, eval.Parameters().Equal(cpy.Parameters()))
	require.NotSame(t, eval.Gamma(), cpy.Gamma())
	require.NotSame(t, eval.Memo(), cpy.Memo())

	a, b := complexes(prec, 0.5), complexes(prec, -1.5)
	z := ball.ToComplex(-0.75, prec)

	done := make(chan *ball.Complex)
	go func() {
		done <- cpy.HypGeom(a, b, z, true, prec)
	}()

	y := eval.HypGeom(a, b, z, true, prec)
	require.True(t, y.Equal(<-done))
}

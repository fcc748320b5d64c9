package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMinMax(t *testing.T) {
	require.Equal(t, 2, Min(2, 3))
	require.Equal(t, 3, Max(2, 3))
	require.Equal(t, 1.5, Min(1.5, 2.5))
	require.Equal(t, uint(7), Clamp(uint(9), 1, 7))
	require.Equal(t, -1, Clamp(-5, -1, 4))
	require.Equal(t, 4, Abs(-4))
}

func TestISqrt(t *testing.T) {
	for n := 0; n < 2000; n++ {
		r := ISqrt(n)
		require.LessOrEqual(t, r*r, n)
		require.Greater(t, (r+1)*(r+1), n)
	}
}

func TestSlices(t *testing.T) {
	s := []int{3, 1, 2}
	c := CloneSlice(s)
	c[0] = 5
	require.Equal(t, 3, s[0])
	c[0] = 3
	SortSliceFunc(c, func(a, b int) bool { return a < b })
	require.Equal(t, []int{1, 2, 3}, c)
	require.Equal(t, []int{3, 1, 2}, s, "should not modify input slice")
	require.Equal(t, []float64{6, 2, 4}, MapSlice(s, func(x int) float64 { return float64(2 * x) }))
}

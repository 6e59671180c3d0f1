package preprocess

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"
)

func randomData(n, dim int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dim)
		for j := range data[i] {
			data[i][j] = 5 + rng.NormFloat64()*3
		}
	}
	return data
}

func featureColumn(data [][]float64, j int) []float64 {
	col := make([]float64, len(data))
	for i := range data {
		col[i] = data[i][j]
	}
	return col
}

func TestStandardize(t *testing.T) {
	data := randomData(200, 4, 1)
	out := Standardize(data)

	require.Len(t, out, len(data))
	for j := 0; j < 4; j++ {
		mean, variance := stat.MeanVariance(featureColumn(out, j), nil)
		assert.InDelta(t, 0, mean, 1e-9, "feature %d mean", j)
		assert.InDelta(t, 1, variance, 1e-9, "feature %d variance", j)
	}

	// Input stays untouched.
	assert.InDelta(t, 5, stat.Mean(featureColumn(data, 0), nil), 1)
}

func TestStandardizeConstantFeature(t *testing.T) {
	data := [][]float64{
		{3.7, 1},
		{3.7, 2},
		{3.7, 3},
	}
	out := Standardize(data)
	// A constant feature yields exact zeros, not NaN or Inf.
	for i := range out {
		assert.Equal(t, 0.0, out[i][0])
	}
	mean, variance := stat.MeanVariance(featureColumn(out, 1), nil)
	assert.InDelta(t, 0, mean, 1e-9)
	assert.InDelta(t, 1, variance, 1e-9)
}

func TestStandardizeDegenerate(t *testing.T) {
	assert.Empty(t, Standardize(nil))

	// A single instance centers to zero without dividing by a zero
	// variance.
	out := Standardize([][]float64{{4, 5}})
	assert.Equal(t, [][]float64{{0, 0}}, out)
}

func TestStandardizeJoint(t *testing.T) {
	a := randomData(150, 3, 2)
	b := randomData(50, 3, 3)

	sa, sb := StandardizeJoint(a, b)
	require.Len(t, sa, len(a))
	require.Len(t, sb, len(b))

	// Joint scaling: statistics over the union are standard, the halves
	// individually need not be.
	joint := append(append([][]float64{}, sa...), sb...)
	for j := 0; j < 3; j++ {
		mean, variance := stat.MeanVariance(featureColumn(joint, j), nil)
		assert.InDelta(t, 0, mean, 1e-9)
		assert.InDelta(t, 1, variance, 1e-9)
	}

	// The halves were scaled with the same statistics as the union.
	union := append(append([][]float64{}, a...), b...)
	whole := Standardize(union)
	assert.Equal(t, whole[:len(a)], sa)
	assert.Equal(t, whole[len(a):], sb)
}

// Package preprocess provides feature standardization and dimensionality
// reduction for benchmark datasets.
package preprocess

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

const (
	// varianceFloor is the variance magnitude below which a feature is
	// treated as constant and divided by 1 instead of its standard
	// deviation.
	varianceFloor = 1e-15

	// zeroSnap is the magnitude below which standardized values are
	// snapped to exactly zero.
	zeroSnap = 1e-8
)

// Standardize scales a matrix so each feature has roughly zero mean and
// unit variance across instances. Constant features come out as all
// zeros rather than NaN. The input is not modified.
func Standardize(data [][]float64) [][]float64 {
	out := make([][]float64, len(data))
	if len(data) == 0 {
		return out
	}
	dim := len(data[0])
	for i := range data {
		out[i] = make([]float64, dim)
	}

	feature := make([]float64, len(data))
	for j := 0; j < dim; j++ {
		for i := range data {
			feature[i] = data[i][j]
		}
		mean, variance := stat.MeanVariance(feature, nil)

		denom := 1.0
		if math.Abs(variance) > varianceFloor {
			denom = math.Sqrt(variance)
		}
		for i := range data {
			v := (data[i][j] - mean) / denom
			if math.Abs(v) <= zeroSnap {
				v = 0
			}
			out[i][j] = v
		}
	}
	return out
}

// StandardizeJoint standardizes two matrices with shared statistics:
// they are concatenated, standardized once, and split back apart. Use it
// to scale a training and a testing set identically.
func StandardizeJoint(a, b [][]float64) ([][]float64, [][]float64) {
	joint := make([][]float64, 0, len(a)+len(b))
	joint = append(joint, a...)
	joint = append(joint, b...)
	scaled := Standardize(joint)
	return scaled[:len(a)], scaled[len(a):]
}

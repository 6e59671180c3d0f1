package preprocess

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ErrUnknownVariant is returned when a reduction variant name is not in
// the supported set.
var ErrUnknownVariant = errors.New("unknown reduction variant")

// Reducer projects instances to a lower-dimensional space, typically for
// visualization.
type Reducer interface {
	// Reduce maps each instance of data to dims features.
	Reduce(data [][]float64, dims int) ([][]float64, error)
}

// NewReducer returns the reducer for the named variant. Supported
// variants: "pca".
func NewReducer(variant string) (Reducer, error) {
	switch variant {
	case "pca":
		return pcaReducer{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}
}

// pcaReducer projects data onto its leading principal components.
type pcaReducer struct{}

func (pcaReducer) Reduce(data [][]float64, dims int) ([][]float64, error) {
	n := len(data)
	if n == 0 {
		return nil, errors.New("preprocess: no instances to reduce")
	}
	dim := len(data[0])
	if dims < 1 || dims > dim {
		return nil, fmt.Errorf("preprocess: cannot reduce %d features to %d", dim, dims)
	}

	m := mat.NewDense(n, dim, nil)
	for i, inst := range data {
		m.SetRow(i, inst)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(m, nil); !ok {
		return nil, errors.New("preprocess: principal component analysis failed")
	}
	var vec mat.Dense
	pc.VectorsTo(&vec)

	var proj mat.Dense
	proj.Mul(m, vec.Slice(0, dim, 0, dims))

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, dims)
		mat.Row(out[i], i, &proj)
	}
	return out, nil
}

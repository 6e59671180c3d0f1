package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instances(n, dim int, base float64) [][]float64 {
	data := make([][]float64, n)
	for i := range data {
		data[i] = make([]float64, dim)
		for j := range data[i] {
			data[i][j] = base + float64(i*dim+j)
		}
	}
	return data
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		normal  [][]float64
		medium  [][]float64
		wantErr bool
	}{
		{
			name:   "normal only",
			normal: instances(5, 3, 0),
		},
		{
			name:   "normal and medium",
			normal: instances(5, 3, 0),
			medium: instances(2, 3, 100),
		},
		{
			name:    "all empty",
			wantErr: true,
		},
		{
			name:    "dimension mismatch",
			normal:  instances(5, 3, 0),
			medium:  instances(2, 4, 100),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := New(tt.normal, nil, tt.medium, nil, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 3, d.Dim())
			assert.Equal(t, len(tt.normal), d.Count(Normal))
			assert.Equal(t, len(tt.medium), d.Count(Medium))
			assert.Equal(t, 0, d.Count(VeryHard))
		})
	}
}

func TestCatUncatRoundTrip(t *testing.T) {
	d, err := New(
		instances(4, 2, 0),
		instances(3, 2, 10),
		nil,
		instances(1, 2, 20),
		instances(2, 2, 30),
	)
	require.NoError(t, err)

	data, counts := d.Cat()
	assert.Equal(t, []int{4, 3, 0, 1, 2}, counts)
	assert.Len(t, data, 10)

	back, err := Uncat(data, counts)
	require.NoError(t, err)
	assert.Equal(t, d.Dim(), back.Dim())
	for _, g := range append([]Group{Normal}, AnomalyGroups...) {
		assert.Equal(t, d.Group(g), back.Group(g), "group %s", g)
	}
}

func TestCatOrder(t *testing.T) {
	normal := instances(2, 1, 0)
	easy := instances(1, 1, 10)
	veryHard := instances(1, 1, 20)

	d, err := New(normal, easy, nil, nil, veryHard)
	require.NoError(t, err)

	data, counts := d.Cat()
	require.Equal(t, []int{2, 1, 0, 0, 1}, counts)
	// Normal first, then the anomaly tiers in difficulty order.
	assert.Equal(t, normal[0], data[0])
	assert.Equal(t, normal[1], data[1])
	assert.Equal(t, easy[0], data[2])
	assert.Equal(t, veryHard[0], data[3])
}

func TestUncatErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   [][]float64
		counts []int
	}{
		{
			name:   "wrong count length",
			data:   instances(2, 2, 0),
			counts: []int{2},
		},
		{
			name:   "counts do not sum to data length",
			data:   instances(2, 2, 0),
			counts: []int{1, 0, 0, 0, 0},
		},
		{
			name:   "negative count",
			data:   instances(2, 2, 0),
			counts: []int{3, -1, 0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Uncat(tt.data, tt.counts)
			assert.Error(t, err)
		})
	}
}

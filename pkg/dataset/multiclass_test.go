package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubproblems(t *testing.T) {
	normal := instances(4, 2, 0)
	medium := instances(6, 2, 100)
	d, err := New(normal, nil, medium, nil, nil)
	require.NoError(t, err)

	labels := &Labels{
		Normal:  []string{"0", "0", "0", "0"},
		Anomaly: []string{"a", "a", "b", "c", "c", "c"},
	}

	subs, err := Subproblems(d, labels)
	require.NoError(t, err)
	require.Len(t, subs, 3)

	wantTags := []string{"0-a", "0-b", "0-c"}
	wantCounts := []int{2, 1, 3}
	for i, sub := range subs {
		assert.Equal(t, wantTags[i], sub.Tag)
		assert.Equal(t, wantCounts[i], sub.Dataset.Count(Medium))
		// Every subproblem keeps the full normal group.
		assert.Equal(t, normal, sub.Dataset.Group(Normal))
		// Other anomaly tiers are emptied.
		assert.Equal(t, 0, sub.Dataset.Count(Easy))
		assert.Equal(t, 0, sub.Dataset.Count(Hard))
		assert.Equal(t, 0, sub.Dataset.Count(VeryHard))
	}

	// Class c keeps exactly its own instances, in order.
	assert.Equal(t, [][]float64{medium[3], medium[4], medium[5]}, subs[2].Dataset.Group(Medium))
}

func TestSubproblemsBinarySource(t *testing.T) {
	d, err := New(instances(4, 2, 0), nil, instances(2, 2, 100), nil, nil)
	require.NoError(t, err)

	subs, err := Subproblems(d, nil)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "", subs[0].Tag)
	assert.Same(t, d, subs[0].Dataset)
}

func TestSubproblemsLabelMismatch(t *testing.T) {
	d, err := New(instances(4, 2, 0), nil, instances(2, 2, 100), nil, nil)
	require.NoError(t, err)

	_, err = Subproblems(d, &Labels{
		Normal:  []string{"0"},
		Anomaly: []string{"a", "a", "a"},
	})
	assert.Error(t, err)
}

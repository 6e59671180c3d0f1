// Package dataset provides containers and loaders for anomaly-detection
// benchmark datasets.
//
// A dataset holds one "normal" group and up to four anomaly groups of
// increasing difficulty. Each group is a 2D slice where each row is an
// instance and each column is a feature. Groups may be empty but all
// non-empty groups must share the same feature dimension.
package dataset

import (
	"errors"
	"fmt"
)

// Group identifies one of the five instance groups of a dataset.
type Group string

const (
	Normal   Group = "normal"
	Easy     Group = "easy"
	Medium   Group = "medium"
	Hard     Group = "hard"
	VeryHard Group = "very_hard"
)

// AnomalyGroups lists the anomaly difficulty tiers in their fixed order.
// Concatenation, reconstruction and difficulty pooling all iterate in
// this order.
var AnomalyGroups = []Group{Easy, Medium, Hard, VeryHard}

// allGroups is the full iteration order, normal first.
var allGroups = []Group{Normal, Easy, Medium, Hard, VeryHard}

// Dataset is an immutable collection of instance groups. Construct one
// with New or Uncat; derived datasets are always new objects.
type Dataset struct {
	dim    int
	groups map[Group][][]float64
}

// New builds a Dataset from the five groups. Empty groups may be nil or
// zero-length. The feature dimension is taken from the first non-empty
// group; every instance of every group must match it.
func New(normal, easy, medium, hard, veryHard [][]float64) (*Dataset, error) {
	groups := map[Group][][]float64{
		Normal:   normal,
		Easy:     easy,
		Medium:   medium,
		Hard:     hard,
		VeryHard: veryHard,
	}

	dim := 0
	for _, g := range allGroups {
		if len(groups[g]) > 0 {
			dim = len(groups[g][0])
			break
		}
	}
	if dim == 0 {
		return nil, errors.New("dataset: all groups are empty")
	}

	for _, g := range allGroups {
		for i, inst := range groups[g] {
			if len(inst) != dim {
				return nil, fmt.Errorf("dataset: group %s instance %d has %d features, want %d",
					g, i, len(inst), dim)
			}
		}
	}

	d := &Dataset{dim: dim, groups: make(map[Group][][]float64, len(allGroups))}
	for _, g := range allGroups {
		d.groups[g] = append([][]float64(nil), groups[g]...)
	}
	return d, nil
}

// Dim returns the feature dimension shared by all groups.
func (d *Dataset) Dim() int { return d.dim }

// Group returns the instances of group g. The returned slice must not be
// modified.
func (d *Dataset) Group(g Group) [][]float64 { return d.groups[g] }

// Count returns the number of instances in group g.
func (d *Dataset) Count(g Group) int { return len(d.groups[g]) }

// Cat concatenates all groups into a single matrix, normal first and the
// anomaly tiers in AnomalyGroups order. The returned counts hold the
// per-group instance counts in the same order, so Uncat can split the
// concatenation back apart losslessly.
func (d *Dataset) Cat() (data [][]float64, counts []int) {
	counts = make([]int, 0, len(allGroups))
	for _, g := range allGroups {
		data = append(data, d.groups[g]...)
		counts = append(counts, len(d.groups[g]))
	}
	return data, counts
}

// Uncat rebuilds a Dataset from the output of Cat.
func Uncat(data [][]float64, counts []int) (*Dataset, error) {
	if len(counts) != len(allGroups) {
		return nil, fmt.Errorf("dataset: got %d group counts, want %d", len(counts), len(allGroups))
	}
	total := 0
	for _, n := range counts {
		if n < 0 {
			return nil, fmt.Errorf("dataset: negative group count %d", n)
		}
		total += n
	}
	if total != len(data) {
		return nil, fmt.Errorf("dataset: counts sum to %d but data has %d instances", total, len(data))
	}

	parts := make([][][]float64, len(allGroups))
	off := 0
	for i, n := range counts {
		parts[i] = data[off : off+n]
		off += n
	}
	return New(parts[0], parts[1], parts[2], parts[3], parts[4])
}

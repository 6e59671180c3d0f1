package split

import (
	"fmt"
	"sort"
)

// Halve splits labeled data into two class-ratio-preserving halves,
// typically a validation and a test set. Each half receives half the
// negatives and half the positives, in their original within-class
// order; with odd class counts the remainder instances belong to
// neither half.
func Halve(x [][]float64, y []int) (firstX [][]float64, firstY []int, secondX [][]float64, secondY []int, err error) {
	if len(x) != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("split: %d instances but %d labels", len(x), len(y))
	}

	var neg, pos []int
	for i, label := range y {
		if label == 0 {
			neg = append(neg, i)
		} else {
			pos = append(pos, i)
		}
	}
	h0 := len(neg) / 2
	h1 := len(pos) / 2

	firstX, firstY = take(x, y, neg[:h0], pos[:h1])
	secondX, secondY = take(x, y, neg[h0:2*h0], pos[h1:2*h1])
	return firstX, firstY, secondX, secondY, nil
}

// take collects the instances at the given index sets, preserving their
// original relative order.
func take(x [][]float64, y []int, idx ...[]int) ([][]float64, []int) {
	var all []int
	for _, set := range idx {
		all = append(all, set...)
	}
	sort.Ints(all)

	outX := make([][]float64, len(all))
	outY := make([]int, len(all))
	for i, j := range all {
		outX[i] = x[j]
		outY[i] = y[j]
	}
	return outX, outY
}

// Package split partitions benchmark datasets into train, validation and
// test sets with controllable anomaly contamination.
package split

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hed1ad/anombench/pkg/dataset"
	"github.com/hed1ad/anombench/pkg/preprocess"
)

// ErrEmptyData is returned when the requested difficulty selection
// yields no anomalous instances.
var ErrEmptyData = errors.New("no anomalous instances")

// Result is one train/test partition. TrainX holds Ntr normal instances
// followed by Natr anomalous ones, in that order, with TrainY the
// aligned 0/1 labels (1 = anomalous); TestX/TestY likewise. No instance
// appears in both sets.
type Result struct {
	TrainX [][]float64
	TrainY []int
	TestX  [][]float64
	TestY  []int
}

type config struct {
	seed          int64
	seeded        bool
	difficulties  []dataset.Group
	testContam    float64
	hasTestContam bool
	standardize   bool
}

// Option configures a TrainTest call.
type Option func(*config)

// WithSeed makes the shuffle reproducible. Calls without a seed draw a
// fresh random source each time.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.seed = seed
		c.seeded = true
	}
}

// WithDifficulty restricts the anomaly pool to the given groups. By
// default all anomaly groups are pooled.
func WithDifficulty(groups ...dataset.Group) Option {
	return func(c *config) {
		c.difficulties = groups
	}
}

// WithTestContamination caps the test set's anomaly count at the given
// fraction of its normal count. Without it, all anomalies left over from
// training go to the test set.
func WithTestContamination(contamination float64) Option {
	return func(c *config) {
		c.testContam = contamination
		c.hasTestContam = true
	}
}

// WithStandardize standardizes the normal and anomalous instances
// jointly before splitting, so train and test share the same scaling.
func WithStandardize(standardize bool) Option {
	return func(c *config) {
		c.standardize = standardize
	}
}

// TrainTest splits a dataset into a training and a testing set.
//
// trainRatio is the fraction of normal instances assigned to training.
// trainContamination is the ratio of anomalous to normal instances in
// the training set; the anomaly count is capped at half the pool so the
// test set always keeps anomalies. Anomalies beyond what train and test
// consume are dropped.
func TrainTest(d *dataset.Dataset, trainRatio, trainContamination float64, opts ...Option) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	if trainRatio < 0 || trainRatio > 1 {
		return nil, fmt.Errorf("split: train ratio %v outside [0,1]", trainRatio)
	}
	if trainContamination < 0 || trainContamination > 1 {
		return nil, fmt.Errorf("split: train contamination %v outside [0,1]", trainContamination)
	}
	if cfg.hasTestContam && (cfg.testContam < 0 || cfg.testContam > 1) {
		return nil, fmt.Errorf("split: test contamination %v outside [0,1]", cfg.testContam)
	}

	anomalous, err := pool(d, cfg.difficulties)
	if err != nil {
		return nil, err
	}
	normal := d.Group(dataset.Normal)

	rng := newRand(cfg)
	normal = permute(normal, rng)
	anomalous = permute(anomalous, rng)

	if cfg.standardize {
		normal, anomalous = preprocess.StandardizeJoint(normal, anomalous)
	}

	n := len(normal)
	na := len(anomalous)
	ntr := int(trainRatio * float64(n))
	natr := int(float64(ntr) * trainContamination)
	if natr > na/2 {
		natr = na / 2
	}
	natst := na - natr
	if cfg.hasTestContam {
		if m := int(cfg.testContam * float64(n-ntr)); m < natst {
			natst = m
		}
	}

	res := &Result{
		TrainX: assemble(normal[:ntr], anomalous[:natr]),
		TrainY: labels(ntr, natr),
		TestX:  assemble(normal[ntr:], anomalous[natr:natr+natst]),
		TestY:  labels(n-ntr, natst),
	}
	return res, nil
}

// pool gathers the anomalous instances of the selected difficulty
// groups, in the fixed group order.
func pool(d *dataset.Dataset, difficulties []dataset.Group) ([][]float64, error) {
	selected := dataset.AnomalyGroups
	if len(difficulties) > 0 {
		requested := make(map[dataset.Group]bool, len(difficulties))
		for _, g := range difficulties {
			requested[g] = true
		}
		var filtered []dataset.Group
		for _, g := range dataset.AnomalyGroups {
			if requested[g] {
				filtered = append(filtered, g)
			}
		}
		selected = filtered
	}

	var out [][]float64
	for _, g := range selected {
		out = append(out, d.Group(g)...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w in difficulty selection %v", ErrEmptyData, selected)
	}
	return out, nil
}

func newRand(cfg config) *rand.Rand {
	if cfg.seeded {
		return rand.New(rand.NewSource(cfg.seed))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// permute returns the instances in a random order, sampled without
// replacement. The input is left untouched.
func permute(data [][]float64, rng *rand.Rand) [][]float64 {
	out := make([][]float64, len(data))
	for i, j := range rng.Perm(len(data)) {
		out[i] = data[j]
	}
	return out
}

func assemble(normal, anomalous [][]float64) [][]float64 {
	out := make([][]float64, 0, len(normal)+len(anomalous))
	out = append(out, normal...)
	out = append(out, anomalous...)
	return out
}

func labels(normal, anomalous int) []int {
	out := make([]int, normal+anomalous)
	for i := normal; i < len(out); i++ {
		out[i] = 1
	}
	return out
}

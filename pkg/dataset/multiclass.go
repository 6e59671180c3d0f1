package dataset

import (
	"fmt"
)

// Labels pairs the class identifiers of a multiclass source: one label
// per normal instance and one per anomalous instance. Multiclass sources
// keep all anomalies in the Medium group until they are expanded, so
// Anomaly must align with that group.
type Labels struct {
	Normal  []string
	Anomaly []string
}

// Subproblem is a binary anomaly-detection problem carved out of a
// multiclass dataset: the full normal group against the anomalies of a
// single class. Tag is "<normalLabel>-<class>", or "" for a source that
// was already binary.
type Subproblem struct {
	Dataset *Dataset
	Tag     string
}

// Subproblems expands a dataset into per-class binary subproblems. With
// nil labels the dataset is already a binary problem and is returned as
// the single untagged subproblem. Otherwise one subproblem is produced
// per distinct anomaly class, in order of first appearance, each keeping
// the full normal group and only the Medium instances of that class.
func Subproblems(d *Dataset, labels *Labels) ([]Subproblem, error) {
	if labels == nil {
		return []Subproblem{{Dataset: d, Tag: ""}}, nil
	}
	if len(labels.Anomaly) != d.Count(Medium) {
		return nil, fmt.Errorf("dataset: %d anomaly labels for %d medium instances",
			len(labels.Anomaly), d.Count(Medium))
	}
	if len(labels.Normal) == 0 {
		return nil, fmt.Errorf("dataset: multiclass source has no normal labels")
	}

	normalLabel := labels.Normal[0]
	medium := d.Group(Medium)

	var classes []string
	seen := make(map[string]bool)
	for _, c := range labels.Anomaly {
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}

	subs := make([]Subproblem, 0, len(classes))
	for _, c := range classes {
		var anomalies [][]float64
		for i, label := range labels.Anomaly {
			if label == c {
				anomalies = append(anomalies, medium[i])
			}
		}
		sub, err := New(d.Group(Normal), nil, anomalies, nil, nil)
		if err != nil {
			return nil, err
		}
		subs = append(subs, Subproblem{
			Dataset: sub,
			Tag:     normalLabel + "-" + c,
		})
	}
	return subs, nil
}

// Subclass selects one subproblem of a multiclass dataset, either by
// ordinal index or by a substring of the subproblem tag. Construct with
// ByIndex or ByName.
type Subclass struct {
	byName bool
	index  int
	name   string
}

// ByIndex selects the subproblem at the given position. Out-of-range
// indices are clamped to the valid range.
func ByIndex(i int) Subclass { return Subclass{index: i} }

// ByName selects the first subproblem whose tag contains the given
// substring.
func ByName(substr string) Subclass { return Subclass{byName: true, name: substr} }

package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrNotFound is returned when no directory on the search path matches a
// requested dataset name.
var ErrNotFound = errors.New("dataset not found")

// ErrSubclassNotFound is returned when a subclass name matches no
// subproblem of a multiclass dataset.
var ErrSubclassNotFound = errors.New("subclass not found")

// Loader locates named datasets on a search path and reads their groups
// and labels from disk.
//
// A dataset directory contains up to five group files (normal.txt,
// easy.txt, medium.txt, hard.txt, very_hard.txt), each a
// whitespace-delimited numeric table with one instance per line. A
// missing file yields an empty group. If normal_labels.txt exists, the
// dataset is a multiclass source and labels are read from
// normal_labels.txt and medium_labels.txt.
type Loader struct {
	path     string
	fallback string
	log      *zap.Logger
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFallbackPath sets a secondary root searched when the primary path
// yields no match.
func WithFallbackPath(path string) LoaderOption {
	return func(l *Loader) {
		l.fallback = path
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(log *zap.Logger) LoaderOption {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a Loader rooted at the given primary path.
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path: path,
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load resolves a dataset by name and reads it. Labels are nil unless
// the directory carries label files.
func (l *Loader) Load(name string) (*Dataset, *Labels, error) {
	dir, err := l.resolve(name)
	if err != nil {
		return nil, nil, err
	}
	l.log.Debug("loading dataset", zap.String("name", name), zap.String("dir", dir))

	groups := make(map[Group][][]float64, len(allGroups))
	for _, g := range allGroups {
		data, err := readTable(filepath.Join(dir, string(g)+".txt"))
		if err != nil {
			return nil, nil, fmt.Errorf("dataset %s: group %s: %w", name, g, err)
		}
		groups[g] = data
	}

	d, err := New(groups[Normal], groups[Easy], groups[Medium], groups[Hard], groups[VeryHard])
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", name, err)
	}

	labels, err := readLabelPair(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset %s: %w", name, err)
	}
	return d, labels, nil
}

// LoadSubclass loads one binary subproblem of a multiclass dataset,
// selected by index or tag substring. It returns the subproblem's
// dataset and tag.
func (l *Loader) LoadSubclass(name string, sel Subclass) (*Dataset, string, error) {
	d, labels, err := l.Load(name)
	if err != nil {
		return nil, "", err
	}
	subs, err := Subproblems(d, labels)
	if err != nil {
		return nil, "", err
	}
	if len(subs) == 0 {
		return nil, "", fmt.Errorf("%w: dataset %s has no subproblems", ErrSubclassNotFound, name)
	}

	if sel.byName {
		for _, sub := range subs {
			if strings.Contains(sub.Tag, sel.name) {
				return sub.Dataset, sub.Tag, nil
			}
		}
		return nil, "", fmt.Errorf("%w: %q in dataset %s", ErrSubclassNotFound, sel.name, name)
	}

	i := sel.index
	if i < 0 {
		i = 0
	}
	if i >= len(subs) {
		i = len(subs) - 1
	}
	return subs[i].Dataset, subs[i].Tag, nil
}

// List returns the names of all dataset directories on the search path,
// sorted and deduplicated across the primary and fallback roots.
func (l *Loader) List() ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, root := range []string{l.path, l.fallback} {
		if root == "" {
			continue
		}
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() && !seen[e.Name()] {
				seen[e.Name()] = true
				names = append(names, e.Name())
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// resolve finds the directory for a dataset name. Directory names are
// matched by exact prefix; among multiple matches (multiclass variants
// are suffixed "-<class>") the master directory with the fewest
// "-"-separated tokens wins. The fallback root is consulted only when
// the primary yields no match.
func (l *Loader) resolve(name string) (string, error) {
	for _, root := range []string{l.path, l.fallback} {
		if root == "" {
			continue
		}
		dir, ok := matchDir(root, name)
		if ok {
			return dir, nil
		}
	}
	return "", fmt.Errorf("%w: %q on path %s", ErrNotFound, name, l.path)
}

func matchDir(root, name string) (string, bool) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return "", false
	}
	var candidates []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), name) {
			candidates = append(candidates, e.Name())
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.Slice(candidates, func(i, j int) bool {
		ti := strings.Count(candidates[i], "-")
		tj := strings.Count(candidates[j], "-")
		if ti != tj {
			return ti < tj
		}
		return candidates[i] < candidates[j]
	})
	return filepath.Join(root, candidates[0]), true
}

// readTable reads a whitespace-delimited numeric table, one instance per
// line. A missing file yields an empty table; malformed lines are
// skipped.
func readTable(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var data [][]float64
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		row := make([]float64, len(fields))
		ok := true
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				ok = false
				break
			}
			row[i] = v
		}
		if !ok {
			continue
		}
		data = append(data, row)
	}
	return data, scanner.Err()
}

// readLabelPair reads normal and anomaly labels when the dataset is a
// multiclass source, signalled by the presence of normal_labels.txt.
func readLabelPair(dir string) (*Labels, error) {
	normalPath := filepath.Join(dir, "normal_labels.txt")
	if _, err := os.Stat(normalPath); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	normal, err := readLabels(normalPath)
	if err != nil {
		return nil, err
	}
	anomaly, err := readLabels(filepath.Join(dir, "medium_labels.txt"))
	if err != nil {
		return nil, err
	}
	return &Labels{Normal: normal, Anomaly: anomaly}, nil
}

// readLabels reads one label per line, canonicalizing numeric labels to
// their integer string form so "1", "1.0" and "1.00" name the same
// class.
func readLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		label := strings.TrimSpace(scanner.Text())
		if label == "" {
			continue
		}
		if v, err := strconv.ParseFloat(label, 64); err == nil {
			label = strconv.FormatInt(int64(v), 10)
		}
		labels = append(labels, label)
	}
	return labels, scanner.Err()
}

// Command anombench prepares anomaly-detection benchmark datasets:
// it lists datasets on a search path and materializes train/test splits
// with controllable contamination.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hed1ad/anombench/pkg/dataset"
	"github.com/hed1ad/anombench/pkg/split"
)

var (
	flagPath     string
	flagLodaPath string
)

func main() {
	root := &cobra.Command{
		Use:           "anombench",
		Short:         "Prepare anomaly-detection benchmark datasets",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flagPath, "path", ".", "primary dataset search path")
	root.PersistentFlags().StringVar(&flagLodaPath, "loda-path", "", "fallback dataset search path")

	root.AddCommand(listCmd(), splitCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newLoader(log *zap.Logger) *dataset.Loader {
	opts := []dataset.LoaderOption{dataset.WithLogger(log)}
	if flagLodaPath != "" {
		opts = append(opts, dataset.WithFallbackPath(flagLodaPath))
	}
	return dataset.NewLoader(flagPath, opts...)
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List datasets on the search path with their subproblems",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			loader := newLoader(log)
			names, err := loader.List()
			if err != nil {
				return err
			}
			for _, name := range names {
				d, labels, err := loader.Load(name)
				if err != nil {
					log.Warn("skipping unreadable dataset", zap.String("name", name), zap.Error(err))
					continue
				}
				subs, err := dataset.Subproblems(d, labels)
				if err != nil {
					log.Warn("skipping dataset", zap.String("name", name), zap.Error(err))
					continue
				}
				if len(subs) == 1 && subs[0].Tag == "" {
					fmt.Println(name)
					continue
				}
				tags := make([]string, len(subs))
				for i, sub := range subs {
					tags[i] = sub.Tag
				}
				fmt.Printf("%s [%s]\n", name, strings.Join(tags, " "))
			}
			return nil
		},
	}
}

func splitCmd() *cobra.Command {
	var (
		name          string
		subclass      string
		trainRatio    float64
		contamination float64
		testContam    float64
		seed          int64
		difficulty    []string
		standardize   bool
		outDir        string
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a dataset into train/test sets and write them out",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer log.Sync()

			loader := newLoader(log)

			var d *dataset.Dataset
			if subclass != "" {
				var tag string
				d, tag, err = loader.LoadSubclass(name, dataset.ByName(subclass))
				if err != nil {
					return err
				}
				log.Info("selected subproblem", zap.String("tag", tag))
			} else {
				d, _, err = loader.Load(name)
				if err != nil {
					return err
				}
			}

			opts := []split.Option{split.WithStandardize(standardize)}
			if cmd.Flags().Changed("seed") {
				opts = append(opts, split.WithSeed(seed))
			}
			if cmd.Flags().Changed("test-contamination") {
				opts = append(opts, split.WithTestContamination(testContam))
			}
			if len(difficulty) > 0 {
				groups := make([]dataset.Group, len(difficulty))
				for i, g := range difficulty {
					groups[i] = dataset.Group(g)
				}
				opts = append(opts, split.WithDifficulty(groups...))
			}

			res, err := split.TrainTest(d, trainRatio, contamination, opts...)
			if err != nil {
				return err
			}
			log.Info("split done",
				zap.String("dataset", name),
				zap.Int("train", len(res.TrainX)),
				zap.Int("test", len(res.TestX)))

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return err
			}
			if err := writeTable(filepath.Join(outDir, "train.txt"), res.TrainX); err != nil {
				return err
			}
			if err := writeLabels(filepath.Join(outDir, "train_labels.txt"), res.TrainY); err != nil {
				return err
			}
			if err := writeTable(filepath.Join(outDir, "test.txt"), res.TestX); err != nil {
				return err
			}
			return writeLabels(filepath.Join(outDir, "test_labels.txt"), res.TestY)
		},
	}

	cmd.Flags().StringVar(&name, "dataset", "", "dataset name")
	cmd.Flags().StringVar(&subclass, "subclass", "", "subclass tag substring for multiclass datasets")
	cmd.Flags().Float64Var(&trainRatio, "train-ratio", 0.8, "fraction of normal instances used for training")
	cmd.Flags().Float64Var(&contamination, "contamination", 0.0, "anomalous/normal ratio in the training set")
	cmd.Flags().Float64Var(&testContam, "test-contamination", 0.0, "anomalous/normal ratio in the testing set")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for a reproducible shuffle")
	cmd.Flags().StringSliceVar(&difficulty, "difficulty", nil, "anomaly groups to pool (easy,medium,hard,very_hard)")
	cmd.Flags().BoolVar(&standardize, "standardize", false, "standardize features before splitting")
	cmd.Flags().StringVar(&outDir, "out", "out", "output directory")
	if err := cmd.MarkFlagRequired("dataset"); err != nil {
		panic(err)
	}

	return cmd
}

func writeTable(path string, data [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, row := range data {
		for j, v := range row {
			if j > 0 {
				if _, err := fmt.Fprint(f, " "); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(f, "%g", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(f); err != nil {
			return err
		}
	}
	return nil
}

func writeLabels(path string, labels []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	for _, label := range labels {
		if _, err := fmt.Fprintln(f, label); err != nil {
			return err
		}
	}
	return nil
}

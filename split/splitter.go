// Package split partitions a feature table into disjoint training and
// testing subsets using a seeded permutation, so the same input, ratio, and
// seed always produce identical partitions.
package split

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/c360/featureflow/errors"
	"github.com/c360/featureflow/featuretable"
	"github.com/c360/featureflow/output/featurestore"
)

// Splitter partitions tables by a configured test ratio and persists the
// two subsets through the feature store writer.
type Splitter struct {
	ratio  float64
	seed   int64
	store  *featurestore.Writer
	logger *slog.Logger
}

// NewSplitter creates a splitter. The ratio is the test-set fraction and
// must lie in (0,1).
func NewSplitter(ratio float64, seed int64, store *featurestore.Writer, logger *slog.Logger) (*Splitter, error) {
	if ratio <= 0 || ratio >= 1 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "Splitter", "NewSplitter",
			fmt.Sprintf("split ratio must be in (0,1), got %v", ratio))
	}
	if store == nil {
		store = featurestore.NewWriter(logger)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Splitter{ratio: ratio, seed: seed, store: store, logger: logger}, nil
}

// Partition splits the table rows into train and test subsets. The test
// subset holds ceil(n*ratio) rows drawn from the front of the seeded
// permutation; the remaining rows form the training subset. The two are
// disjoint and together cover every input row exactly once.
func (s *Splitter) Partition(table *featuretable.Table) (train, test *featuretable.Table) {
	n := table.NumRows()
	rng := rand.New(rand.NewSource(s.seed))
	perm := rng.Perm(n)

	nTest := int(math.Ceil(float64(n) * s.ratio))
	test = table.Select(perm[:nTest])
	train = table.Select(perm[nTest:])
	return train, test
}

// SplitToFiles partitions the table and writes both subsets as CSV with
// header, creating directories as needed. Output is the side effect of the
// two files existing; failures propagate wrapped and are not retried.
func (s *Splitter) SplitToFiles(table *featuretable.Table, trainPath, testPath string) error {
	if table.NumRows() == 0 {
		return errors.WrapInvalid(errors.ErrEmptyTable, "Splitter", "SplitToFiles", "partition rows")
	}

	train, test := s.Partition(table)

	s.logger.Info("performed train-test split",
		"component", "splitter",
		"rows", table.NumRows(),
		"train_rows", train.NumRows(),
		"test_rows", test.NumRows(),
		"ratio", s.ratio,
		"seed", s.seed)

	if _, err := s.store.Write(train, trainPath); err != nil {
		return errors.Wrap(err, "Splitter", "SplitToFiles", "write training file")
	}
	if _, err := s.store.Write(test, testPath); err != nil {
		return errors.Wrap(err, "Splitter", "SplitToFiles", "write testing file")
	}

	return nil
}

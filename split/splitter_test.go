package split

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/featureflow/featuretable"
)

func tableOfSize(n int) *featuretable.Table {
	docs := make([]featuretable.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, featuretable.Document{
			{Name: "id", Value: fmt.Sprintf("row-%03d", i)},
			{Name: "feature", Value: i * 2},
		})
	}
	return featuretable.FromDocuments(docs)
}

func TestNewSplitter_RatioBounds(t *testing.T) {
	for _, ratio := range []float64{0, 1, -0.5, 1.5} {
		_, err := NewSplitter(ratio, 42, nil, nil)
		assert.Error(t, err, "ratio %v must be rejected", ratio)
	}

	_, err := NewSplitter(0.2, 42, nil, nil)
	assert.NoError(t, err)
}

func TestPartition_Sizes(t *testing.T) {
	tests := []struct {
		n        int
		ratio    float64
		wantTest int
	}{
		{10, 0.2, 2},
		{10, 0.25, 3}, // ceil(2.5)
		{100, 0.2, 20},
		{3, 0.5, 2}, // ceil(1.5)
		{1, 0.2, 1}, // ceil(0.2)
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("n=%d_r=%v", test.n, test.ratio), func(t *testing.T) {
			splitter, err := NewSplitter(test.ratio, 42, nil, nil)
			require.NoError(t, err)

			train, testSet := splitter.Partition(tableOfSize(test.n))
			assert.Equal(t, test.wantTest, testSet.NumRows())
			assert.Equal(t, test.n-test.wantTest, train.NumRows())
		})
	}
}

func TestPartition_DisjointAndExhaustive(t *testing.T) {
	splitter, err := NewSplitter(0.3, 42, nil, nil)
	require.NoError(t, err)

	table := tableOfSize(50)
	train, test := splitter.Partition(table)

	seen := make(map[string]int)
	for i := 0; i < train.NumRows(); i++ {
		id, _ := train.Cell(i, "id")
		seen[id]++
	}
	for i := 0; i < test.NumRows(); i++ {
		id, _ := test.Cell(i, "id")
		seen[id]++
	}

	require.Len(t, seen, 50, "every input row appears in exactly one subset")
	for id, count := range seen {
		assert.Equal(t, 1, count, "row %s appears %d times", id, count)
	}
}

func TestPartition_Reproducible(t *testing.T) {
	table := tableOfSize(40)

	render := func(seed int64) ([]byte, []byte) {
		splitter, err := NewSplitter(0.2, seed, nil, nil)
		require.NoError(t, err)
		train, test := splitter.Partition(table)

		var trainBuf, testBuf bytes.Buffer
		require.NoError(t, train.WriteCSV(&trainBuf))
		require.NoError(t, test.WriteCSV(&testBuf))
		return trainBuf.Bytes(), testBuf.Bytes()
	}

	train1, test1 := render(42)
	train2, test2 := render(42)
	assert.Equal(t, train1, train2, "same seed yields byte-identical training partition")
	assert.Equal(t, test1, test2, "same seed yields byte-identical testing partition")

	train3, _ := render(7)
	assert.NotEqual(t, train1, train3, "different seed yields a different partition")
}

func TestSplitToFiles(t *testing.T) {
	dir := t.TempDir()
	trainPath := filepath.Join(dir, "ingested", "train.csv")
	testPath := filepath.Join(dir, "ingested", "test.csv")

	splitter, err := NewSplitter(0.2, 42, nil, nil)
	require.NoError(t, err)

	require.NoError(t, splitter.SplitToFiles(tableOfSize(10), trainPath, testPath))

	trainData, err := os.ReadFile(trainPath)
	require.NoError(t, err)
	testData, err := os.ReadFile(testPath)
	require.NoError(t, err)

	assert.Equal(t, 9, bytes.Count(trainData, []byte("\n")), "header plus 8 train rows")
	assert.Equal(t, 3, bytes.Count(testData, []byte("\n")), "header plus 2 test rows")
}

func TestSplitToFiles_EmptyTable(t *testing.T) {
	splitter, err := NewSplitter(0.2, 42, nil, nil)
	require.NoError(t, err)

	err = splitter.SplitToFiles(featuretable.FromDocuments(nil), "train.csv", "test.csv")
	assert.Error(t, err)
}

package featurestore

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/featureflow/featuretable"
)

func sampleTable(n int) *featuretable.Table {
	docs := make([]featuretable.Document, 0, n)
	for i := 0; i < n; i++ {
		docs = append(docs, featuretable.Document{
			{Name: "a", Value: i},
			{Name: "b", Value: "x"},
		})
	}
	return featuretable.FromDocuments(docs)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWrite_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts", "feature_store", "phishing.csv")
	writer := NewWriter(nil)

	table := sampleTable(3)
	returned, err := writer.Write(table, path)
	require.NoError(t, err)
	assert.Same(t, table, returned, "write is pass-through")

	records := readCSV(t, path)
	require.Len(t, records, 4, "header plus three rows")
	assert.Equal(t, []string{"a", "b"}, records[0])
}

func TestWrite_OverwritesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	writer := NewWriter(nil)

	_, err := writer.Write(sampleTable(5), path)
	require.NoError(t, err)
	_, err = writer.Write(sampleTable(2), path)
	require.NoError(t, err)

	records := readCSV(t, path)
	assert.Len(t, records, 3, "second write fully replaces the first")
}

func TestWrite_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	writer := NewWriter(nil)
	// Parent "directory" is a regular file; MkdirAll must fail.
	_, err := writer.Write(sampleTable(1), filepath.Join(blocker, "out.csv"))
	require.Error(t, err)
}

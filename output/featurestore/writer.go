// Package featurestore provides the output component that persists a
// feature table to disk as delimited text.
package featurestore

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360/featureflow/errors"
	"github.com/c360/featureflow/featuretable"
)

// Writer persists feature tables as CSV files with a header row. Writes
// always replace any existing file at the target path.
type Writer struct {
	logger *slog.Logger
}

// NewWriter creates a feature store writer.
func NewWriter(logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{logger: logger}
}

// Write persists the table to path, creating the parent directory tree if
// absent, and returns the same table unchanged so calls can be chained.
func (w *Writer) Write(table *featuretable.Table, path string) (*featuretable.Table, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.WrapFatal(err, "Writer", "Write", "create output directory")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "Writer", "Write", "create output file")
	}

	if err := table.WriteCSV(f); err != nil {
		_ = f.Close()
		return nil, errors.Wrap(err, "Writer", "Write", "write table")
	}

	if err := f.Close(); err != nil {
		return nil, errors.WrapFatal(err, "Writer", "Write", "close output file")
	}

	w.logger.Info("table written",
		"component", "featurestore-writer",
		"path", path,
		"rows", table.NumRows(),
		"columns", table.NumColumns())

	return table, nil
}

package featuretable

import (
	"encoding/csv"
	"io"

	"github.com/c360/featureflow/errors"
)

// WriteCSV writes the table as delimited text with a header row. Output is
// deterministic for a given table: same columns, same rows, same bytes.
func (t *Table) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.columns); err != nil {
		return errors.WrapFatal(err, "Table", "WriteCSV", "write header")
	}
	for _, row := range t.rows {
		if err := cw.Write(row); err != nil {
			return errors.WrapFatal(err, "Table", "WriteCSV", "write row")
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.WrapFatal(err, "Table", "WriteCSV", "flush")
	}
	return nil
}

package ingest

import (
	"bytes"
	"fmt"
	"io"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// loadOptions keep every column as raw strings; the validator owns coercion.
// The header is loaded as an ordinary row because the frame loader renames
// repeated names, and Validate must see the names exactly as written.
func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(false),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	}
}

// ReadCSV reads comma-separated text with a header row into a Table.
func ReadCSV(r io.Reader) (Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Table{}, fmt.Errorf("read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return Table{}, ErrEmptyInput
	}

	df := dataframe.ReadCSV(bytes.NewReader(data), loadOptions()...)
	if df.Err != nil {
		return Table{}, fmt.Errorf("read csv: %w", df.Err)
	}
	return tableFromFrame(df)
}

// tableFromFrame splits a header-less string frame into the header row and
// the data rows. The first record holds the frame's generated column names.
func tableFromFrame(df dataframe.DataFrame) (Table, error) {
	records := df.Records()
	if len(records) < 2 {
		return Table{}, ErrEmptyInput
	}
	return Table{Header: records[1], Rows: records[2:]}, nil
}

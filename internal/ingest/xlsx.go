package ingest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	"github.com/j-veylop/gig-worker-hub/internal/logger"
)

// ReadXLSX reads the first worksheet of an Excel workbook into a Table.
// The first row is the header; fully blank rows are skipped.
func ReadXLSX(r io.Reader) (Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Table{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close workbook", "error", err)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, errors.New("open workbook: no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Table{}, fmt.Errorf("read worksheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return Table{}, ErrEmptyInput
	}

	// GetRows drops trailing empty cells, so rows are padded to the header width.
	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for i, row := range rows {
		if i > 0 && blank(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		records = append(records, padded)
	}

	if len(records) == 1 {
		return Table{Header: records[0]}, nil
	}

	df := dataframe.LoadRecords(records, loadOptions()...)
	if df.Err != nil {
		return Table{}, fmt.Errorf("read worksheet %q: %w", sheets[0], df.Err)
	}
	return tableFromFrame(df)
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

package sample

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/j-veylop/gig-worker-hub/internal/ingest"
	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// ExportColumns is the column order of the sample download.
var ExportColumns = ingest.FrameColumns

// WriteCSV writes rs as comma-separated text with a header row.
func WriteCSV(w io.Writer, rs *models.RecordSet) error {
	var records []models.Record
	if rs != nil {
		records = rs.Records
	}

	df := ingest.Frame(records)
	if df.Err != nil {
		return fmt.Errorf("build sample frame: %w", df.Err)
	}

	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("write sample csv: %w", err)
	}
	return nil
}

// ExportFile writes rs to path, creating parent directories.
func ExportFile(path string, rs *models.RecordSet) error {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create export directory: %w", err)
		}
	}

	f, err := os.Create(path) // #nosec G304 -- path comes from configuration
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}

	if err := WriteCSV(f, rs); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}

	logger.Info("sample data exported", "path", path, "rows", rs.Len())
	return nil
}

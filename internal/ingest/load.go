package ingest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/j-veylop/gig-worker-hub/internal/logger"
	"github.com/j-veylop/gig-worker-hub/internal/models"
)

// Format identifies a supported input file format.
type Format int

const (
	// FormatCSV is comma-separated text with a header row.
	FormatCSV Format = iota
	// FormatXLSX is an Excel workbook.
	FormatXLSX
)

// DetectFormat picks a reader from the file extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt", "":
		return FormatCSV, nil
	case ".xlsx", ".xlsm":
		return FormatXLSX, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// Load reads and validates input in the given format.
func Load(r io.Reader, format Format) (*models.RecordSet, error) {
	var (
		table Table
		err   error
	)
	switch format {
	case FormatXLSX:
		table, err = ReadXLSX(r)
	default:
		table, err = ReadCSV(r)
	}
	if err != nil {
		return nil, err
	}

	rs, err := Validate(table)
	if err != nil {
		return nil, err
	}
	rs.LoadedAt = time.Now()
	return rs, nil
}

// LoadFile reads and validates the file at path.
func LoadFile(path string) (*models.RecordSet, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("open data file: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("failed to close data file", "path", path, "error", err)
		}
	}()

	rs, err := Load(f, format)
	if err != nil {
		return nil, err
	}
	rs.Source = path

	logger.Info("data file loaded", "path", path, "rows", rs.Len())
	return rs, nil
}

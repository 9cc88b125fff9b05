package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

const sampleCSV = "Date, Platform ,Hours,Earnings,Miles\n" +
	"2023-01-01,Uber,4,120,30.5\n" +
	"2023-01-02,Lyft,3,95.25,12\n"

func TestReadCSV(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(table.Header) != 5 {
		t.Fatalf("header = %v, want 5 columns", table.Header)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if table.Rows[1][3] != "95.25" {
		t.Errorf("cell = %q, want 95.25", table.Rows[1][3])
	}
}

func TestReadCSV_BOMAndHeaderOnly(t *testing.T) {
	table, err := ReadCSV(strings.NewReader("\xEF\xBB\xBFdate,platform,hours,earnings\n"))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if table.Header[0] != "date" {
		t.Errorf("BOM not stripped: %q", table.Header[0])
	}
	if len(table.Rows) != 0 {
		t.Errorf("rows = %d, want 0", len(table.Rows))
	}
}

func TestLoad_DuplicateHeaderKeepsFirst(t *testing.T) {
	input := "date,platform,hours,earnings,date\n" +
		"2023-01-02,Uber,4,100,not a date\n"

	table, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	wantHeader := []string{"date", "platform", "hours", "earnings", "date"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Fatalf("Header = %v, want %v", table.Header, wantHeader)
	}

	rs, err := Load(strings.NewReader(input), FormatCSV)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	wantCols := []string{"date", "platform", "hours", "earnings", "date.1"}
	if !reflect.DeepEqual(rs.Columns, wantCols) {
		t.Errorf("Columns = %v, want %v", rs.Columns, wantCols)
	}
	if want := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC); rs.Records[0].Date != want {
		t.Errorf("Date = %v, want %v", rs.Records[0].Date, want)
	}
}

func TestLoad_MixedOffsetDatesBecomeCalendarDates(t *testing.T) {
	input := "date,platform,hours,earnings\n" +
		"2023-01-02,Uber,1,10\n" +
		"2023-01-03T09:00:00+05:30,Lyft,1,20\n" +
		"2023-01-10T09:00:00+05:00,Uber,1,40\n"

	rs, err := Load(strings.NewReader(input), FormatCSV)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []time.Time{
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
	}
	for i, w := range want {
		if rs.Records[i].Date != w {
			t.Errorf("record %d date = %v, want %v", i, rs.Records[i].Date, w)
		}
	}
}

func TestReadCSV_Empty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("  \n")); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestLoadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gigs.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o600); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if rs.Source != path {
		t.Errorf("Source = %q, want %q", rs.Source, path)
	}
	if rs.LoadedAt.IsZero() {
		t.Error("LoadedAt should be set")
	}
	if rs.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rs.Len())
	}
}

func TestLoadFile_XLSX(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Date", "Platform", "Hours", "Earnings"},
		{"2023-01-01", "Uber", 4, 120},
		{},
		{"2023-01-03", "DoorDash", 5, 140.5},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "gigs.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	_ = f.Close()

	rs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (blank row skipped)", rs.Len())
	}
	if rs.Records[1].Platform != "DoorDash" {
		t.Errorf("Platform = %q, want DoorDash", rs.Records[1].Platform)
	}
	if rs.Records[1].Earnings.String() != "140.5" {
		t.Errorf("Earnings = %s, want 140.5", rs.Records[1].Earnings)
	}
}

func TestReadXLSX_DuplicateHeader(t *testing.T) {
	f := excelize.NewFile()
	rows := [][]any{
		{"Date", "Platform", "Hours", "Earnings", "Date"},
		{"2023-01-01", "Uber", 4, 120, "x"},
	}
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cellRef, &row); err != nil {
			t.Fatal(err)
		}
	}

	path := filepath.Join(t.TempDir(), "dup.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	_ = f.Close()

	rs, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if rs.Columns[0] != "date" || rs.Columns[4] != "date.1" {
		t.Errorf("Columns = %v, want date first and date.1 last", rs.Columns)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadFile(filepath.Join(dir, "data.json")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(bad, []byte("date,platform\n2023-01-01,Uber\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFile(bad)
	var mce *MissingColumnsError
	if !errors.As(err, &mce) {
		t.Errorf("expected MissingColumnsError, got %v", err)
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"

	"github.com/j-veylop/gig-worker-hub/internal/analytics"
	"github.com/j-veylop/gig-worker-hub/internal/ingest"
	"github.com/j-veylop/gig-worker-hub/internal/sample"
	"github.com/j-veylop/gig-worker-hub/internal/ui/components"
)

const (
	cmdExportSample = "export-sample"
	cmdValidate     = "validate"
)

// runCommand runs a headless subcommand and returns the process exit code.
func runCommand(name string, args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintf(stderr, "Usage: gighub %s <path>\n", name)
		return 2
	}

	var err error
	switch name {
	case cmdExportSample:
		err = exportSample(args[0], stdout)
	case cmdValidate:
		err = validate(args[0], stdout)
	default:
		err = fmt.Errorf("unknown command %q", name)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func exportSample(path string, out io.Writer) error {
	rs := sample.Generate(sample.NewRand())
	if err := sample.ExportFile(path, rs); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Wrote %d sample records to %s\n", rs.Len(), path)
	return err
}

func validate(path string, out io.Writer) error {
	rs, err := ingest.LoadFile(path)
	if err != nil {
		return err
	}

	s := analytics.Summarize(rs)
	first, last := rs.DateRange()

	lines := []string{
		fmt.Sprintf("%s: valid", path),
		fmt.Sprintf("  records:   %d", rs.Len()),
		fmt.Sprintf("  range:     %s to %s", components.FormatDate(first), components.FormatDate(last)),
		fmt.Sprintf("  earnings:  %s", components.FormatMoney(s.TotalEarnings)),
		fmt.Sprintf("  hours:     %s", components.FormatHours(s.TotalHours)),
		fmt.Sprintf("  per hour:  %s", components.FormatMoney(s.HourlyRate)),
	}
	if s.HasMiles {
		lines = append(lines, fmt.Sprintf("  per mile:  %s", components.FormatMoney(s.EarningsPerMile)))
	}
	for _, p := range analytics.ByPlatform(rs) {
		lines = append(lines, fmt.Sprintf("  %-10s %s", ansi.Truncate(p.Platform, 10, "…"), components.FormatMoney(p.EarningsSum)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

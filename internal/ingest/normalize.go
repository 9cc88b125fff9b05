package ingest

import "strings"

// NormalizeColumn trims, lower-cases and underscore-joins a column name.
func NormalizeColumn(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// NormalizeColumns applies NormalizeColumn to every name. The result of
// normalizing an already normalized header is the same header.
func NormalizeColumns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = NormalizeColumn(n)
	}
	return out
}

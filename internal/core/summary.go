package core

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Summarize produces the descriptive report over the loaded table:
// source path, row/column counts, header list, and per-column
// non-empty and unique value counts (see [ColumnStats] for the case
// policy).
func (imp *Importer) Summarize() (*Summary, error) {
	imp.mu.RLock()
	defer imp.mu.RUnlock()

	if !imp.table.loaded() {
		return nil, &Error{Kind: KindNoData, Op: "summarize"}
	}

	sum := &Summary{
		SourcePath:  imp.table.SourcePath,
		RowCount:    len(imp.table.Rows),
		ColumnCount: len(imp.table.Headers),
		Headers:     append([]string(nil), imp.table.Headers...),
		Columns:     make([]ColumnStats, 0, len(imp.table.Headers)),
	}

	for _, h := range imp.table.Headers {
		stats := ColumnStats{Name: h}
		seen := make(map[string]struct{})
		for _, row := range imp.table.Rows {
			v := strings.TrimSpace(row[h])
			if v == "" {
				continue
			}
			stats.NonEmpty++
			seen[v] = struct{}{}
		}
		stats.Unique = len(seen)
		sum.Columns = append(sum.Columns, stats)
	}

	return sum, nil
}

// Render returns the canonical text form of the summary. Export and
// stream output share this single renderer, so exporting a summary
// and printing it produce byte-identical text.
func (s *Summary) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "CSV Import Summary\n")
	fmt.Fprintf(&b, "==================\n")
	fmt.Fprintf(&b, "Source file: %s\n", s.SourcePath)
	fmt.Fprintf(&b, "Total rows: %d\n", s.RowCount)
	fmt.Fprintf(&b, "Total columns: %d\n", s.ColumnCount)
	fmt.Fprintf(&b, "Columns: %s\n", strings.Join(s.Headers, ", "))
	b.WriteString("\n")

	for _, col := range s.Columns {
		fmt.Fprintf(&b, "Column '%s':\n", col.Name)
		fmt.Fprintf(&b, "  - Non-empty values: %d\n", col.NonEmpty)
		fmt.Fprintf(&b, "  - Unique values: %d\n", col.Unique)
		b.WriteString("\n")
	}

	return b.String()
}

// WriteTo writes the rendered summary to w.
func (s *Summary) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.Render())
	return int64(n), err
}

// Export writes the rendered summary to the file at path, fully
// replacing any existing content. Write failures are reported as
// [KindWrite], never raised.
func (s *Summary) Export(path string) error {
	if err := os.WriteFile(path, []byte(s.Render()), 0o644); err != nil {
		return &Error{Kind: KindWrite, Op: "export", Path: path, Err: err}
	}
	return nil
}

// ExportSummary summarizes the current table and writes the result
// to path in one step.
func (imp *Importer) ExportSummary(path string) error {
	sum, err := imp.Summarize()
	if err != nil {
		return err
	}
	return sum.Export(path)
}

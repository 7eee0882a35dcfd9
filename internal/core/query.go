package core

import "strings"

// Sample returns the first min(n, rowCount) rows along with how many
// rows were omitted. A non-positive n means [DefaultSampleRows].
// Formatting the result for display is the caller's concern.
func (imp *Importer) Sample(n int) (*SampleResult, error) {
	if n <= 0 {
		n = DefaultSampleRows
	}

	imp.mu.RLock()
	defer imp.mu.RUnlock()

	if !imp.table.loaded() {
		return nil, &Error{Kind: KindNoData, Op: "sample"}
	}

	count := n
	if count > len(imp.table.Rows) {
		count = len(imp.table.Rows)
	}

	res := &SampleResult{
		Headers: append([]string(nil), imp.table.Headers...),
		Rows:    append([]Row(nil), imp.table.Rows[:count]...),
	}
	if omitted := len(imp.table.Rows) - count; omitted > 0 {
		res.Truncated = true
		res.Omitted = omitted
	}
	return res, nil
}

// Filter returns the rows whose cell in the given column equals
// value, compared case-insensitively on both sides. Matching is
// exact after case folding: no substring matching, no extra
// trimming. Row order is preserved and the table is not mutated.
func (imp *Importer) Filter(column, value string) ([]Row, error) {
	imp.mu.RLock()
	defer imp.mu.RUnlock()

	if !imp.hasColumn(column) {
		return nil, &Error{Kind: KindUnknownColumn, Op: "filter", Column: column}
	}

	var matched []Row
	for _, row := range imp.table.Rows {
		if strings.EqualFold(row[column], value) {
			matched = append(matched, row)
		}
	}
	return matched, nil
}

// hasColumn reports whether the column is one of the loaded headers.
// Callers must hold imp.mu.
func (imp *Importer) hasColumn(column string) bool {
	for _, h := range imp.table.Headers {
		if h == column {
			return true
		}
	}
	return false
}

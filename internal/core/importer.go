package core

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// historyLimit caps the number of retained load reports.
const historyLimit = 32

// Importer loads one delimited file at a time and answers read-only
// queries against the loaded table.
//
// An Importer is safe for concurrent use: Load swaps the table in a
// single critical section, so readers never observe a half-updated
// table.
type Importer struct {
	mu      sync.RWMutex
	table   Table
	history []LoadReport
}

// NewImporter returns an empty importer. Callers own the instance;
// there is no package-level singleton.
func NewImporter() *Importer {
	return &Importer{}
}

// Load reads the file at path into memory, replacing any previously
// loaded table. On failure it returns an [*Error] and leaves the
// current table untouched.
func (imp *Importer) Load(path string, opts Options) (*LoadReport, error) {
	opts = opts.withDefaults()
	start := time.Now()

	rep, err := imp.load(path, opts, start)
	if err != nil {
		var ce *Error
		if errors.As(err, &ce) {
			return nil, err
		}
		// Anything unclassified must still come back as a reported
		// outcome, never as a crash.
		return nil, &Error{Kind: KindUnexpected, Op: "load", Path: path, Err: err}
	}
	return rep, nil
}

func (imp *Importer) load(path string, opts Options, start time.Time) (*LoadReport, error) {
	raw, err := readSource(path, opts.MaxBytes)
	if err != nil {
		return nil, err
	}

	decoded, err := decodeBytes(raw, opts.Encoding)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Op: "load", Path: path, Err: err}
	}
	decoded = trimBOM(decoded)

	delim := opts.Delimiter
	if delim == ',' {
		delim = sniffDelimiter(sniffSample(decoded))
	}

	headers, rows, err := parseRecords(decoded, delim)
	if err != nil {
		return nil, &Error{Kind: KindParse, Op: "load", Path: path, Err: err}
	}

	rep := LoadReport{
		LoadID:      uuid.NewString(),
		SourcePath:  path,
		RowCount:    len(rows),
		ColumnCount: len(headers),
		Delimiter:   string(delim),
		Encoding:    opts.Encoding,
		BytesRead:   int64(len(raw)),
		Duration:    time.Since(start),
		LoadedAt:    time.Now().UTC(),
	}

	imp.mu.Lock()
	imp.table = Table{SourcePath: path, Headers: headers, Rows: rows}
	imp.history = append(imp.history, rep)
	if len(imp.history) > historyLimit {
		imp.history = imp.history[len(imp.history)-historyLimit:]
	}
	imp.mu.Unlock()

	return &rep, nil
}

// readSource opens and fully reads the file, mapping OS-level
// failures onto the error taxonomy.
func readSource(path string, maxBytes int64) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: KindFileNotFound, Op: "load", Path: path, Err: err}
		}
		if errors.Is(err, fs.ErrPermission) {
			return nil, &Error{Kind: KindPermissionDenied, Op: "load", Path: path, Err: err}
		}
		return nil, &Error{Kind: KindUnexpected, Op: "load", Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &Error{Kind: KindParse, Op: "load", Path: path, Err: errors.New("path is a directory")}
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, &Error{Kind: KindUnexpected, Op: "load", Path: path,
			Err: fmt.Errorf("file too large: %d bytes exceeds limit of %d", info.Size(), maxBytes)}
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return nil, &Error{Kind: KindPermissionDenied, Op: "load", Path: path, Err: err}
		}
		return nil, &Error{Kind: KindUnexpected, Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &Error{Kind: KindUnexpected, Op: "load", Path: path, Err: err}
	}
	return data, nil
}

// parseRecords tokenizes the decoded content and shapes it into a
// header list plus rows keyed by header name.
//
// Cell text is kept verbatim: no whitespace trimming of headers or
// values, so " Art" and "Art" stay distinct cells.
//
// Field-count policy: short lines are padded with empty strings so
// every row's key set equals the header set; fields beyond the
// header count are dropped.
func parseRecords(data []byte, delim rune) ([]string, []Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("empty file: no header record")
	}

	headers := records[0]

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}

// Rows returns the current rows in file order. The returned slice is
// a copy; the rows themselves are shared and must not be mutated.
func (imp *Importer) Rows() []Row {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	out := make([]Row, len(imp.table.Rows))
	copy(out, imp.table.Rows)
	return out
}

// Headers returns the current column names in file order.
func (imp *Importer) Headers() []string {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	out := make([]string, len(imp.table.Headers))
	copy(out, imp.table.Headers)
	return out
}

// RowCount returns the number of loaded data rows.
func (imp *Importer) RowCount() int {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	return len(imp.table.Rows)
}

// ColumnCount returns the number of columns, zero before any load.
func (imp *Importer) ColumnCount() int {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	return len(imp.table.Headers)
}

// SourcePath returns the path of the currently loaded file, empty
// before any load.
func (imp *Importer) SourcePath() string {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	return imp.table.SourcePath
}

// History returns the reports of past successful loads, oldest first.
func (imp *Importer) History() []LoadReport {
	imp.mu.RLock()
	defer imp.mu.RUnlock()
	out := make([]LoadReport, len(imp.history))
	copy(out, imp.history)
	return out
}

// loaded reports whether a successful load has happened.
func (t *Table) loaded() bool { return len(t.Headers) > 0 }

package core

import "time"

// DefaultSampleRows is the number of rows returned by Sample when the
// caller does not specify a count.
const DefaultSampleRows = 5

// Row is one data record, keyed by header name. Its key set always
// equals the loaded header set: short lines are padded with empty
// strings and extra trailing fields are dropped during parsing.
// Callers must treat rows as read-only.
type Row map[string]string

// Table is the loaded dataset. The zero value is the empty table.
type Table struct {
	SourcePath string   // set once per successful load
	Headers    []string // ordered as in the file
	Rows       []Row    // ordered as in the file, header line excluded
}

// Options control how Load opens and parses a file.
type Options struct {
	// Delimiter is the field separator. Leaving the default comma
	// enables delimiter sniffing over the first 1024 decoded bytes.
	Delimiter rune

	// Encoding is the character encoding of the file, by IANA name
	// ("utf-8", "iso-8859-1", "windows-1252", ...). Empty means UTF-8.
	Encoding string

	// MaxBytes rejects files larger than this size. Zero means no limit.
	MaxBytes int64
}

// withDefaults fills unset options.
func (o Options) withDefaults() Options {
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.Encoding == "" {
		o.Encoding = "utf-8"
	}
	return o
}

// LoadReport describes one successful load.
type LoadReport struct {
	LoadID      string        `json:"loadId"`
	SourcePath  string        `json:"sourcePath"`
	RowCount    int           `json:"rowCount"`
	ColumnCount int           `json:"columnCount"`
	Delimiter   string        `json:"delimiter"` // the delimiter actually used
	Encoding    string        `json:"encoding"`
	BytesRead   int64         `json:"bytesRead"`
	Duration    time.Duration `json:"durationNs"`
	LoadedAt    time.Time     `json:"loadedAt"`
}

// SampleResult is the outcome of a Sample call.
type SampleResult struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`

	// Truncated reports whether rows were omitted, and Omitted how many.
	Truncated bool `json:"truncated"`
	Omitted   int  `json:"omitted"`
}

// ColumnStats holds the per-column figures of a summary.
//
// NonEmpty counts cells whose trimmed text is non-empty. Unique
// counts distinct trimmed values among those, compared
// case-sensitively ("A" and "a" are two values). This deliberately
// differs from Filter, which matches case-insensitively.
type ColumnStats struct {
	Name     string `json:"name"`
	NonEmpty int    `json:"nonEmpty"`
	Unique   int    `json:"unique"`
}

// Summary is the descriptive report over the loaded table. It is a
// pure data structure; rendering and export live on its methods.
type Summary struct {
	SourcePath  string        `json:"sourcePath"`
	RowCount    int           `json:"rowCount"`
	ColumnCount int           `json:"columnCount"`
	Headers     []string      `json:"headers"`
	Columns     []ColumnStats `json:"columns"`
}

package core

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// writeTempFile writes content to a fresh file under t.TempDir and
// returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func mustLoad(t *testing.T, imp *Importer, path string, opts Options) *LoadReport {
	t.Helper()
	rep, err := imp.Load(path, opts)
	if err != nil {
		t.Fatalf("Load(%s): %v", path, err)
	}
	return rep
}

func TestLoadCounts(t *testing.T) {
	path := writeTempFile(t, "students.csv",
		"name,major,gpa\nAnn,Computer Science,3.8\nBo,Art,3.2\n")

	imp := NewImporter()
	rep := mustLoad(t, imp, path, Options{})

	if rep.RowCount != 2 || rep.ColumnCount != 3 {
		t.Errorf("report = %d rows, %d cols, want 2 rows, 3 cols", rep.RowCount, rep.ColumnCount)
	}
	if imp.RowCount() != 2 {
		t.Errorf("RowCount() = %d, want 2", imp.RowCount())
	}
	if imp.ColumnCount() != 3 {
		t.Errorf("ColumnCount() = %d, want 3", imp.ColumnCount())
	}
	if got, want := imp.Headers(), []string{"name", "major", "gpa"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
	if imp.SourcePath() != path {
		t.Errorf("SourcePath() = %q, want %q", imp.SourcePath(), path)
	}
	if rep.LoadID == "" {
		t.Error("report has empty load ID")
	}
	if rep.Delimiter != "," {
		t.Errorf("report delimiter = %q, want %q", rep.Delimiter, ",")
	}

	rows := imp.Rows()
	if rows[0]["name"] != "Ann" || rows[1]["major"] != "Art" {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	imp := NewImporter()
	_, err := imp.Load(filepath.Join(t.TempDir(), "missing.csv"), Options{})
	if err == nil {
		t.Fatal("Load succeeded for missing file")
	}
	if KindOf(err) != KindFileNotFound {
		t.Errorf("kind = %v, want file_not_found", KindOf(err))
	}
	if len(imp.Headers()) != 0 {
		t.Errorf("Headers() = %v after failed load, want empty", imp.Headers())
	}
}

func TestLoadReplacesState(t *testing.T) {
	first := writeTempFile(t, "first.csv", "a,b\n1,2\n3,4\n")
	second := writeTempFile(t, "second.csv", "x,y,z\n5,6,7\n")

	imp := NewImporter()
	mustLoad(t, imp, first, Options{})
	mustLoad(t, imp, second, Options{})

	if got, want := imp.Headers(), []string{"x", "y", "z"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
	if imp.RowCount() != 1 {
		t.Errorf("RowCount() = %d, want 1", imp.RowCount())
	}
	if imp.Rows()[0]["x"] != "5" {
		t.Errorf("rows reflect first file after reload: %v", imp.Rows())
	}
}

func TestFailedLoadKeepsPriorState(t *testing.T) {
	good := writeTempFile(t, "good.csv", "a,b\n1,2\n")

	imp := NewImporter()
	mustLoad(t, imp, good, Options{})

	if _, err := imp.Load(filepath.Join(t.TempDir(), "gone.csv"), Options{}); err == nil {
		t.Fatal("Load succeeded for missing file")
	}

	if imp.RowCount() != 1 || imp.SourcePath() != good {
		t.Errorf("prior state lost after failed load: rows=%d path=%q", imp.RowCount(), imp.SourcePath())
	}
}

func TestLoadRowShaping(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []Row
	}{
		{
			name:    "short row padded with empty strings",
			content: "a,b,c\n1,2\n",
			want:    []Row{{"a": "1", "b": "2", "c": ""}},
		},
		{
			name:    "extra fields beyond header are dropped",
			content: "a,b\n1,2,3,4\n",
			want:    []Row{{"a": "1", "b": "2"}},
		},
		{
			name:    "quoted field with embedded delimiter",
			content: "a,b\n\"x, y\",2\n",
			want:    []Row{{"a": "x, y", "b": "2"}},
		},
		{
			name:    "leading spaces kept in headers and cells",
			content: "a, b\nAnn, Art\n",
			want:    []Row{{"a": "Ann", " b": " Art"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "data.csv", tt.content)
			imp := NewImporter()
			mustLoad(t, imp, path, Options{})
			if got := imp.Rows(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rows() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadSniffsDelimiter(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"semicolon", "a;b;c\n1;2;3\n4;5;6\n", ";"},
		{"tab", "a\tb\tc\n1\t2\t3\n", "\t"},
		{"pipe", "a|b|c\n1|2|3\n", "|"},
		{"comma stays comma", "a,b,c\n1,2,3\n", ","},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "data.txt", tt.content)
			imp := NewImporter()
			rep := mustLoad(t, imp, path, Options{})
			if rep.Delimiter != tt.want {
				t.Errorf("delimiter = %q, want %q", rep.Delimiter, tt.want)
			}
			if imp.ColumnCount() != 3 {
				t.Errorf("ColumnCount() = %d, want 3", imp.ColumnCount())
			}
		})
	}
}

func TestLoadExplicitDelimiterSkipsSniffing(t *testing.T) {
	// Semicolons dominate, but the caller asked for tab.
	path := writeTempFile(t, "data.txt", "a;x\tb;y\n1;2\t3;4\n")

	imp := NewImporter()
	rep := mustLoad(t, imp, path, Options{Delimiter: '\t'})

	if rep.Delimiter != "\t" {
		t.Errorf("delimiter = %q, want tab", rep.Delimiter)
	}
	if got, want := imp.Headers(), []string{"a;x", "b;y"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
}

func TestLoadSkipsBOM(t *testing.T) {
	path := writeTempFile(t, "bom.csv", "\xEF\xBB\xBFname,major\nAnn,Art\n")

	imp := NewImporter()
	mustLoad(t, imp, path, Options{})

	if got, want := imp.Headers(), []string{"name", "major"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Headers() = %v, want %v", got, want)
	}
}

func TestLoadEncoding(t *testing.T) {
	// "café" in latin-1: é is the single byte 0xE9, invalid as UTF-8.
	latin1 := "name,drink\nAnn,caf\xE9\n"

	t.Run("latin-1 decodes when requested", func(t *testing.T) {
		path := writeTempFile(t, "latin1.csv", latin1)
		imp := NewImporter()
		mustLoad(t, imp, path, Options{Encoding: "iso-8859-1"})
		if got := imp.Rows()[0]["drink"]; got != "café" {
			t.Errorf("cell = %q, want %q", got, "café")
		}
	})

	t.Run("strict utf-8 rejects latin-1 bytes", func(t *testing.T) {
		path := writeTempFile(t, "latin1.csv", latin1)
		imp := NewImporter()
		_, err := imp.Load(path, Options{})
		if KindOf(err) != KindDecode {
			t.Errorf("kind = %v (err=%v), want decode_error", KindOf(err), err)
		}
	})

	t.Run("unknown encoding name", func(t *testing.T) {
		path := writeTempFile(t, "plain.csv", "a,b\n1,2\n")
		imp := NewImporter()
		_, err := imp.Load(path, Options{Encoding: "klingon-7"})
		if KindOf(err) != KindDecode {
			t.Errorf("kind = %v (err=%v), want decode_error", KindOf(err), err)
		}
	})
}

func TestLoadParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "bad.csv", tt.content)
			imp := NewImporter()
			_, err := imp.Load(path, Options{})
			if KindOf(err) != KindParse {
				t.Errorf("kind = %v (err=%v), want parse_error", KindOf(err), err)
			}
		})
	}
}

func TestLoadDirectory(t *testing.T) {
	imp := NewImporter()
	_, err := imp.Load(t.TempDir(), Options{})
	if err == nil {
		t.Fatal("Load succeeded for a directory")
	}
}

func TestLoadMaxBytes(t *testing.T) {
	path := writeTempFile(t, "big.csv", "a,b\n1,2\n3,4\n")

	imp := NewImporter()
	_, err := imp.Load(path, Options{MaxBytes: 4})
	if err == nil {
		t.Fatal("Load succeeded beyond MaxBytes")
	}
	if msg := MapError(err); msg.Code != "FILE005" {
		t.Errorf("code = %s, want FILE005", msg.Code)
	}
}

func TestLoadPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	path := writeTempFile(t, "locked.csv", "a,b\n1,2\n")
	if err := os.Chmod(path, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	imp := NewImporter()
	_, err := imp.Load(path, Options{})
	if KindOf(err) != KindPermissionDenied {
		t.Errorf("kind = %v (err=%v), want permission_denied", KindOf(err), err)
	}
}

func TestHistory(t *testing.T) {
	first := writeTempFile(t, "first.csv", "a\n1\n")
	second := writeTempFile(t, "second.csv", "b\n2\n3\n")

	imp := NewImporter()
	if len(imp.History()) != 0 {
		t.Fatal("fresh importer has history")
	}

	mustLoad(t, imp, first, Options{})
	if _, err := imp.Load(filepath.Join(t.TempDir(), "nope.csv"), Options{}); err == nil {
		t.Fatal("Load succeeded for missing file")
	}
	mustLoad(t, imp, second, Options{})

	hist := imp.History()
	if len(hist) != 2 {
		t.Fatalf("history has %d entries, want 2 (failed loads must not be recorded)", len(hist))
	}
	if hist[0].SourcePath != first || hist[1].SourcePath != second {
		t.Errorf("history order wrong: %v", hist)
	}
}

package core

import (
	"errors"
	"fmt"
	"testing"
)

func TestMapErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"file not found", &Error{Kind: KindFileNotFound, Op: "load"}, "FILE001"},
		{"permission denied", &Error{Kind: KindPermissionDenied, Op: "load"}, "FILE002"},
		{"decode", &Error{Kind: KindDecode, Op: "load"}, "FILE003"},
		{"parse", &Error{Kind: KindParse, Op: "load"}, "FILE004"},
		{"unknown column", &Error{Kind: KindUnknownColumn, Op: "filter", Column: "minor"}, "QRY001"},
		{"no data", &Error{Kind: KindNoData, Op: "summarize"}, "QRY002"},
		{"write", &Error{Kind: KindWrite, Op: "export"}, "EXP001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := MapError(tt.err)
			if msg.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", msg.Code, tt.wantCode)
			}
			if msg.Message == "" || msg.Action == "" {
				t.Errorf("incomplete message: %+v", msg)
			}
		})
	}
}

func TestMapErrorWrapped(t *testing.T) {
	inner := &Error{Kind: KindNoData, Op: "sample"}
	wrapped := fmt.Errorf("handling request: %w", inner)

	if msg := MapError(wrapped); msg.Code != "QRY002" {
		t.Errorf("code = %s, want QRY002 through wrapping", msg.Code)
	}
}

func TestMapErrorPatterns(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"file too large", errors.New("file too large: 200 bytes exceeds limit of 100"), "FILE005"},
		{"context canceled", errors.New("context canceled"), "SYS002"},
		{"deadline", errors.New("context deadline exceeded"), "SYS003"},
		{"anything else", errors.New("wat"), "SYS001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if msg := MapError(tt.err); msg.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", msg.Code, tt.wantCode)
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	if msg := MapError(nil); msg.Code != "" {
		t.Errorf("MapError(nil) = %+v, want zero value", msg)
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: KindUnknownColumn, Op: "filter", Column: "minor"}
	if got := err.Error(); got != `filter: unknown_column "minor"` {
		t.Errorf("Error() = %q", got)
	}

	wrapped := &Error{Kind: KindParse, Op: "load", Path: "/tmp/x.csv", Err: errors.New("boom")}
	if got := wrapped.Error(); got != "load: parse_error (/tmp/x.csv): boom" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(wrapped, wrapped.Err) {
		t.Error("Unwrap does not expose the cause")
	}
}

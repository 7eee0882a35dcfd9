// Package core provides the business logic for delimited-file import.
//
// # Error Codes Reference
//
// This file maps importer errors to user-friendly messages with
// stable codes. Callers (the HTTP API and the interactive CLI) show
// the message and action; the code is for support reference.
//
// Codes are grouped by category:
//
//	FILE001 - File not found
//	FILE002 - Permission denied
//	FILE003 - Decode failure (wrong or unknown encoding)
//	FILE004 - Parse failure (malformed delimited content)
//	FILE005 - File too large
//
//	QRY001  - Unknown column in a filter
//	QRY002  - No data loaded yet
//
//	EXP001  - Summary export could not be written
//
//	SYS001  - Unexpected failure
package core

import "strings"

// UserMessage provides user-friendly error information with
// actionable guidance.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do about it
	Code    string // support reference code
}

// kindMessages maps each error kind to its user message.
var kindMessages = map[Kind]UserMessage{
	KindFileNotFound: {
		Message: "File not found",
		Action:  "Check the path and try again",
		Code:    "FILE001",
	},
	KindPermissionDenied: {
		Message: "Permission denied reading the file",
		Action:  "Check the file permissions",
		Code:    "FILE002",
	},
	KindDecode: {
		Message: "File could not be decoded",
		Action:  "Check the encoding option (for example iso-8859-1)",
		Code:    "FILE003",
	},
	KindParse: {
		Message: "File is not valid delimited data",
		Action:  "Ensure the file has a header line and consistent quoting",
		Code:    "FILE004",
	},
	KindUnknownColumn: {
		Message: "Column not found in the loaded data",
		Action:  "List the headers to see the available columns",
		Code:    "QRY001",
	},
	KindNoData: {
		Message: "No data loaded",
		Action:  "Load a file first",
		Code:    "QRY002",
	},
	KindWrite: {
		Message: "Summary could not be written",
		Action:  "Check the output path and its permissions",
		Code:    "EXP001",
	},
}

// errorPattern matches a substring of a technical error message to a
// user message, for failures that carry no Kind of their own.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// Patterns are matched case-insensitively with strings.Contains; the
// first match wins, so specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum allowed size",
			Action:  "Split the file or raise the size limit",
			Code:    "FILE005",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "SYS002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "SYS003",
		},
	},
}

// genericMessage is the fallback when nothing else matches.
var genericMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again; quote the error code if the problem persists",
	Code:    "SYS001",
}

// MapError converts any error into a user-facing message. Typed
// importer errors map by kind; everything else falls back to pattern
// matching on the error text.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if kind := KindOf(err); kind != KindUnexpected {
		if msg, ok := kindMessages[kind]; ok {
			return msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, p := range errorPatterns {
		if strings.Contains(text, p.pattern) {
			return p.msg
		}
	}

	return genericMessage
}

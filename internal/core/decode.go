package core

// decode.go handles character-encoding concerns for Load: resolving
// an encoding by its IANA name, decoding file bytes to UTF-8, and
// stripping the UTF-8 byte order mark that Windows exports commonly
// carry.

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// utf8BOM is the UTF-8 byte order mark (0xEF 0xBB 0xBF).
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// trimBOM removes a leading UTF-8 BOM if present.
func trimBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}

// isUTF8Name reports whether the encoding name means plain UTF-8,
// which takes the strict validation fast path.
func isUTF8Name(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return true
	}
	return false
}

// resolveEncoding looks up an encoding by IANA name ("iso-8859-1",
// "windows-1252", ...). Unknown names are a decode failure, not a
// silent fallback.
func resolveEncoding(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(strings.TrimSpace(name))
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	return enc, nil
}

// decodeBytes converts raw file bytes to UTF-8 text under the named
// encoding.
//
// UTF-8 input is validated strictly rather than sanitized: the
// caller asked for a specific encoding, so undecodable bytes are an
// error the user must see, not something to paper over with
// replacement characters.
func decodeBytes(data []byte, name string) ([]byte, error) {
	if isUTF8Name(name) {
		if !utf8.Valid(trimBOM(data)) {
			return nil, fmt.Errorf("content is not valid UTF-8")
		}
		return data, nil
	}

	enc, err := resolveEncoding(name)
	if err != nil {
		return nil, err
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode as %s: %w", name, err)
	}
	return decoded, nil
}

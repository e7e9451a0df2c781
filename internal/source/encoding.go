// Package source detects and decodes the byte encoding of program text
// before it ever reaches the lexer, so the tokenizer's rune decode loop can
// assume plain UTF-8 (spec's Input error taxonomy entry covers malformed
// UTF-8 *within* that stream, not encoding detection itself).
//
// Grounded on the teacher interpreter's internal/interp/encoding.go
// (detectAndDecodeFile/decodeUTF16), generalized from a file-reading
// function to one that operates on an in-memory byte slice. Its caller is
// the CLI's run command (reading a file); the REPL passes stdin lines to the
// lexer without it.
package source

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decode detects data's encoding from a byte-order mark and returns it as a
// UTF-8 string. UTF-8, UTF-16LE, and UTF-16BE (with BOM) are recognized;
// data with no BOM is assumed to already be UTF-8.
func Decode(data []byte) (string, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil

	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)

	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)

	case utf8.Valid(data):
		return string(data), nil

	default:
		return "", fmt.Errorf("source is not valid UTF-8 and carries no recognized byte-order mark")
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16: %w", err)
	}

	result := bytes.TrimPrefix(utf8Data, []byte{0xEF, 0xBB, 0xBF})
	result = bytes.TrimPrefix(result, []byte("\xef\xbb\xbf"))
	return string(result), nil
}

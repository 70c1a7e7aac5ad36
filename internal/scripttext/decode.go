// Package scripttext normalizes a script source buffer of unknown
// encoding to UTF-8 before it reaches the lexer. Scripts arrive from a
// file, a CoAP PUT payload, or a host API call, and may carry a
// byte-order mark, be plain UTF-8, or (most often on an embedded target
// configured for a Western-European locale) be unmarked Windows-1252.
package scripttext

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	// EncodingUTF8 requests plain UTF-8 (BOM optional, stripped if present).
	EncodingUTF8 = "UTF-8"
	// EncodingUTF16LE requests UTF-16 little-endian (BOM optional).
	EncodingUTF16LE = "UTF-16LE"
	// EncodingWindows1252 requests the single-byte Windows-1252 codepage.
	EncodingWindows1252 = "WINDOWS-1252"

	utf16CodeUnitSize = 2
)

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
)

// Decode converts data to a UTF-8 string ready for the lexer. A leading
// BOM always wins regardless of hint; otherwise hint selects the
// encoding ("" defaults to UTF-8). An unrecognized hint is an error
// rather than a silent fallback, since guessing wrong would corrupt
// string literals without a parse error to flag it.
func Decode(data []byte, hint string) (string, error) {
	if hasBOM(data, utf16LEBOM) {
		return utf16LEToString(data[len(utf16LEBOM):]), nil
	}
	if hasBOM(data, utf8BOM) {
		return string(data[len(utf8BOM):]), nil
	}

	switch strings.ToUpper(hint) {
	case "", EncodingUTF8:
		return string(data), nil
	case EncodingUTF16LE:
		return utf16LEToString(data), nil
	case EncodingWindows1252:
		return decodeWindows1252(data)
	default:
		return "", fmt.Errorf("scripttext: unsupported encoding %q", hint)
	}
}

func hasBOM(data, bom []byte) bool {
	return len(data) >= len(bom) && string(data[:len(bom)]) == string(bom)
}

func utf16LEToString(data []byte) string {
	if len(data)%utf16CodeUnitSize == 1 {
		data = data[:len(data)-1]
	}
	if len(data) == 0 {
		return ""
	}
	words := make([]uint16, len(data)/utf16CodeUnitSize)
	for i := range words {
		words[i] = binary.LittleEndian.Uint16(data[i*utf16CodeUnitSize:])
	}
	return string(utf16.Decode(words))
}

// decodeWindows1252 transcodes a single-byte Windows-1252 buffer to
// UTF-8, the codepage an embedded target's shell typically reports for
// an unmarked script file.
func decodeWindows1252(data []byte) (string, error) {
	reader := transform.NewReader(strings.NewReader(string(data)), charmap.Windows1252.NewDecoder())
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("scripttext: windows-1252 decode: %w", err)
	}
	return string(out), nil
}

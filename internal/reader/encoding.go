package reader

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Byte order marks recognized at the start of an input file
var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Encoding names reported by DetectBOM
const (
	EncodingUTF8    = "utf-8"
	EncodingUTF16LE = "utf-16le"
	EncodingUTF16BE = "utf-16be"
)

// DetectBOM returns the encoding announced by a leading byte order mark, or ""
// when data has none.
func DetectBOM(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return EncodingUTF8
	case bytes.HasPrefix(data, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, bomUTF16BE):
		return EncodingUTF16BE
	default:
		return ""
	}
}

// ToUTF8 converts text input to UTF-8 without a byte order mark.
//
// A UTF-8 BOM is stripped and UTF-16 input (LE or BE, announced by its BOM) is
// transcoded. Input without a BOM that is not valid UTF-8 is decoded with the
// legacy encoding sniffed from its content (e.g., Windows-1252 exports).
func ToUTF8(data []byte, contentType string) ([]byte, error) {
	if DetectBOM(data) != "" {
		// BOMOverride picks the decoder from the BOM and consumes it
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), decoder))
		if err != nil {
			return nil, fmt.Errorf("failed to transcode input: %w", err)
		}
		return out, nil
	}

	if utf8.Valid(data) {
		return data, nil
	}

	enc, name, _ := charset.DetermineEncoding(data, contentType)
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("failed to transcode input from %s: %w", name, err)
	}
	if !utf8.Valid(out) {
		return nil, fmt.Errorf("input is not valid text after decoding from %s", name)
	}
	return out, nil
}

// normalizeLineEndings converts CRLF and lone CR line endings to LF
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

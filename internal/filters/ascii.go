package filters

import (
	"bytes"
	"encoding/ascii85"
	"encoding/hex"
	"fmt"
)

// ASCIIHexDecode decodes hexadecimal data. Whitespace is ignored, '>' ends
// the data, and an odd final digit is padded with zero.
func ASCIIHexDecode(data []byte) ([]byte, error) {
	digits := make([]byte, 0, len(data))
	for _, c := range data {
		if c == '>' {
			break
		}
		if isWhitespace(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}

	out := make([]byte, len(digits)/2)
	if _, err := hex.Decode(out, digits); err != nil {
		return nil, fmt.Errorf("invalid hex data: %w", err)
	}
	return out, nil
}

// ASCII85Decode decodes Ascii85 data, honoring the "~>" end marker and an
// optional leading "<~".
func ASCII85Decode(data []byte) ([]byte, error) {
	data = bytes.TrimSpace(data)
	data = bytes.TrimPrefix(data, []byte("<~"))
	if end := bytes.Index(data, []byte("~>")); end >= 0 {
		data = data[:end]
	}

	out := make([]byte, 4*len(data)+4)
	n, _, err := ascii85.Decode(out, data, true)
	if err != nil {
		return nil, fmt.Errorf("invalid ascii85 data: %w", err)
	}
	return out[:n], nil
}

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

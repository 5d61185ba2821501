package form

import (
	"bytes"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/tsawler/pdfpage/core"
)

var utf16BOM = []byte{0xFE, 0xFF}

// EncodeTextString encodes s as a PDF text string. Printable ASCII is
// stored unchanged; any other text is encoded as UTF-16BE with a BOM.
func EncodeTextString(s string) (core.String, error) {
	if isPrintableASCII(s) {
		return core.String(s), nil
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder()
	out, err := enc.String(s)
	if err != nil {
		return "", err
	}
	return core.String(out), nil
}

// DecodeTextString decodes a PDF text string. Strings starting with the
// UTF-16BE byte order mark are decoded as UTF-16; everything else is read
// as a single-byte encoding, approximating PDFDocEncoding with Latin-1.
func DecodeTextString(s core.String) (string, error) {
	raw := []byte(s)
	if bytes.HasPrefix(raw, utf16BOM) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(raw)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
	if isPrintableASCII(string(raw)) {
		return string(raw), nil
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func isPrintableASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7E {
			return false
		}
	}
	return true
}

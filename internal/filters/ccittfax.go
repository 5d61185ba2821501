package filters

import (
	"bytes"
	"io"

	"golang.org/x/image/ccitt"
)

// CCITTFaxDecode decodes CCITT Group 3/4 fax data.
//
// Parameters follow the PDF decode parameters dictionary:
//   - K: <0 selects Group 4, otherwise Group 3
//   - Columns: width in pixels (default 1728)
//   - Rows: height in pixels (default 0, auto-detected)
//   - BlackIs1: maps to ccitt.Options.Invert
func CCITTFaxDecode(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1728)
	rows := getIntParam(params, "Rows", 0)
	if rows == 0 {
		rows = ccitt.AutoDetectHeight
	}

	sf := ccitt.Group3
	if getIntParam(params, "K", 0) < 0 {
		sf = ccitt.Group4
	}

	opts := &ccitt.Options{Invert: getBoolParam(params, "BlackIs1", false)}
	return io.ReadAll(ccitt.NewReader(bytes.NewReader(data), ccitt.MSB, sf, columns, rows, opts))
}

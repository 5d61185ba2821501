package filters

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
)

// Params represents decode parameters from PDF stream dictionaries.
// Common parameters include Predictor, Columns, Colors, and BitsPerComponent.
type Params map[string]interface{}

// FlateDecode decompresses zlib data and undoes a PNG predictor when the
// parameters ask for one.
func FlateDecode(data []byte, params Params) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib reader: %w", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("zlib decompression failed: %w", err)
	}

	predictor := getIntParam(params, "Predictor", 1)
	switch {
	case predictor == 1:
		return out, nil
	case predictor >= 10 && predictor <= 15:
		return unpredictPNG(out, params)
	default:
		return nil, fmt.Errorf("unsupported predictor: %d", predictor)
	}
}

// FlateEncode compresses data with zlib at the default level.
func FlateEncode(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zlib compression failed: %w", err)
	}
	return buf.Bytes(), nil
}

// unpredictPNG reverses PNG row filters. Every row is prefixed with its
// filter type byte (0 None, 1 Sub, 2 Up, 3 Average, 4 Paeth).
func unpredictPNG(data []byte, params Params) ([]byte, error) {
	columns := getIntParam(params, "Columns", 1)
	bpp := getIntParam(params, "Colors", 1)
	if bpc := getIntParam(params, "BitsPerComponent", 8); bpc != 8 {
		return nil, fmt.Errorf("PNG predictor only supports 8 bits per component, got %d", bpc)
	}

	stride := columns * bpp
	if stride <= 0 || len(data)%(stride+1) != 0 {
		return nil, fmt.Errorf("data size %d is not a multiple of row size %d", len(data), stride+1)
	}

	rows := len(data) / (stride + 1)
	out := make([]byte, rows*stride)
	prev := make([]byte, stride)
	for r := 0; r < rows; r++ {
		in := data[r*(stride+1):]
		kind, src := in[0], in[1:stride+1]
		cur := out[r*stride : (r+1)*stride]
		for i := range src {
			var left, upLeft byte
			if i >= bpp {
				left = cur[i-bpp]
				upLeft = prev[i-bpp]
			}
			up := prev[i]
			switch kind {
			case 0:
				cur[i] = src[i]
			case 1:
				cur[i] = src[i] + left
			case 2:
				cur[i] = src[i] + up
			case 3:
				cur[i] = src[i] + byte((int(left)+int(up))/2)
			case 4:
				cur[i] = src[i] + paeth(left, up, upLeft)
			default:
				return nil, fmt.Errorf("unknown PNG predictor: %d", kind)
			}
		}
		prev = cur
	}
	return out, nil
}

func paeth(a, b, c byte) byte {
	p := int(a) + int(b) - int(c)
	pa, pb, pc := abs(p-int(a)), abs(p-int(b)), abs(p-int(c))
	switch {
	case pa <= pb && pa <= pc:
		return a
	case pb <= pc:
		return b
	default:
		return c
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// getIntParam extracts an integer parameter, falling back to defaultValue
// when it is missing or not numeric.
func getIntParam(params Params, key string, defaultValue int) int {
	switch v := params[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return defaultValue
	}
}

// getBoolParam extracts a boolean parameter, falling back to defaultValue.
func getBoolParam(params Params, key string, defaultValue bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return defaultValue
}

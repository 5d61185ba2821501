package filters

import "fmt"

// Decode applies the named filter to data. Image codecs that are consumed
// in their encoded form (DCTDecode, JPXDecode) pass through unchanged.
func Decode(name string, data []byte, params Params) ([]byte, error) {
	switch name {
	case "FlateDecode", "Fl":
		return FlateDecode(data, params)
	case "ASCIIHexDecode", "AHx":
		return ASCIIHexDecode(data)
	case "ASCII85Decode", "A85":
		return ASCII85Decode(data)
	case "CCITTFaxDecode", "CCF":
		return CCITTFaxDecode(data, params)
	case "DCTDecode", "DCT", "JPXDecode":
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported filter: %s", name)
	}
}

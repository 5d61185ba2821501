// Package filters implements the stream filters a page needs to read and
// write its content streams and embedded profiles.
//
// # Supported Filters
//
// FlateDecode (zlib/deflate), with optional PNG predictors:
//
//	decoded, err := filters.FlateDecode(data, params)
//	encoded, err := filters.FlateEncode(decoded)
//
// ASCIIHexDecode and ASCII85Decode:
//
//	decoded, err := filters.ASCIIHexDecode(data)
//	decoded, err := filters.ASCII85Decode(data)
//
// CCITTFaxDecode for bi-level image data, backed by golang.org/x/image/ccitt.
//
// [Decode] dispatches on the PDF filter name, including the abbreviated
// inline-image forms such as "Fl" and "AHx".
package filters

package core

import (
	"fmt"

	"github.com/tsawler/pdfpage/internal/filters"
)

// Decode returns the stream data with every filter named in /Filter undone,
// in order. A stream without a filter returns its raw data.
func (s *Stream) Decode() ([]byte, error) {
	names, params, err := s.filterChain()
	if err != nil {
		return nil, err
	}

	data := s.Data
	for i, name := range names {
		data, err = filters.Decode(string(name), data, dictToParams(params[i]))
		if err != nil {
			return nil, fmt.Errorf("filter %d (%s) failed: %w", i, name, err)
		}
	}
	return data, nil
}

// SetData replaces the stream payload. When compress is true the data is
// flate encoded and /Filter is set accordingly; otherwise any filter entries
// are dropped so the payload is read back verbatim.
func (s *Stream) SetData(data []byte, compress bool) error {
	if s.Dict == nil {
		s.Dict = Dict{}
	}
	s.Dict.Delete("DecodeParms")

	if !compress {
		s.Dict.Delete("Filter")
		s.Data = data
		s.Dict.Set("Length", Int(len(data)))
		return nil
	}

	encoded, err := filters.FlateEncode(data)
	if err != nil {
		return err
	}
	s.Dict.Set("Filter", Name("FlateDecode"))
	s.Data = encoded
	s.Dict.Set("Length", Int(len(encoded)))
	return nil
}

// filterChain normalizes /Filter and /DecodeParms into parallel slices.
func (s *Stream) filterChain() ([]Name, []Dict, error) {
	filterObj := s.Dict.Get("Filter")
	paramsObj := s.Dict.Get("DecodeParms")

	switch f := filterObj.(type) {
	case nil:
		return nil, nil, nil
	case Name:
		return []Name{f}, []Dict{paramsObjToDict(paramsObj)}, nil
	case Array:
		names := make([]Name, len(f))
		params := make([]Dict, len(f))
		for i, elem := range f {
			name, ok := elem.(Name)
			if !ok {
				return nil, nil, fmt.Errorf("filter %d is not a name: %T", i, elem)
			}
			names[i] = name
			if arr, ok := paramsObj.(Array); ok {
				params[i] = paramsObjToDict(arr.Get(i))
			} else {
				params[i] = paramsObjToDict(paramsObj)
			}
		}
		return names, params, nil
	default:
		return nil, nil, fmt.Errorf("invalid Filter type: %T", filterObj)
	}
}

// paramsObjToDict returns obj as a Dict, or nil for Null and anything else.
func paramsObjToDict(obj Object) Dict {
	dict, _ := obj.(Dict)
	return dict
}

// dictToParams converts a Dict to filters.Params, translating PDF object
// types to Go primitives.
func dictToParams(dict Dict) filters.Params {
	if dict == nil {
		return nil
	}

	params := make(filters.Params, len(dict))
	for k, v := range dict {
		switch obj := v.(type) {
		case Int:
			params[k] = int(obj)
		case Real:
			params[k] = float64(obj)
		case Bool:
			params[k] = bool(obj)
		case String:
			params[k] = string(obj)
		case Name:
			params[k] = string(obj)
		default:
			params[k] = v
		}
	}
	return params
}

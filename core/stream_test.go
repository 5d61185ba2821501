package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamDecodeNoFilter(t *testing.T) {
	s := NewStream([]byte("0 0 m 10 10 l S"))

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("0 0 m 10 10 l S"), decoded)
}

func TestStreamSetDataCompressed(t *testing.T) {
	s := NewStream(nil)
	require.NoError(t, s.SetData([]byte("BT ET"), true))

	name, ok := s.Dict.GetName("Filter")
	require.True(t, ok)
	assert.Equal(t, Name("FlateDecode"), name)
	length, _ := s.Dict.GetInt("Length")
	assert.Equal(t, Int(len(s.Data)), length)

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("BT ET"), decoded)
}

func TestStreamSetDataPlainDropsFilter(t *testing.T) {
	s := &Stream{Dict: Dict{"Filter": Name("FlateDecode"), "DecodeParms": Dict{"Predictor": Int(12)}}}
	require.NoError(t, s.SetData([]byte("q Q"), false))

	assert.False(t, s.Dict.Has("Filter"))
	assert.False(t, s.Dict.Has("DecodeParms"))

	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, []byte("q Q"), decoded)
}

func TestStreamDecodeFilterChain(t *testing.T) {
	inner := NewStream(nil)
	require.NoError(t, inner.SetData([]byte("chained"), true))

	hex := make([]byte, 0, len(inner.Data)*2+1)
	const digits = "0123456789ABCDEF"
	for _, b := range inner.Data {
		hex = append(hex, digits[b>>4], digits[b&0x0F])
	}
	hex = append(hex, '>')

	s := &Stream{
		Dict: Dict{"Filter": Array{Name("AHx"), Name("Fl")}, "DecodeParms": Array{Null{}, Null{}}},
		Data: hex,
	}
	decoded, err := s.Decode()
	require.NoError(t, err)
	assert.Equal(t, "chained", string(decoded))
}

func TestStreamDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		filter Object
		want   string
	}{
		{"unknown filter", Name("LZWDecode"), "unsupported filter"},
		{"non-name in chain", Array{Int(1)}, "is not a name"},
		{"invalid filter type", Int(3), "invalid Filter type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{Dict: Dict{"Filter": tt.filter}, Data: []byte("x")}
			_, err := s.Decode()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDictToParams(t *testing.T) {
	assert.Nil(t, dictToParams(nil))

	params := dictToParams(Dict{
		"Predictor": Int(12),
		"Scale":     Real(0.5),
		"BlackIs1":  Bool(true),
		"Mode":      Name("Fast"),
	})
	assert.Equal(t, 12, params["Predictor"])
	assert.Equal(t, 0.5, params["Scale"])
	assert.Equal(t, true, params["BlackIs1"])
	assert.Equal(t, "Fast", params["Mode"])
}

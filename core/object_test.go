package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectType(t *testing.T) {
	tests := []struct {
		typ  ObjectType
		want string
	}{
		{ObjNull, "Null"},
		{ObjBool, "Bool"},
		{ObjInt, "Int"},
		{ObjReal, "Real"},
		{ObjString, "String"},
		{ObjName, "Name"},
		{ObjArray, "Array"},
		{ObjDict, "Dict"},
		{ObjStream, "Stream"},
		{ObjIndirect, "IndirectRef"},
		{ObjectType(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestScalarStrings(t *testing.T) {
	assert.Equal(t, "null", Null{}.String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "-42", Int(-42).String())
	assert.Equal(t, "0.5", Real(0.5).String())
	assert.Equal(t, "/MediaBox", Name("MediaBox").String())
	assert.Equal(t, "5 0 R", IndirectRef{Number: 5}.String())
}

func TestNumberValue(t *testing.T) {
	n, ok := NumberValue(Int(612))
	require.True(t, ok)
	assert.Equal(t, 612.0, n)

	n, ok = NumberValue(Real(10.5))
	require.True(t, ok)
	assert.Equal(t, 10.5, n)

	_, ok = NumberValue(Name("x"))
	assert.False(t, ok)
	_, ok = NumberValue(nil)
	assert.False(t, ok)
}

func TestArray(t *testing.T) {
	arr := Array{Int(0), Real(1.5), Name("Pages")}

	assert.Equal(t, 3, arr.Len())
	assert.Equal(t, "[0 1.5 /Pages]", arr.String())
	assert.Nil(t, arr.Get(-1))
	assert.Nil(t, arr.Get(3))

	n, ok := arr.GetNumber(1)
	require.True(t, ok)
	assert.Equal(t, 1.5, n)

	name, ok := arr.GetName(2)
	require.True(t, ok)
	assert.Equal(t, Name("Pages"), name)

	assert.True(t, arr.Set(0, Int(7)))
	assert.False(t, arr.Set(9, Int(7)))
	assert.Equal(t, Int(7), arr[0])
}

func TestDict(t *testing.T) {
	d := Dict{
		"Type":     Name("Page"),
		"Rotate":   Int(90),
		"UserUnit": Real(1.5),
		"Kids":     Array{},
		"Res":      Dict{},
		"Parent":   IndirectRef{Number: 2},
		"T":        String("field"),
	}

	assert.True(t, d.IsType("Page"))
	assert.False(t, d.IsType("Pages"))

	rot, ok := d.GetInt("Rotate")
	require.True(t, ok)
	assert.Equal(t, Int(90), rot)

	unit, ok := d.GetNumber("UserUnit")
	require.True(t, ok)
	assert.Equal(t, 1.5, unit)

	kids, ok := d.GetArray("Kids")
	require.True(t, ok)
	assert.Empty(t, kids)
	assert.True(t, d.Has("Kids"), "an empty array is still present")

	_, ok = d.GetDict("Res")
	assert.True(t, ok)

	ref, ok := d.GetIndirectRef("Parent")
	require.True(t, ok)
	assert.Equal(t, 2, ref.Number)

	s, ok := d.GetString("T")
	require.True(t, ok)
	assert.Equal(t, String("field"), s)

	_, ok = d.GetName("Rotate")
	assert.False(t, ok)

	d.Set("Count", Int(1))
	assert.True(t, d.Has("Count"))
	d.Delete("Count")
	assert.False(t, d.Has("Count"))
	assert.Len(t, d.Keys(), 7)
}

func TestDictStringIsSorted(t *testing.T) {
	d := Dict{"b": Int(2), "a": Int(1)}
	assert.Equal(t, "<</a 1 /b 2>>", d.String())
}

func TestIndirectRefIsZero(t *testing.T) {
	assert.True(t, IndirectRef{}.IsZero())
	assert.False(t, IndirectRef{Number: 1}.IsZero())
}

func TestError(t *testing.T) {
	err := NewError("Page.SetRotation", ErrValueOutOfRange)
	assert.Equal(t, "pdfpage.Page.SetRotation: pdfpage: value out of range", err.Error())
	assert.True(t, errors.Is(err, ErrValueOutOfRange))

	wrapped := fmt.Errorf("outer: %w", Errorf("Page.PageNumber", ErrBrokenFile, "loop after %d levels", 1001))
	assert.ErrorIs(t, wrapped, ErrBrokenFile)
	assert.Contains(t, wrapped.Error(), "loop after 1001 levels")

	var pe *Error
	require.ErrorAs(t, wrapped, &pe)
	assert.Equal(t, "Page.PageNumber", pe.Op)

	assert.Equal(t, "pdfpage.Op: unknown error", (&Error{Op: "Op"}).Error())
}

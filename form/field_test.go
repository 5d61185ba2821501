package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/pdfpage/core"
	"github.com/tsawler/pdfpage/objects"
)

type testRegistry struct {
	catalog core.Dict
	store   *objects.Store
}

func (r *testRegistry) Catalog() core.Dict { return r.catalog }
func (r *testRegistry) Objects() *objects.Store { return r.store }

func newRegistry() *testRegistry {
	store := objects.NewStore()
	catalog := core.Dict{"Type": core.Name("Catalog")}
	store.Allocate(catalog)
	return &testRegistry{catalog: catalog, store: store}
}

func newWidget(reg *testRegistry) (core.Dict, core.IndirectRef) {
	widget := core.Dict{"Type": core.Name("Annot"), "Subtype": core.Name("Widget")}
	return widget, reg.store.Allocate(widget)
}

func acroFormFields(t *testing.T, reg *testRegistry) core.Array {
	t.Helper()
	acroForm, err := reg.store.ResolveDict(reg.catalog["AcroForm"])
	require.NoError(t, err)
	obj, err := reg.store.Resolve(acroForm["Fields"])
	require.NoError(t, err)
	return obj.(core.Array)
}

func TestCreateFieldTypes(t *testing.T) {
	tests := []struct {
		ft     FieldType
		wantFT core.Name
		wantFf core.Object
	}{
		{PushButton, "Btn", core.Int(flagPushButton)},
		{CheckBox, "Btn", nil},
		{RadioButton, "Btn", core.Int(flagRadio)},
		{TextBox, "Tx", nil},
		{ComboBox, "Ch", core.Int(flagCombo)},
		{ListBox, "Ch", nil},
		{Signature, "Sig", nil},
	}

	for _, tt := range tests {
		t.Run(tt.ft.String(), func(t *testing.T) {
			reg := newRegistry()
			widget, ref := newWidget(reg)

			field, err := Create(reg, "field", widget, ref, tt.ft)
			require.NoError(t, err)

			assert.Equal(t, tt.wantFT, widget["FT"])
			assert.Equal(t, tt.wantFf, widget["Ff"])
			assert.Equal(t, tt.ft, field.Type())
			assert.Equal(t, ref, field.Ref())
			assert.Equal(t, core.Array{ref}, acroFormFields(t, reg))
		})
	}
}

func TestCreateAppendsToExistingFields(t *testing.T) {
	reg := newRegistry()
	fieldsRef := reg.store.Allocate(core.Array{core.IndirectRef{Number: 99}})
	reg.catalog["AcroForm"] = reg.store.Allocate(core.Dict{"Fields": fieldsRef})

	widget, ref := newWidget(reg)
	_, err := Create(reg, "second", widget, ref, TextBox)
	require.NoError(t, err)

	assert.Equal(t, core.Array{core.IndirectRef{Number: 99}, ref}, acroFormFields(t, reg))
}

func TestCreateSignatureSetsSigFlags(t *testing.T) {
	reg := newRegistry()
	widget, ref := newWidget(reg)
	_, err := Create(reg, "sig", widget, ref, Signature)
	require.NoError(t, err)

	acroForm, err := reg.store.ResolveDict(reg.catalog["AcroForm"])
	require.NoError(t, err)
	assert.Equal(t, core.Int(3), acroForm["SigFlags"])
}

func TestCreateRejectsNonWidget(t *testing.T) {
	reg := newRegistry()
	annot := core.Dict{"Subtype": core.Name("Text")}
	_, err := Create(reg, "x", annot, reg.store.Allocate(annot), TextBox)
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
	assert.False(t, reg.catalog.Has("AcroForm"))

	widget, ref := newWidget(reg)
	_, err = Create(reg, "x", widget, ref, FieldType(42))
	assert.ErrorIs(t, err, core.ErrValueOutOfRange)
}

func TestFieldNameRoundTrip(t *testing.T) {
	reg := newRegistry()

	for _, name := range []string{"email", "Straße", "名前"} {
		widget, ref := newWidget(reg)
		field, err := Create(reg, name, widget, ref, TextBox)
		require.NoError(t, err)

		got, err := field.Name()
		require.NoError(t, err)
		assert.Equal(t, name, got)
	}
}

func TestTextString(t *testing.T) {
	s, err := EncodeTextString("plain")
	require.NoError(t, err)
	assert.Equal(t, core.String("plain"), s)

	s, err = EncodeTextString("é")
	require.NoError(t, err)
	assert.Equal(t, core.String([]byte{0xFE, 0xFF, 0x00, 0xE9}), s)

	decoded, err := DecodeTextString(core.String([]byte{'c', 'a', 'f', 0xE9}))
	require.NoError(t, err)
	assert.Equal(t, "café", decoded)
}

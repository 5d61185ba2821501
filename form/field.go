package form

import (
	"fmt"

	"github.com/tsawler/pdfpage/core"
	"github.com/tsawler/pdfpage/objects"
)

// FieldType specifies the type of form field.
type FieldType int

const (
	PushButton  FieldType = iota // push button
	CheckBox                     // checkbox (on/off)
	RadioButton                  // radio button
	TextBox                      // single or multi-line text input
	ComboBox                     // dropdown/combo box
	ListBox                      // scrollable list
	Signature                    // signature field
)

// Field flag bits (/Ff) that distinguish field types sharing an /FT value.
const (
	flagRadio      = 1 << 15
	flagPushButton = 1 << 16
	flagCombo      = 1 << 17
)

func (ft FieldType) String() string {
	switch ft {
	case PushButton:
		return "PushButton"
	case CheckBox:
		return "CheckBox"
	case RadioButton:
		return "RadioButton"
	case TextBox:
		return "TextBox"
	case ComboBox:
		return "ComboBox"
	case ListBox:
		return "ListBox"
	case Signature:
		return "Signature"
	default:
		return fmt.Sprintf("FieldType(%d)", int(ft))
	}
}

// typeName returns the /FT value for the field type.
func (ft FieldType) typeName() (core.Name, bool) {
	switch ft {
	case PushButton, CheckBox, RadioButton:
		return "Btn", true
	case TextBox:
		return "Tx", true
	case ComboBox, ListBox:
		return "Ch", true
	case Signature:
		return "Sig", true
	default:
		return "", false
	}
}

func (ft FieldType) flags() int64 {
	switch ft {
	case PushButton:
		return flagPushButton
	case RadioButton:
		return flagRadio
	case ComboBox:
		return flagCombo
	default:
		return 0
	}
}

// Registry is the part of a document a field needs: its catalog, which
// owns /AcroForm, and the object store.
type Registry interface {
	Catalog() core.Dict
	Objects() *objects.Store
}

// Field is a view of a merged field/widget dictionary. The dictionary is
// owned by the object store.
type Field struct {
	dict core.Dict
	ref  core.IndirectRef
	typ  FieldType
}

// Create turns the widget annotation stored at widgetRef into a form field
// of type ft named name and registers it in the document's AcroForm.
func Create(reg Registry, name string, widget core.Dict, widgetRef core.IndirectRef, ft FieldType) (*Field, error) {
	const op = "form.Create"

	if subtype, _ := widget.GetName("Subtype"); subtype != "Widget" {
		return nil, core.Errorf(op, core.ErrValueOutOfRange, "annotation subtype %q is not Widget", subtype)
	}
	typeName, ok := ft.typeName()
	if !ok {
		return nil, core.Errorf(op, core.ErrValueOutOfRange, "unknown field type %d", int(ft))
	}
	title, err := EncodeTextString(name)
	if err != nil {
		return nil, core.NewError(op, err)
	}

	widget.Set("FT", typeName)
	widget.Set("T", title)
	if flags := ft.flags(); flags != 0 {
		widget.Set("Ff", core.Int(flags))
	}
	if ft == CheckBox || ft == RadioButton {
		widget.Set("V", core.Name("Off"))
		widget.Set("AS", core.Name("Off"))
	}

	if err := register(reg, widgetRef, ft); err != nil {
		return nil, core.NewError(op, err)
	}

	return &Field{dict: widget, ref: widgetRef, typ: ft}, nil
}

// register appends ref to /AcroForm /Fields, creating both when missing.
func register(reg Registry, ref core.IndirectRef, ft FieldType) error {
	store := reg.Objects()
	catalog := reg.Catalog()

	var acroForm core.Dict
	if obj, ok := catalog["AcroForm"]; ok {
		dict, err := store.ResolveDict(obj)
		if err != nil {
			return fmt.Errorf("resolving /AcroForm: %w", err)
		}
		acroForm = dict
	} else {
		acroForm = core.Dict{"Fields": core.Array{}}
		catalog.Set("AcroForm", store.Allocate(acroForm))
	}

	fieldsObj, ok := acroForm["Fields"]
	if !ok {
		fieldsObj = core.Array{}
	}
	if fieldsRef, isRef := fieldsObj.(core.IndirectRef); isRef {
		resolved, err := store.ResolveReference(fieldsRef)
		if err != nil {
			return fmt.Errorf("resolving /Fields: %w", err)
		}
		fields, isArr := resolved.(core.Array)
		if !isArr {
			return fmt.Errorf("invalid /Fields type: %T", resolved)
		}
		store.Set(fieldsRef, append(fields, ref))
	} else {
		fields, isArr := fieldsObj.(core.Array)
		if !isArr {
			return fmt.Errorf("invalid /Fields type: %T", fieldsObj)
		}
		acroForm.Set("Fields", append(fields, ref))
	}

	if ft == Signature {
		// SignaturesExist | AppendOnly
		acroForm.Set("SigFlags", core.Int(3))
	}
	return nil
}

// Name returns the decoded partial field name (/T).
func (f *Field) Name() (string, error) {
	title, ok := f.dict.GetString("T")
	if !ok {
		return "", nil
	}
	return DecodeTextString(title)
}

// Type returns the field type the field was created with.
func (f *Field) Type() FieldType { return f.typ }

// Dict returns the merged field/widget dictionary.
func (f *Field) Dict() core.Dict { return f.dict }

// Ref returns the indirect reference of the field.
func (f *Field) Ref() core.IndirectRef { return f.ref }

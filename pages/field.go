package pages

import (
	"github.com/tsawler/pdfpage/form"
)

// CreateField adds a widget annotation at rect and turns it into an
// interactive form field of type ft registered in the document's AcroForm.
func (p *Page) CreateField(name string, ft form.FieldType, rect Rect, raw bool) (*form.Field, error) {
	widget, err := p.Annotations().Create(WidgetAnnotation, rect, raw)
	if err != nil {
		return nil, err
	}
	return form.Create(p.doc, name, widget.Dict(), widget.Ref(), ft)
}

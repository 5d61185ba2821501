package pages

import (
	"fmt"

	"github.com/tsawler/pdfpage/core"
)

// AnnotationKind is an annotation subtype.
type AnnotationKind int

const (
	TextAnnotation AnnotationKind = iota
	LinkAnnotation
	FreeTextAnnotation
	LineAnnotation
	SquareAnnotation
	CircleAnnotation
	HighlightAnnotation
	UnderlineAnnotation
	StrikeOutAnnotation
	StampAnnotation
	InkAnnotation
	PopupAnnotation
	FileAttachmentAnnotation
	WidgetAnnotation
)

var annotationSubtypes = [...]string{
	TextAnnotation:           "Text",
	LinkAnnotation:           "Link",
	FreeTextAnnotation:       "FreeText",
	LineAnnotation:           "Line",
	SquareAnnotation:         "Square",
	CircleAnnotation:         "Circle",
	HighlightAnnotation:      "Highlight",
	UnderlineAnnotation:      "Underline",
	StrikeOutAnnotation:      "StrikeOut",
	StampAnnotation:          "Stamp",
	InkAnnotation:            "Ink",
	PopupAnnotation:          "Popup",
	FileAttachmentAnnotation: "FileAttachment",
	WidgetAnnotation:         "Widget",
}

func (k AnnotationKind) String() string {
	if k >= 0 && int(k) < len(annotationSubtypes) {
		return annotationSubtypes[k]
	}
	return fmt.Sprintf("AnnotationKind(%d)", int(k))
}

// annotFlagPrint is the /F bit that makes an annotation print.
const annotFlagPrint = 1 << 2

// Annotation is a view of one annotation dictionary.
type Annotation struct {
	dict core.Dict
	ref  core.IndirectRef
}

// Dict returns the annotation dictionary.
func (a *Annotation) Dict() core.Dict { return a.dict }

// Ref returns the reference of the annotation, or the zero reference for
// an annotation stored directly in /Annots.
func (a *Annotation) Ref() core.IndirectRef { return a.ref }

// Subtype returns the /Subtype name.
func (a *Annotation) Subtype() string {
	name, _ := a.dict.GetName("Subtype")
	return string(name)
}

// Rect returns the annotation rectangle as stored.
func (a *Annotation) Rect() (Rect, error) {
	arr, ok := a.dict.GetArray("Rect")
	if !ok {
		return Rect{}, fmt.Errorf("annotation has no /Rect")
	}
	return RectFromArray(arr)
}

// Annotations is the annotation collection of a page (/Annots).
type Annotations struct {
	page *Page
}

// Annotations returns the page's annotation collection.
func (p *Page) Annotations() *Annotations { return &Annotations{page: p} }

// Create adds an annotation of the given kind. With raw false rect is
// given in the rotated, visual frame of the page and is mapped to the
// stored frame first.
func (a *Annotations) Create(kind AnnotationKind, rect Rect, raw bool) (*Annotation, error) {
	const op = "Annotations.Create"
	p := a.page

	if !raw {
		media, err := p.MediaBox(true)
		if err != nil {
			return nil, err
		}
		rotation, err := p.Rotation()
		if err != nil {
			return nil, err
		}
		if rect, err = TransformRect(rect, media, rotation, true); err != nil {
			return nil, err
		}
	}

	dict := core.Dict{
		"Type":    core.Name("Annot"),
		"Subtype": core.Name(kind.String()),
		"Rect":    rect.ToArray(),
		"P":       p.ref,
		"F":       core.Int(annotFlagPrint),
	}
	ref := p.doc.objects.Allocate(dict)

	annots, err := a.array()
	if err != nil {
		return nil, core.NewError(op, err)
	}
	a.setArray(append(annots, ref))

	return &Annotation{dict: dict, ref: ref}, nil
}

// Count returns the number of annotations on the page.
func (a *Annotations) Count() (int, error) {
	annots, err := a.array()
	if err != nil {
		return 0, core.NewError("Annotations.Count", err)
	}
	return len(annots), nil
}

// At returns the annotation at index.
func (a *Annotations) At(index int) (*Annotation, error) {
	const op = "Annotations.At"

	annots, err := a.array()
	if err != nil {
		return nil, core.NewError(op, err)
	}
	if index < 0 || index >= len(annots) {
		return nil, core.Errorf(op, core.ErrValueOutOfRange, "annotation index %d out of range [0, %d)", index, len(annots))
	}

	elem := annots[index]
	dict, err := a.page.doc.objects.ResolveDict(elem)
	if err != nil {
		return nil, core.NewError(op, err)
	}
	ref, _ := elem.(core.IndirectRef)
	return &Annotation{dict: dict, ref: ref}, nil
}

func (a *Annotations) array() (core.Array, error) {
	obj, ok := a.page.node["Annots"]
	if !ok {
		return nil, nil
	}
	resolved, err := a.page.doc.objects.Resolve(obj)
	if err != nil {
		return nil, err
	}
	arr, ok := resolved.(core.Array)
	if !ok {
		return nil, fmt.Errorf("invalid /Annots type: %T", resolved)
	}
	return arr, nil
}

func (a *Annotations) setArray(arr core.Array) {
	if ref, ok := a.page.node["Annots"].(core.IndirectRef); ok {
		a.page.doc.objects.Set(ref, arr)
		return
	}
	a.page.node.Set("Annots", arr)
}

package pages

import (
	"math"

	"github.com/tsawler/pdfpage/core"
)

// BoxKind names one of the page boundary boxes.
type BoxKind int

const (
	// MediaBox is the physical medium the page is printed on.
	MediaBox BoxKind = iota
	// CropBox is the region the page is clipped to when displayed.
	CropBox
	// TrimBox is the intended size of the finished page after trimming.
	TrimBox
	// BleedBox is the region content is clipped to in production output.
	BleedBox
	// ArtBox is the extent of the page's meaningful content.
	ArtBox
)

// String returns the dictionary key the box is stored under.
func (k BoxKind) String() string {
	switch k {
	case MediaBox:
		return "MediaBox"
	case CropBox:
		return "CropBox"
	case TrimBox:
		return "TrimBox"
	case BleedBox:
		return "BleedBox"
	case ArtBox:
		return "ArtBox"
	default:
		return "UnknownBox"
	}
}

// fallback returns the box an absent box defaults to. MediaBox has none.
func (k BoxKind) fallback() (BoxKind, bool) {
	switch k {
	case ArtBox, BleedBox, TrimBox:
		return CropBox, true
	case CropBox:
		return MediaBox, true
	default:
		return 0, false
	}
}

// Box returns the effective box of the given kind. Absent boxes fall back
// ArtBox/BleedBox/TrimBox → CropBox → MediaBox; when not even a MediaBox is
// found the zero Rect is returned with a nil error. With raw false the box
// is reported in the visual frame: width and height are swapped for pages
// rotated by 90 or 270 degrees.
func (p *Page) Box(kind BoxKind, raw bool) (Rect, error) {
	box, err := p.rawBox(kind)
	if err != nil {
		return Rect{}, err
	}
	if raw {
		return box, nil
	}
	return p.toVisual(box, "Page.Box")
}

func (p *Page) rawBox(kind BoxKind) (Rect, error) {
	for {
		obj, ok, err := p.findInherited(kind.String())
		if err != nil {
			return Rect{}, err
		}
		if arr, isArr := obj.(core.Array); ok && isArr {
			box, err := RectFromArray(arr)
			if err != nil {
				return Rect{}, core.NewError("Page.Box", err)
			}
			return box, nil
		}
		next, hasNext := kind.fallback()
		if !hasNext {
			return Rect{}, nil
		}
		kind = next
	}
}

// SetBox stores rect as the page's own box of the given kind; ancestors are
// never written. With raw false rect is taken in the visual frame and
// un-rotated before storing, so Box(kind, false) reads it back unchanged.
func (p *Page) SetBox(kind BoxKind, rect Rect, raw bool) error {
	if !raw {
		swap, err := p.swapsAxes("Page.SetBox")
		if err != nil {
			return err
		}
		if swap {
			rect = rect.swapped()
		}
	}
	p.node.Set(kind.String(), rect.ToArray())
	return nil
}

func (p *Page) toVisual(box Rect, op string) (Rect, error) {
	swap, err := p.swapsAxes(op)
	if err != nil {
		return Rect{}, err
	}
	if swap {
		return box.swapped(), nil
	}
	return box, nil
}

// swapsAxes reports whether the effective rotation exchanges the axes.
func (p *Page) swapsAxes(op string) (bool, error) {
	rotation, err := p.Rotation()
	if err != nil {
		return false, err
	}
	switch normalizeRotation(rotation) {
	case 0, 180:
		return false, nil
	case 90, 270:
		return true, nil
	default:
		return false, core.Errorf(op, core.ErrInvalidRotation, "rotation %d is not a multiple of 90", rotation)
	}
}

// MediaBox returns the media box.
func (p *Page) MediaBox(raw bool) (Rect, error) { return p.Box(MediaBox, raw) }

// CropBox returns the crop box, defaulting to the media box.
func (p *Page) CropBox(raw bool) (Rect, error) { return p.Box(CropBox, raw) }

// TrimBox returns the trim box, defaulting to the crop box.
func (p *Page) TrimBox(raw bool) (Rect, error) { return p.Box(TrimBox, raw) }

// BleedBox returns the bleed box, defaulting to the crop box.
func (p *Page) BleedBox(raw bool) (Rect, error) { return p.Box(BleedBox, raw) }

// ArtBox returns the art box, defaulting to the crop box.
func (p *Page) ArtBox(raw bool) (Rect, error) { return p.Box(ArtBox, raw) }

// SetMediaBox stores the media box on the page node.
func (p *Page) SetMediaBox(rect Rect, raw bool) error { return p.SetBox(MediaBox, rect, raw) }

// SetCropBox stores the crop box on the page node.
func (p *Page) SetCropBox(rect Rect, raw bool) error { return p.SetBox(CropBox, rect, raw) }

// SetTrimBox stores the trim box on the page node.
func (p *Page) SetTrimBox(rect Rect, raw bool) error { return p.SetBox(TrimBox, rect, raw) }

// SetBleedBox stores the bleed box on the page node.
func (p *Page) SetBleedBox(rect Rect, raw bool) error { return p.SetBox(BleedBox, rect, raw) }

// SetArtBox stores the art box on the page node.
func (p *Page) SetArtBox(rect Rect, raw bool) error { return p.SetBox(ArtBox, rect, raw) }

// Rect returns the visual media box.
func (p *Page) Rect() (Rect, error) { return p.MediaBox(false) }

// RectRaw returns the stored media box.
func (p *Page) RectRaw() (Rect, error) { return p.MediaBox(true) }

// SetRect sets the media box from a rectangle in the visual frame.
func (p *Page) SetRect(rect Rect) error { return p.SetMediaBox(rect, false) }

// SetRectRaw sets the media box as stored.
func (p *Page) SetRectRaw(rect Rect) error { return p.SetMediaBox(rect, true) }

// Rotation returns the inherited /Rotate value in degrees, 0 when absent.
// Real values are truncated.
func (p *Page) Rotation() (int, error) {
	obj, ok, err := p.findInherited("Rotate")
	if err != nil || !ok {
		return 0, err
	}
	n, isNum := core.NumberValue(obj)
	if !isNum {
		return 0, nil
	}
	return int(n), nil
}

// SetRotation stores /Rotate on the page node. Only 0, 90, 180 and 270 are
// accepted; anything else fails with core.ErrValueOutOfRange and leaves the
// page untouched.
func (p *Page) SetRotation(degrees int) error {
	switch degrees {
	case 0, 90, 180, 270:
	default:
		return core.Errorf("Page.SetRotation", core.ErrValueOutOfRange, "rotation must be 0, 90, 180 or 270, got %d", degrees)
	}
	p.node.Set("Rotate", core.Int(degrees))
	return nil
}

// HasRotation reports whether the page is rotated and, if so, the angle in
// radians as a counterclockwise rotation. /Rotate is clockwise as seen by
// the viewer, so the angle is negative.
func (p *Page) HasRotation() (bool, float64, error) {
	rotation, err := p.Rotation()
	if err != nil {
		return false, 0, err
	}
	deg := normalizeRotation(rotation)
	if deg == 0 {
		return false, 0, nil
	}
	return true, -float64(deg) * math.Pi / 180, nil
}

// SetPageWidth moves the right edge of the effective media box so that it
// is newWidth wide, keeping its left edge. The inherited array is edited in
// place, so the change lands wherever the media box is defined. The crop
// box, if one can be resolved, is adjusted the same way. The result is
// false when there is no media box, and also when the media box changed
// but no crop box exists.
func (p *Page) SetPageWidth(newWidth float64) (bool, error) {
	return p.resizeFarEdge(0, 2, newWidth)
}

// SetPageHeight is SetPageWidth for the top edge.
func (p *Page) SetPageHeight(newHeight float64) (bool, error) {
	return p.resizeFarEdge(1, 3, newHeight)
}

func (p *Page) resizeFarEdge(anchor, far int, size float64) (bool, error) {
	media, ok, err := p.boxArray(MediaBox)
	if err != nil || !ok {
		return false, err
	}
	origin, _ := media.GetNumber(anchor)
	media.Set(far, core.Real(origin+size))

	crop, ok, err := p.boxArray(CropBox)
	if err != nil || !ok {
		return false, err
	}
	origin, _ = crop.GetNumber(anchor)
	crop.Set(far, core.Real(origin+size))
	return true, nil
}

// boxArray returns the stored array of a box without any fallback.
func (p *Page) boxArray(kind BoxKind) (core.Array, bool, error) {
	obj, ok, err := p.findInherited(kind.String())
	if err != nil || !ok {
		return nil, false, err
	}
	arr, isArr := obj.(core.Array)
	if !isArr || len(arr) < 4 {
		return nil, false, nil
	}
	return arr, true, nil
}

// normalizeRotation maps any angle into [0, 360).
func normalizeRotation(degrees int) int {
	degrees %= 360
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// TransformRect maps rect between the visual frame of a page rotated by
// rotation degrees and its raw frame. Both frames share the lower-left
// corner of mediaBox as origin. toRaw selects the direction.
func TransformRect(rect, mediaBox Rect, rotation int, toRaw bool) (Rect, error) {
	deg := normalizeRotation(rotation)
	if deg%90 != 0 {
		return Rect{}, core.Errorf("TransformRect", core.ErrInvalidRotation, "rotation %d is not a multiple of 90", rotation)
	}

	w, h := mediaBox.Width, mediaBox.Height
	point := func(x, y float64) (float64, float64) {
		u, v := x-mediaBox.Left, y-mediaBox.Bottom
		switch {
		case deg == 90 && toRaw:
			u, v = w-v, u
		case deg == 90:
			u, v = v, w-u
		case deg == 180:
			u, v = w-u, h-v
		case deg == 270 && toRaw:
			u, v = v, h-u
		case deg == 270:
			u, v = h-v, u
		}
		return u + mediaBox.Left, v + mediaBox.Bottom
	}

	x0, y0 := point(rect.Left, rect.Bottom)
	x1, y1 := point(rect.Right(), rect.Top())
	return NewRect(x0, y0, x1, y1), nil
}

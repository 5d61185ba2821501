package pages

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/core"
)

// ColorSpace identifies a PDF color space family.
type ColorSpace int

const (
	DeviceGray ColorSpace = iota
	DeviceRGB
	DeviceCMYK
	CalGray
	CalRGB
	Lab
	ICCBased
	Indexed
	Pattern
	Separation
	DeviceN
)

var colorSpaceNames = [...]string{
	DeviceGray: "DeviceGray",
	DeviceRGB:  "DeviceRGB",
	DeviceCMYK: "DeviceCMYK",
	CalGray:    "CalGray",
	CalRGB:     "CalRGB",
	Lab:        "Lab",
	ICCBased:   "ICCBased",
	Indexed:    "Indexed",
	Pattern:    "Pattern",
	Separation: "Separation",
	DeviceN:    "DeviceN",
}

// Name returns the PDF name of the color space family.
func (cs ColorSpace) Name() core.Name {
	return core.Name(cs.String())
}

func (cs ColorSpace) String() string {
	if cs >= 0 && int(cs) < len(colorSpaceNames) {
		return colorSpaceNames[cs]
	}
	return fmt.Sprintf("ColorSpace(%d)", int(cs))
}

// SetICCProfile embeds the ICC profile read from r and registers it in the
// page resources as color space tag. components is the number of color
// components of the profile and must be 1, 3 or 4; alternate is the
// fallback for consumers that cannot use the profile. Other color spaces
// already registered on the page are kept.
func (p *Page) SetICCProfile(tag string, r io.Reader, components int, alternate ColorSpace) error {
	const op = "Page.SetICCProfile"

	switch components {
	case 1, 3, 4:
	default:
		return core.Errorf(op, core.ErrValueOutOfRange, "ICC profile must have 1, 3 or 4 components, got %d", components)
	}

	profile, err := io.ReadAll(r)
	if err != nil {
		return core.NewError(op, fmt.Errorf("failed to read ICC profile: %w", err))
	}

	stream := core.NewStream(nil)
	stream.Dict.Set("Alternate", alternate.Name())
	stream.Dict.Set("N", core.Int(components))
	if err := stream.SetData(profile, p.doc.cfg.compress); err != nil {
		return core.NewError(op, err)
	}
	ref := p.doc.objects.Allocate(stream)

	entry := core.Array{ICCBased.Name(), ref}
	if err := p.GetOrCreateResources().Add("ColorSpace", tag, entry); err != nil {
		return core.NewError(op, err)
	}

	p.doc.logger().Debug("embedded ICC profile",
		zap.String("tag", tag), zap.Int("components", components), zap.Int("bytes", len(profile)))
	return nil
}

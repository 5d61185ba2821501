package pages

import "strings"

// PageSize is a standard paper size preset.
type PageSize int

const (
	UnknownSize PageSize = iota
	A0
	A1
	A2
	A3
	A4
	A5
	A6
	Letter
	Legal
	Tabloid
)

// Portrait dimensions in points, rounded to whole units.
var pageSizes = map[PageSize][2]float64{
	A0:      {2384, 3370},
	A1:      {1684, 2384},
	A2:      {1191, 1684},
	A3:      {842, 1190},
	A4:      {595, 842},
	A5:      {420, 595},
	A6:      {297, 420},
	Letter:  {612, 792},
	Legal:   {612, 1008},
	Tabloid: {792, 1224},
}

var pageSizeNames = map[PageSize]string{
	A0:      "A0",
	A1:      "A1",
	A2:      "A2",
	A3:      "A3",
	A4:      "A4",
	A5:      "A5",
	A6:      "A6",
	Letter:  "Letter",
	Legal:   "Legal",
	Tabloid: "Tabloid",
}

// PageSizes lists every known preset in table order.
func PageSizes() []PageSize {
	return []PageSize{A0, A1, A2, A3, A4, A5, A6, Letter, Legal, Tabloid}
}

func (s PageSize) String() string {
	if name, ok := pageSizeNames[s]; ok {
		return name
	}
	return "Unknown"
}

// StandardPageSize returns the rectangle of a preset with its origin at
// (0, 0). landscape swaps width and height. An unknown preset yields the
// zero Rect.
func StandardPageSize(size PageSize, landscape bool) Rect {
	dims, ok := pageSizes[size]
	if !ok {
		return Rect{}
	}
	r := Rect{Width: dims[0], Height: dims[1]}
	if landscape {
		r = r.swapped()
	}
	return r
}

// ParsePageSize looks a preset up by name, ignoring case.
func ParsePageSize(name string) (PageSize, bool) {
	for size, n := range pageSizeNames {
		if strings.EqualFold(n, name) {
			return size, true
		}
	}
	return UnknownSize, false
}

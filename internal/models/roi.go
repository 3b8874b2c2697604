package models

// PlaneIndex is the position of a mask shape along one of the T, C or Z
// axes. A shape that does not declare a position on an axis applies to
// every plane of that axis, so the zero value (unspecified) is meaningful
// and distinct from index 0.
type PlaneIndex struct {
	// Specified reports whether the shape declared a concrete index
	Specified bool

	// Value is the declared index; only meaningful when Specified is true
	Value int
}

// SpecifiedIndex returns a PlaneIndex fixed to the given plane.
func SpecifiedIndex(v int) PlaneIndex {
	return PlaneIndex{Specified: true, Value: v}
}

// UnspecifiedIndex returns a PlaneIndex that applies to every plane of
// its axis.
func UnspecifiedIndex() PlaneIndex {
	return PlaneIndex{}
}

// MaskShape is a single rectangular binary mask anchored at one plane
// coordinate of the image. It is immutable once loaded.
type MaskShape struct {
	// T, C and Z locate the mask in the image volume. Each may be
	// unspecified, meaning the mask applies to all planes of that axis.
	T PlaneIndex
	C PlaneIndex
	Z PlaneIndex

	// X and Y are the pixel origin of the mask rectangle
	X int
	Y int

	// Width and Height are the rectangle extent in pixels
	Width  int
	Height int

	// Bytes holds the packed bitmask, row-major, most significant bit
	// first, ceil(Width*Height/8) bytes long
	Bytes []byte

	// HasFill reports whether the shape declared a fill color
	HasFill bool

	// Fill is the packed 32-bit RGBA fill color when HasFill is true
	Fill uint32
}

// ROI is a region of interest: a stable integer id and the ordered mask
// shapes that belong to it. All shapes of one ROI describe the same
// object and share a label id in labeled output.
type ROI struct {
	// ID is the annotation service identifier for this region
	ID int64

	// Shapes are the mask shapes of the region in source order
	Shapes []MaskShape
}

// Image describes the 5-D source volume the masks annotate.
type Image struct {
	// ID is the source image identifier
	ID int64

	// SizeT, SizeC, SizeZ, SizeY, SizeX are the axis extents
	SizeT int
	SizeC int
	SizeZ int
	SizeY int
	SizeX int
}

// Shape returns the image extents in (T, C, Z, Y, X) order.
func (img Image) Shape() []int {
	return []int{img.SizeT, img.SizeC, img.SizeZ, img.SizeY, img.SizeX}
}

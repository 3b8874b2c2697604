package masks

import "masks2zarr/internal/models"

// binPlane is one decoded mask: a dense (h, w) binary plane in row-major
// order plus its placement in the image volume.
type binPlane struct {
	data []int64

	t, c, z models.PlaneIndex

	y, x int
	h, w int
}

// decodeMask unpacks a shape's packed bit buffer into a dense plane.
// Bits are taken most significant first from each byte, in row-major
// order, truncated to width*height.
//
// A buffer holding fewer than width*height bits leaves the trailing
// pixels zero. That silent truncation is the legacy behavior of the
// annotation pipeline; strict mode turns it into a GeometryError.
func decodeMask(m models.MaskShape, strict bool) (binPlane, error) {
	n := m.Width * m.Height
	if strict && n > 8*len(m.Bytes) {
		return binPlane{}, &GeometryError{WantBits: n, HaveBits: 8 * len(m.Bytes)}
	}

	data := make([]int64, n)
	limit := n
	if avail := 8 * len(m.Bytes); avail < limit {
		limit = avail
	}
	for i := 0; i < limit; i++ {
		if m.Bytes[i/8]&(1<<uint(7-i%8)) != 0 {
			data[i] = 1
		}
	}

	return binPlane{
		data: data,
		t:    m.T,
		c:    m.C,
		z:    m.Z,
		y:    m.Y,
		x:    m.X,
		h:    m.Height,
		w:    m.Width,
	}, nil
}

// pixelCount is the number of set pixels in the plane.
func (p binPlane) pixelCount() int {
	n := 0
	for _, v := range p.data {
		if v != 0 {
			n++
		}
	}
	return n
}

package masks

// labelBuffer is the in-memory destination array one grouping is
// composited into. The last two dimensions are always Y and X; any
// leading dimensions index whole planes. Values stay int64 until the
// store encodes them at the output dtype.
type labelBuffer struct {
	shape  []int
	stride []int
	data   []int64
}

func newLabelBuffer(shape []int) *labelBuffer {
	stride := make([]int, len(shape))
	n := 1
	for i := len(shape) - 1; i >= 0; i-- {
		stride[i] = n
		n *= shape[i]
	}
	return &labelBuffer{
		shape:  append([]int(nil), shape...),
		stride: stride,
		data:   make([]int64, n),
	}
}

// planeBase is the flat offset of the (Y=0, X=0) element of the plane
// selected by prefix, one index per leading dimension.
func (b *labelBuffer) planeBase(prefix []int) int {
	base := 0
	for i, v := range prefix {
		base += v * b.stride[i]
	}
	return base
}

// overlaps reports whether any set pixel of p is already non-zero in
// the destination region of the selected plane.
func (b *labelBuffer) overlaps(prefix []int, p binPlane) bool {
	base := b.planeBase(prefix)
	sy := b.stride[len(b.stride)-2]
	for j := 0; j < p.h; j++ {
		row := base + (p.y+j)*sy + p.x
		for i := 0; i < p.w; i++ {
			if p.data[j*p.w+i] != 0 && b.data[row+i] != 0 {
				return true
			}
		}
	}
	return false
}

// add composites p into the selected plane, scaling set pixels by
// factor. Addition rather than assignment keeps zero pixels of p from
// wiping earlier objects.
func (b *labelBuffer) add(prefix []int, p binPlane, factor int64) {
	base := b.planeBase(prefix)
	sy := b.stride[len(b.stride)-2]
	for j := 0; j < p.h; j++ {
		row := base + (p.y+j)*sy + p.x
		for i := 0; i < p.w; i++ {
			b.data[row+i] += p.data[j*p.w+i] * factor
		}
	}
}

// plane returns the Y×X slice selected by prefix. The returned slice
// aliases the buffer.
func (b *labelBuffer) plane(prefix []int) []int64 {
	base := b.planeBase(prefix)
	n := b.shape[len(b.shape)-2] * b.shape[len(b.shape)-1]
	return b.data[base : base+n]
}

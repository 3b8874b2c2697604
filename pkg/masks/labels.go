package masks

import "masks2zarr/internal/models"

// compositeOptions carry the per-save toggles into the compositors.
type compositeOptions struct {
	checkOverlaps bool
	strict        bool
}

// compositeLabels stamps every object of the grouping into buf with its
// 1-based ordinal as label id. buf must have the collapsed 5-D shape.
//
// Returns the 1-based id → fill color map for array attributes and the
// per-object written pixel counts, in ordinal order.
func compositeLabels(buf *labelBuffer, objects [][]models.MaskShape, collapsed axisSet, opts compositeOptions) (map[int]uint32, []float64, error) {
	sizeT, sizeC, sizeZ := buf.shape[0], buf.shape[1], buf.shape[2]

	colors := map[int]uint32{}
	counts := make([]float64, len(objects))

	for count, shapes := range objects {
		for _, m := range shapes {
			// All shapes of one ROI share the object's color
			if m.HasFill {
				colors[count+1] = m.Fill
			}

			p, err := decodeMask(m, opts.strict)
			if err != nil {
				return nil, nil, err
			}

			for _, it := range planeIndices(collapsed, axisT, p.t, sizeT) {
				for _, ic := range planeIndices(collapsed, axisC, p.c, sizeC) {
					for _, iz := range planeIndices(collapsed, axisZ, p.z, sizeZ) {
						prefix := []int{it, ic, iz}
						if opts.checkOverlaps {
							if err := checkOverlap(buf, prefix, p, count); err != nil {
								return nil, nil, err
							}
						}
						buf.add(prefix, p, int64(count+1))
						counts[count] += float64(p.pixelCount())
					}
				}
			}
		}
	}

	return colors, counts, nil
}

package masks

import "masks2zarr/internal/models"

// compositeStack fills a 6-D buffer with one leading slice per object
// group. Pixels are added as plain binary coverage, not label ids, so
// masks of the same group landing on the same plane may stack to values
// above one when overlap checking is off; that is coverage counting,
// not a conflict.
func compositeStack(buf *labelBuffer, objects [][]models.MaskShape, collapsed axisSet, opts compositeOptions) ([]float64, error) {
	sizeT, sizeC, sizeZ := buf.shape[1], buf.shape[2], buf.shape[3]

	counts := make([]float64, len(objects))

	for count, shapes := range objects {
		for _, m := range shapes {
			p, err := decodeMask(m, opts.strict)
			if err != nil {
				return nil, err
			}

			for _, it := range planeIndices(collapsed, axisT, p.t, sizeT) {
				for _, ic := range planeIndices(collapsed, axisC, p.c, sizeC) {
					for _, iz := range planeIndices(collapsed, axisZ, p.z, sizeZ) {
						prefix := []int{count, it, ic, iz}
						if opts.checkOverlaps {
							if err := checkOverlap(buf, prefix, p, count); err != nil {
								return nil, err
							}
						}
						buf.add(prefix, p, 1)
						counts[count] += float64(p.pixelCount())
					}
				}
			}
		}
	}

	return counts, nil
}

// Package visualization renders labeled planes as PNG images for quick
// inspection of a conversion run.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

// Viewer renders Y×X planes of a labeled array. Pixel values are label
// ids; id 0 is background.
type Viewer struct {
	// plane holds one Y×X slice of label ids in row-major order
	plane []int64

	// dimensions of the plane
	width  int
	height int

	// colors maps label ids to packed RGBA fill colors declared by the
	// source annotations. Labels without an entry get a palette color.
	colors map[int]uint32
}

// palette provides distinguishable fallback colors for labels that
// declare no fill color, cycled by label id.
var palette = []color.RGBA{
	{R: 0xe6, G: 0x19, B: 0x4b, A: 0xff},
	{R: 0x3c, G: 0xb4, B: 0x4b, A: 0xff},
	{R: 0xff, G: 0xe1, B: 0x19, A: 0xff},
	{R: 0x43, G: 0x63, B: 0xd8, A: 0xff},
	{R: 0xf5, G: 0x82, B: 0x31, A: 0xff},
	{R: 0x91, G: 0x1e, B: 0xb4, A: 0xff},
	{R: 0x46, G: 0xf0, B: 0xf0, A: 0xff},
	{R: 0xf0, G: 0x32, B: 0xe6, A: 0xff},
}

// NewViewer creates a viewer for one labeled plane.
func NewViewer(plane []int64, width, height int, colors map[int]uint32) *Viewer {
	return &Viewer{
		plane:  plane,
		width:  width,
		height: height,
		colors: colors,
	}
}

// Render converts the plane to an RGBA image, background black.
func (v *Viewer) Render() (image.Image, error) {
	if len(v.plane) != v.width*v.height {
		return nil, fmt.Errorf("plane has %d pixels, expected %dx%d", len(v.plane), v.height, v.width)
	}

	img := image.NewRGBA(image.Rect(0, 0, v.width, v.height))
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			id := v.plane[y*v.width+x]
			if id == 0 {
				img.SetRGBA(x, y, color.RGBA{A: 0xff})
				continue
			}
			img.SetRGBA(x, y, v.labelColor(id))
		}
	}
	return img, nil
}

func (v *Viewer) labelColor(id int64) color.RGBA {
	if packed, ok := v.colors[int(id)]; ok {
		return color.RGBA{
			R: uint8(packed >> 24),
			G: uint8(packed >> 16),
			B: uint8(packed >> 8),
			A: uint8(packed),
		}
	}
	return palette[int(id-1)%len(palette)]
}

// SavePNG renders the plane and writes it to filename.
func (v *Viewer) SavePNG(filename string) error {
	img, err := v.Render()
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

package models

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// annotationDoc mirrors the JSON layout of an annotation export file.
// Plane indices and the fill color use pointers so that null and 0 stay
// distinguishable.
type annotationDoc struct {
	Image imageDoc `json:"image"`
	ROIs  []roiDoc `json:"rois"`
}

type imageDoc struct {
	ID    int64 `json:"id"`
	SizeT int   `json:"size_t"`
	SizeC int   `json:"size_c"`
	SizeZ int   `json:"size_z"`
	SizeY int   `json:"size_y"`
	SizeX int   `json:"size_x"`
}

type roiDoc struct {
	ID     int64      `json:"id"`
	Shapes []shapeDoc `json:"shapes"`
}

type shapeDoc struct {
	Type      string  `json:"type"`
	T         *int    `json:"t"`
	C         *int    `json:"c"`
	Z         *int    `json:"z"`
	X         int     `json:"x"`
	Y         int     `json:"y"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Bytes     string  `json:"bytes"`
	FillColor *uint32 `json:"fill_color"`
}

// LoadAnnotations reads an annotation export file and returns the image
// description plus its ROIs. Only mask-typed shapes are kept; ROIs left
// with no mask shapes are dropped entirely.
func LoadAnnotations(path string) (Image, []ROI, error) {
	f, err := os.Open(path)
	if err != nil {
		return Image{}, nil, fmt.Errorf("failed to open annotation file: %v", err)
	}
	defer f.Close()
	return DecodeAnnotations(f)
}

// DecodeAnnotations decodes an annotation export document from r.
func DecodeAnnotations(r io.Reader) (Image, []ROI, error) {
	var doc annotationDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Image{}, nil, fmt.Errorf("failed to parse annotation file: %v", err)
	}

	img := Image{
		ID:    doc.Image.ID,
		SizeT: doc.Image.SizeT,
		SizeC: doc.Image.SizeC,
		SizeZ: doc.Image.SizeZ,
		SizeY: doc.Image.SizeY,
		SizeX: doc.Image.SizeX,
	}

	var rois []ROI
	for _, rd := range doc.ROIs {
		roi := ROI{ID: rd.ID}
		for i, sd := range rd.Shapes {
			if sd.Type != "mask" {
				continue
			}
			shape, err := decodeShape(sd)
			if err != nil {
				return Image{}, nil, fmt.Errorf("roi %d shape %d: %v", rd.ID, i, err)
			}
			roi.Shapes = append(roi.Shapes, shape)
		}
		if len(roi.Shapes) > 0 {
			rois = append(rois, roi)
		}
	}

	return img, rois, nil
}

func decodeShape(sd shapeDoc) (MaskShape, error) {
	packed, err := base64.StdEncoding.DecodeString(sd.Bytes)
	if err != nil {
		return MaskShape{}, fmt.Errorf("failed to decode mask bytes: %v", err)
	}

	shape := MaskShape{
		T:      planeIndexOf(sd.T),
		C:      planeIndexOf(sd.C),
		Z:      planeIndexOf(sd.Z),
		X:      sd.X,
		Y:      sd.Y,
		Width:  sd.Width,
		Height: sd.Height,
		Bytes:  packed,
	}
	if sd.FillColor != nil {
		shape.HasFill = true
		shape.Fill = *sd.FillColor
	}
	return shape, nil
}

func planeIndexOf(v *int) PlaneIndex {
	if v == nil {
		return UnspecifiedIndex()
	}
	return SpecifiedIndex(*v)
}

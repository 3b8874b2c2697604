// Package masks converts sparse per-object ROI bitmask annotations into
// dense labeled zarr arrays.
//
// The conversion pipeline for one named grouping is:
//  1. determine which T/C/Z axes no mask uses and collapse them to 1
//  2. allocate the output array in the store, one chunk per Y×X plane
//  3. decode each mask's packed bits, broadcast it across the planes it
//     applies to, guard against overlap, and composite it additively
//  4. attach image linkage, fill colors and the group label registry
package masks

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"masks2zarr/internal/models"
	"masks2zarr/pkg/zarr"
)

// DefaultLabelPath is the group all label arrays are written under
// unless configured otherwise.
const DefaultLabelPath = "labels"

// Params configures a Saver for one image.
type Params struct {
	// Image is the annotated source volume; its extents fix the output
	// array shape
	Image models.Image

	// Dtype is the output element type, already resolved against the
	// style via SelectDtype
	Dtype zarr.Dtype

	// Path is the group the arrays are written under, default "labels"
	Path string

	// Style selects the output layout
	Style Style

	// SourceImage overrides the image link written into array
	// attributes. Empty means the labels annotate the zarr they are
	// stored in and link back with a relative path.
	SourceImage string

	// Compressor is the chunk codec, nil for raw chunks
	Compressor *zarr.CompressorConfig

	// CheckOverlaps aborts a save when two objects claim the same
	// pixel. On in all normal write paths.
	CheckOverlaps bool

	// StrictBitBuffers fails on undersized mask bit buffers instead of
	// the legacy silent truncation
	StrictBitBuffers bool

	// Verbose enables progress output
	Verbose bool
}

// Saver writes mask groupings of one image into a zarr store. It
// assumes exclusive access to the target arrays for the duration of
// each Save call.
type Saver struct {
	params *Params
	store  zarr.Store
	labels *zarr.Group
}

// NewSaver opens (or creates) the label group and verifies the source
// image link. Linkage failures surface here, before any array exists.
func NewSaver(store zarr.Store, params *Params) (*Saver, error) {
	if params.Path == "" {
		params.Path = DefaultLabelPath
	}

	if params.SourceImage != "" {
		if !groupResolves(store, params.SourceImage) {
			return nil, &LinkageError{Target: params.SourceImage}
		}
	}

	root, err := zarr.OpenRoot(store)
	if err != nil {
		return nil, fmt.Errorf("failed to open output store: %v", err)
	}

	keys, err := root.GroupKeys()
	if err != nil {
		return nil, err
	}
	if params.Verbose && !contains(keys, params.Path) {
		fmt.Printf("Creating label group %q\n", params.Path)
	}

	labels, err := root.Group(params.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label group: %v", err)
	}

	return &Saver{params: params, store: store, labels: labels}, nil
}

// groupResolves checks that a store-root-relative path holds a zarr
// group or array.
func groupResolves(store zarr.Store, target string) bool {
	for _, marker := range []string{zarr.KeyGroup, zarr.KeyArray} {
		if r, err := store.Get(path.Join(target, marker)); err == nil {
			r.Close()
			return true
		}
	}
	return false
}

func contains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}

// SaveResult describes one written array.
type SaveResult struct {
	// Name is the array name within the label group
	Name string

	// Shape is the written array shape: (T,C,Z,Y,X), or (G,T,C,Z,Y,X)
	// for 6d style
	Shape []int

	// Colors maps 1-based label ids to fill colors (labeled styles)
	Colors map[int]uint32

	// Stats summarizes the written objects
	Stats ObjectStats

	buf *labelBuffer
}

// Plane returns one Y×X slice of the composited data plus its height
// and width. prefix holds one index per leading dimension.
func (r *SaveResult) Plane(prefix ...int) ([]int64, int, int) {
	h := r.Shape[len(r.Shape)-2]
	w := r.Shape[len(r.Shape)-1]
	return r.buf.plane(prefix), h, w
}

// Save writes one grouping as the named array. The array is created in
// the store (overwriting any previous array of that name) before
// compositing begins, so an overlap abort leaves a created but
// partially populated array behind; completed earlier saves are not
// rolled back.
func (s *Saver) Save(objects [][]models.MaskShape, name string) (*SaveResult, error) {
	collapsed := collapsedAxes(objects)
	if s.params.Verbose {
		fmt.Printf("Ignoring dimensions %s\n", collapsed)
	}

	maskShape := collapseShape(s.params.Image, collapsed)
	sizeY := maskShape[3]
	sizeX := maskShape[4]
	opts := compositeOptions{
		checkOverlaps: s.params.CheckOverlaps,
		strict:        s.params.StrictBitBuffers,
	}

	var (
		arr    *zarr.Array
		buf    *labelBuffer
		colors map[int]uint32
		counts []float64
		err    error
	)

	switch s.params.Style {
	case StyleLabeled, StyleSplit:
		arr, err = s.labels.CreateArray(name, maskShape,
			[]int{1, 1, 1, sizeY, sizeX}, s.params.Dtype, s.params.Compressor)
		if err != nil {
			return nil, err
		}
		buf = newLabelBuffer(maskShape)
		colors, counts, err = compositeLabels(buf, objects, collapsed, opts)

	case Style6D:
		shape := append([]int{len(objects)}, maskShape...)
		arr, err = s.labels.CreateArray(name, shape,
			[]int{1, 1, 1, 1, sizeY, sizeX}, s.params.Dtype, s.params.Compressor)
		if err != nil {
			return nil, err
		}
		buf = newLabelBuffer(shape)
		counts, err = compositeStack(buf, objects, collapsed, opts)

	default:
		return nil, &ConfigurationError{Reason: fmt.Sprintf("unknown style %q", s.params.Style)}
	}
	if err != nil {
		return nil, err
	}

	if err := flushChunks(arr, buf); err != nil {
		return nil, fmt.Errorf("failed to write chunks for %q: %v", name, err)
	}

	attrs := zarr.ArrayAttrs{
		Image: &zarr.ImageLink{
			Array:  s.sourceLink(name),
			Source: map[string]interface{}{},
		},
		Color: colors,
	}
	if err := arr.SetAttrs(attrs); err != nil {
		return nil, fmt.Errorf("failed to write attributes for %q: %v", name, err)
	}
	if err := s.labels.AddLabel(name); err != nil {
		return nil, fmt.Errorf("failed to register label %q: %v", name, err)
	}

	if s.params.Verbose {
		fmt.Printf("Created %s\n", arr.Path())
	}

	return &SaveResult{
		Name:   name,
		Shape:  buf.shape,
		Colors: colors,
		Stats:  objectStats(counts),
		buf:    buf,
	}, nil
}

// SaveSplit writes every ROI as an independently named array, named by
// its integer id. Axis collapse is decided per ROI, not globally. The
// first failing ROI aborts the run; arrays already written stay
// committed.
func (s *Saver) SaveSplit(rois []models.ROI) ([]*SaveResult, error) {
	results := make([]*SaveResult, 0, len(rois))
	for _, roi := range rois {
		res, err := s.Save([][]models.MaskShape{roi.Shapes}, strconv.FormatInt(roi.ID, 10))
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// sourceLink is the image attribute written on an array: either the
// configured override, or a relative walk back up to the root of the
// zarr the labels live in.
func (s *Saver) sourceLink(name string) string {
	if s.params.SourceImage != "" {
		return s.params.SourceImage
	}
	depth := len(strings.Split(path.Join(s.labels.Path(), name), "/"))
	return strings.TrimSuffix(strings.Repeat("../", depth), "/")
}

// flushChunks writes the composited buffer out one plane-chunk at a
// time. Chunk grid indices are the plane indices with trailing zeros
// for the Y and X dimensions.
func flushChunks(arr *zarr.Array, buf *labelBuffer) error {
	rank := len(buf.shape)
	idx := make([]int, rank)

	var walk func(dim int) error
	walk = func(dim int) error {
		if dim == rank-2 {
			return arr.WriteChunk(idx, buf.plane(idx[:rank-2]))
		}
		for i := 0; i < buf.shape[dim]; i++ {
			idx[dim] = i
			if err := walk(dim + 1); err != nil {
				return err
			}
		}
		return nil
	}
	return walk(0)
}

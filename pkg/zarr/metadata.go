package zarr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

const (
	// KeyArray stores array metadata under a logical path
	KeyArray = ".zarray"
	// KeyGroup marks a logical path as a group
	KeyGroup = ".zgroup"
	// KeyAttributes stores userland metadata for a group or array
	KeyAttributes = ".zattrs"

	// FormatVersion is the zarr storage specification version written
	FormatVersion = 2
)

// ArrayMeta is the .zarray document describing one array: shape, chunk
// grid, element type and chunk compression.
type ArrayMeta struct {
	ZarrFormat int               `json:"zarr_format"`
	Shape      []int             `json:"shape"`
	Chunks     []int             `json:"chunks"`
	DtypeStr   string            `json:"dtype"`
	Compressor *CompressorConfig `json:"compressor"`
	FillValue  interface{}       `json:"fill_value"`
	Order      string            `json:"order"`
	Filters    []interface{}     `json:"filters"`
}

// Dtype parses the persisted type string.
func (m *ArrayMeta) Dtype() (Dtype, error) {
	return ParseTypeStr(m.DtypeStr)
}

type groupMeta struct {
	ZarrFormat int `json:"zarr_format"`
}

// GroupAttrs is the typed .zattrs document of a labels group. Labels is
// the ordered list of every array name written into the group.
type GroupAttrs struct {
	Labels []string `json:"labels,omitempty"`
}

// AddLabel appends name to the label list if it is not already present
// and reports whether the list changed.
func (a *GroupAttrs) AddLabel(name string) bool {
	for _, l := range a.Labels {
		if l == name {
			return false
		}
	}
	a.Labels = append(a.Labels, name)
	return true
}

// ImageLink records which source image array a labels array annotates.
// Array is a path relative to the labels array, or an absolute link.
type ImageLink struct {
	Array  string                 `json:"array"`
	Source map[string]interface{} `json:"source"`
}

// ArrayAttrs is the typed .zattrs document of one labels array.
type ArrayAttrs struct {
	// Image links the labels back to the annotated source image
	Image *ImageLink `json:"image,omitempty"`

	// Color maps 1-based label ids to packed RGBA fill colors. JSON
	// object keys are strings, so ids are stringified on write.
	Color map[int]uint32 `json:"-"`
}

// arrayAttrsDoc is the wire form of ArrayAttrs.
type arrayAttrsDoc struct {
	Image *ImageLink        `json:"image,omitempty"`
	Color map[string]uint32 `json:"color,omitempty"`
}

func (a ArrayAttrs) MarshalJSON() ([]byte, error) {
	doc := arrayAttrsDoc{Image: a.Image}
	if len(a.Color) > 0 {
		doc.Color = make(map[string]uint32, len(a.Color))
		for id, c := range a.Color {
			doc.Color[strconv.Itoa(id)] = c
		}
	}
	return json.Marshal(doc)
}

func (a *ArrayAttrs) UnmarshalJSON(d []byte) error {
	var doc arrayAttrsDoc
	if err := json.Unmarshal(d, &doc); err != nil {
		return err
	}
	a.Image = doc.Image
	a.Color = nil
	if len(doc.Color) > 0 {
		a.Color = make(map[int]uint32, len(doc.Color))
		for k, c := range doc.Color {
			id, err := strconv.Atoi(k)
			if err != nil {
				return fmt.Errorf("invalid color key %q: %v", k, err)
			}
			a.Color[id] = c
		}
	}
	return nil
}

// GridShape is the number of chunks along each dimension: for every
// dimension i, ceil(shape[i] / chunks[i]).
func GridShape(shape, chunks []int) []int {
	grid := make([]int, len(shape))
	for i := range shape {
		grid[i] = (shape[i] + chunks[i] - 1) / chunks[i]
	}
	return grid
}

// ChunkKey builds the storage key suffix for a chunk from its grid
// indices, joined with ".", e.g. [1 0 4] -> "1.0.4". A 0-D array has
// the single chunk key "0".
func ChunkKey(indices []int) string {
	if len(indices) == 0 {
		return "0"
	}
	var sb bytes.Buffer
	for i, idx := range indices {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.Itoa(idx))
	}
	return sb.String()
}

func putJSON(s Store, key string, v interface{}) error {
	d, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Put(key, bytes.NewReader(d))
}

func getJSON(s Store, key string, v interface{}) error {
	r, err := s.Get(key)
	if err != nil {
		return err
	}
	defer r.Close()
	return json.NewDecoder(r).Decode(v)
}

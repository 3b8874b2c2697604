package zarr

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"path"
)

// Array is a created or opened zarr array. Element values cross the API
// as int64 regardless of the stored dtype; encoding narrows them at
// chunk-write time.
type Array struct {
	store Store
	path  string
	meta  *ArrayMeta
	dtype Dtype
}

// Shape returns the array extents.
func (a *Array) Shape() []int { return a.meta.Shape }

// Chunks returns the chunk extents.
func (a *Array) Chunks() []int { return a.meta.Chunks }

// Dtype returns the element type.
func (a *Array) Dtype() Dtype { return a.dtype }

// Path returns the logical path of the array within the store.
func (a *Array) Path() string { return a.path }

// ChunkElems is the number of elements in one full chunk.
func (a *Array) ChunkElems() int {
	n := 1
	for _, c := range a.meta.Chunks {
		n *= c
	}
	return n
}

// WriteChunk encodes vals at the array dtype, compresses them and
// stores the chunk at the given grid indices. vals is in C order and
// must hold exactly one chunk.
func (a *Array) WriteChunk(indices []int, vals []int64) error {
	if len(indices) != len(a.meta.Shape) {
		return fmt.Errorf("chunk index rank %d does not match array rank %d", len(indices), len(a.meta.Shape))
	}
	if len(vals) != a.ChunkElems() {
		return fmt.Errorf("chunk has %d elements, expected %d", len(vals), a.ChunkElems())
	}

	raw := make([]byte, 0, len(vals)*a.dtype.Size())
	buf := bytes.NewBuffer(raw)
	for _, v := range vals {
		switch a.dtype {
		case Bool:
			b := byte(0)
			if v != 0 {
				b = 1
			}
			buf.WriteByte(b)
		case Int8:
			buf.WriteByte(byte(int8(v)))
		case Int16:
			binary.Write(buf, binary.LittleEndian, int16(v))
		case Int32:
			binary.Write(buf, binary.LittleEndian, int32(v))
		case Int64:
			binary.Write(buf, binary.LittleEndian, v)
		}
	}

	stored, err := a.meta.Compressor.Compress(buf.Bytes())
	if err != nil {
		return fmt.Errorf("failed to compress chunk %s: %v", ChunkKey(indices), err)
	}
	return a.store.Put(path.Join(a.path, ChunkKey(indices)), bytes.NewReader(stored))
}

// ReadChunk loads and decodes one chunk. Missing chunks come back as
// all fill-value zeros.
func (a *Array) ReadChunk(indices []int) ([]int64, error) {
	r, err := a.store.Get(path.Join(a.path, ChunkKey(indices)))
	if errors.Is(err, ErrNotFound) {
		return make([]int64, a.ChunkElems()), nil
	}
	if err != nil {
		return nil, err
	}
	defer r.Close()

	raw, err := a.meta.Compressor.Decompress(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress chunk %s: %v", ChunkKey(indices), err)
	}
	if len(raw) != a.ChunkElems()*a.dtype.Size() {
		return nil, fmt.Errorf("chunk %s has %d bytes, expected %d", ChunkKey(indices), len(raw), a.ChunkElems()*a.dtype.Size())
	}

	vals := make([]int64, a.ChunkElems())
	for i := range vals {
		switch a.dtype {
		case Bool:
			if raw[i] != 0 {
				vals[i] = 1
			}
		case Int8:
			vals[i] = int64(int8(raw[i]))
		case Int16:
			vals[i] = int64(int16(binary.LittleEndian.Uint16(raw[i*2:])))
		case Int32:
			vals[i] = int64(int32(binary.LittleEndian.Uint32(raw[i*4:])))
		case Int64:
			vals[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
		}
	}
	return vals, nil
}

// Attrs reads the array's .zattrs document.
func (a *Array) Attrs() (ArrayAttrs, error) {
	var attrs ArrayAttrs
	err := getJSON(a.store, path.Join(a.path, KeyAttributes), &attrs)
	if errors.Is(err, ErrNotFound) {
		return ArrayAttrs{}, nil
	}
	return attrs, err
}

// SetAttrs replaces the array's .zattrs document.
func (a *Array) SetAttrs(attrs ArrayAttrs) error {
	return putJSON(a.store, path.Join(a.path, KeyAttributes), attrs)
}

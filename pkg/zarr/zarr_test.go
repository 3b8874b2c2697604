package zarr

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

// TestGridShape verifies ceil-division chunk grid math.
func TestGridShape(t *testing.T) {
	got := GridShape([]int{2, 1, 5, 512, 512}, []int{1, 1, 1, 512, 512})
	if !reflect.DeepEqual(got, []int{2, 1, 5, 1, 1}) {
		t.Errorf("Expected [2 1 5 1 1], got %v", got)
	}

	got = GridShape([]int{10}, []int{3})
	if !reflect.DeepEqual(got, []int{4}) {
		t.Errorf("Expected [4], got %v", got)
	}
}

// TestChunkKey verifies chunk key construction.
func TestChunkKey(t *testing.T) {
	if key := ChunkKey([]int{1, 0, 4, 0, 0}); key != "1.0.4.0.0" {
		t.Errorf("Expected 1.0.4.0.0, got %s", key)
	}
	if key := ChunkKey(nil); key != "0" {
		t.Errorf("Expected 0 for scalar array, got %s", key)
	}
}

// TestCompressorRoundTrip verifies each codec restores chunk bytes.
func TestCompressorRoundTrip(t *testing.T) {
	raw := make([]byte, 1024)
	for i := range raw {
		raw[i] = byte(i % 7)
	}

	for _, id := range []string{CompressorZstd, CompressorZlib, CompressorNone} {
		comp, err := NewCompressor(id, 0)
		if err != nil {
			t.Fatalf("NewCompressor(%s) failed: %v", id, err)
		}

		stored, err := comp.Compress(raw)
		if err != nil {
			t.Fatalf("%s: Compress failed: %v", id, err)
		}

		back, err := comp.Decompress(bytes.NewReader(stored))
		if err != nil {
			t.Fatalf("%s: Decompress failed: %v", id, err)
		}
		if !reflect.DeepEqual(back, raw) {
			t.Errorf("%s: round trip mismatch", id)
		}
	}

	if _, err := NewCompressor("blosc", 0); err == nil {
		t.Errorf("Expected error for unsupported compressor")
	}
}

// TestGroupHierarchy verifies group creation, child listing and the
// label registry semantics.
func TestGroupHierarchy(t *testing.T) {
	store := NewMemoryStore()

	root, err := OpenRoot(store)
	if err != nil {
		t.Fatalf("OpenRoot failed: %v", err)
	}

	labels, err := root.Group("labels")
	if err != nil {
		t.Fatalf("Group failed: %v", err)
	}

	keys, err := root.GroupKeys()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(keys, []string{"labels"}) {
		t.Errorf("Expected child groups [labels], got %v", keys)
	}

	// AddLabel appends only when absent
	for _, name := range []string{"0", "nuclei", "0"} {
		if err := labels.AddLabel(name); err != nil {
			t.Fatalf("AddLabel failed: %v", err)
		}
	}
	attrs, err := labels.Attrs()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(attrs.Labels, []string{"0", "nuclei"}) {
		t.Errorf("Expected labels [0 nuclei], got %v", attrs.Labels)
	}
}

// TestArrayWriteRead verifies chunk encode/decode through the store at
// a narrow dtype.
func TestArrayWriteRead(t *testing.T) {
	store := NewMemoryStore()
	root, _ := OpenRoot(store)
	g, _ := root.Group("labels")

	comp, _ := NewCompressor(CompressorZstd, 0)
	arr, err := g.CreateArray("0", []int{1, 1, 1, 2, 3}, []int{1, 1, 1, 2, 3}, Int16, comp)
	if err != nil {
		t.Fatalf("CreateArray failed: %v", err)
	}

	vals := []int64{0, 1, 2, 300, -4, 5}
	if err := arr.WriteChunk([]int{0, 0, 0, 0, 0}, vals); err != nil {
		t.Fatalf("WriteChunk failed: %v", err)
	}

	opened, err := g.OpenArray("0")
	if err != nil {
		t.Fatalf("OpenArray failed: %v", err)
	}
	back, err := opened.ReadChunk([]int{0, 0, 0, 0, 0})
	if err != nil {
		t.Fatalf("ReadChunk failed: %v", err)
	}
	if !reflect.DeepEqual(back, vals) {
		t.Errorf("Expected %v, got %v", vals, back)
	}

	// Missing chunks read as fill-value zeros
	empty, err := opened.ReadChunk([]int{0, 0, 0, 0, 1})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range empty {
		if v != 0 {
			t.Errorf("Expected zero fill, got %d", v)
		}
	}
}

// TestArrayBoolEncoding verifies boolean chunks clamp to 0/1 bytes.
func TestArrayBoolEncoding(t *testing.T) {
	store := NewMemoryStore()
	root, _ := OpenRoot(store)
	g, _ := root.Group("labels")

	arr, err := g.CreateArray("mask", []int{2, 2}, []int{2, 2}, Bool, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := arr.WriteChunk([]int{0, 0}, []int64{0, 1, 2, 0}); err != nil {
		t.Fatal(err)
	}

	back, err := arr.ReadChunk([]int{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, []int64{0, 1, 1, 0}) {
		t.Errorf("Expected [0 1 1 0], got %v", back)
	}
}

// TestCreateArrayOverwrite verifies stale chunks of a replaced array do
// not leak into the new one.
func TestCreateArrayOverwrite(t *testing.T) {
	store := NewMemoryStore()
	root, _ := OpenRoot(store)
	g, _ := root.Group("labels")

	arr, _ := g.CreateArray("0", []int{2, 2}, []int{2, 2}, Int64, nil)
	arr.WriteChunk([]int{0, 0}, []int64{9, 9, 9, 9})

	arr, err := g.CreateArray("0", []int{2, 2}, []int{2, 2}, Int64, nil)
	if err != nil {
		t.Fatal(err)
	}
	back, err := arr.ReadChunk([]int{0, 0})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back, []int64{0, 0, 0, 0}) {
		t.Errorf("Expected cleared chunks after overwrite, got %v", back)
	}
}

// TestArrayAttrsJSON verifies the color map round-trips through string
// JSON keys.
func TestArrayAttrsJSON(t *testing.T) {
	attrs := ArrayAttrs{
		Image: &ImageLink{Array: "../..", Source: map[string]interface{}{}},
		Color: map[int]uint32{1: 0xFF0000FF, 2: 0x00FF00FF},
	}

	d, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var back ArrayAttrs
	if err := json.Unmarshal(d, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Image == nil || back.Image.Array != "../.." {
		t.Errorf("Expected image link to survive, got %+v", back.Image)
	}
	if !reflect.DeepEqual(back.Color, attrs.Color) {
		t.Errorf("Expected %v, got %v", attrs.Color, back.Color)
	}
}

// TestDtypeStrings verifies the persisted typestr mapping.
func TestDtypeStrings(t *testing.T) {
	cases := map[Dtype]string{
		Bool:  "|b1",
		Int8:  "|i1",
		Int16: "<i2",
		Int32: "<i4",
		Int64: "<i8",
	}
	for dt, want := range cases {
		if dt.TypeStr() != want {
			t.Errorf("Expected %s for %s, got %s", want, dt, dt.TypeStr())
		}
		back, err := ParseTypeStr(want)
		if err != nil || back != dt {
			t.Errorf("Expected %s to parse back to %s, got %s (%v)", want, dt, back, err)
		}
	}

	if _, err := ParseTypeStr("<f8"); err == nil {
		t.Errorf("Expected error for unsupported dtype")
	}
}

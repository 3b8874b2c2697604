package visualization

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// TestRender verifies background, declared fill colors and palette
// fallback.
func TestRender(t *testing.T) {
	plane := []int64{
		0, 1,
		2, 0,
	}
	colors := map[int]uint32{1: 0xFF000080}

	v := NewViewer(plane, 2, 2, colors)
	img, err := v.Render()
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if got := img.At(0, 0); !sameColor(got, color.RGBA{A: 0xff}) {
		t.Errorf("Expected black background, got %v", got)
	}

	// Label 1 uses its declared packed RGBA color
	if got := img.At(1, 0); !sameColor(got, color.RGBA{R: 0xFF, A: 0x80}) {
		t.Errorf("Expected declared fill color, got %v", got)
	}

	// Label 2 has no declared color and falls back to the palette
	if got := img.At(0, 1); !sameColor(got, palette[1]) {
		t.Errorf("Expected palette color, got %v", got)
	}
}

// TestRenderSizeMismatch verifies plane length validation.
func TestRenderSizeMismatch(t *testing.T) {
	v := NewViewer([]int64{0, 0, 0}, 2, 2, nil)
	if _, err := v.Render(); err == nil {
		t.Errorf("Expected error for mismatched plane size")
	}
}

// TestSavePNG verifies the file is written, creating directories as
// needed.
func TestSavePNG(t *testing.T) {
	v := NewViewer([]int64{0, 1, 1, 0}, 2, 2, nil)

	path := filepath.Join(t.TempDir(), "previews", "plane.png")
	if err := v.SavePNG(path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected preview file: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("Expected non-empty PNG")
	}
}

func sameColor(got color.Color, want color.RGBA) bool {
	r1, g1, b1, a1 := got.RGBA()
	r2, g2, b2, a2 := want.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

package masks

import (
	"errors"
	"testing"

	"masks2zarr/pkg/zarr"
)

// TestDtypeForBits verifies the closed bit-depth mapping and rejection
// of unmapped depths.
func TestDtypeForBits(t *testing.T) {
	cases := map[int]zarr.Dtype{
		1:  zarr.Bool,
		8:  zarr.Int8,
		16: zarr.Int16,
		32: zarr.Int32,
		64: zarr.Int64,
	}
	for bits, want := range cases {
		got, err := DtypeForBits(bits)
		if err != nil {
			t.Errorf("DtypeForBits(%d) failed: %v", bits, err)
		}
		if got != want {
			t.Errorf("Expected %s for %d bits, got %s", want, bits, got)
		}
	}

	_, err := DtypeForBits(12)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigurationError for 12 bits, got %v", err)
	}
}

// TestSelectDtype verifies the labeled+boolean auto-correction to 64
// bits.
func TestSelectDtype(t *testing.T) {
	dtype, adjusted, err := SelectDtype(1, StyleLabeled)
	if err != nil {
		t.Fatalf("SelectDtype failed: %v", err)
	}
	if !adjusted {
		t.Errorf("Expected adjustment for labeled style at 1 bit")
	}
	if dtype != zarr.Int64 {
		t.Errorf("Expected Int64, got %s", dtype)
	}

	dtype, adjusted, err = SelectDtype(1, Style6D)
	if err != nil {
		t.Fatalf("SelectDtype failed: %v", err)
	}
	if adjusted {
		t.Errorf("Expected no adjustment for 6d style at 1 bit")
	}
	if dtype != zarr.Bool {
		t.Errorf("Expected Bool, got %s", dtype)
	}
}

// TestParseStyle verifies style validation.
func TestParseStyle(t *testing.T) {
	for _, s := range []string{"labeled", "split", "6d"} {
		if _, err := ParseStyle(s); err != nil {
			t.Errorf("Expected %q to parse, got %v", s, err)
		}
	}

	_, err := ParseStyle("pyramid")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigurationError, got %v", err)
	}
}

package masks

import (
	"fmt"

	"masks2zarr/pkg/zarr"
)

// Style selects the output array layout.
type Style string

const (
	// StyleLabeled writes one (T,C,Z,Y,X) array where each object
	// contributes a unique non-zero integer id
	StyleLabeled Style = "labeled"

	// StyleSplit writes one labeled array per ROI, named by ROI id
	StyleSplit Style = "split"

	// Style6D writes one (G,T,C,Z,Y,X) array with a leading slice per
	// object group holding plain binary coverage
	Style6D Style = "6d"
)

// ParseStyle validates a style name from configuration.
func ParseStyle(s string) (Style, error) {
	switch Style(s) {
	case StyleLabeled, StyleSplit, Style6D:
		return Style(s), nil
	}
	return "", &ConfigurationError{Reason: fmt.Sprintf("unknown style %q", s)}
}

// DtypeForBits maps a label bit depth to the output element type. Any
// depth outside {1, 8, 16, 32, 64} is a ConfigurationError.
func DtypeForBits(bits int) (zarr.Dtype, error) {
	switch bits {
	case 1:
		return zarr.Bool, nil
	case 8:
		return zarr.Int8, nil
	case 16:
		return zarr.Int16, nil
	case 32:
		return zarr.Int32, nil
	case 64:
		return zarr.Int64, nil
	}
	return 0, &ConfigurationError{Reason: fmt.Sprintf("no dtype for %d label bits", bits)}
}

// SelectDtype resolves bit depth against the chosen style. Boolean
// elements cannot hold distinct label ids, so labeled output at 1 bit
// is widened to 64-bit integers; adjusted reports that correction.
func SelectDtype(bits int, style Style) (dtype zarr.Dtype, adjusted bool, err error) {
	dtype, err = DtypeForBits(bits)
	if err != nil {
		return 0, false, err
	}
	if style == StyleLabeled && bits == 1 {
		return zarr.Int64, true, nil
	}
	return dtype, false, nil
}

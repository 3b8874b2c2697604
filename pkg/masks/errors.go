package masks

import "fmt"

// ConfigurationError reports settings with no valid interpretation,
// such as an unmapped label bit depth or an unknown output style.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// OverlapError reports two objects claiming the same pixel in the same
// plane. Ordinal is the 0-based position of the offending object within
// its grouping.
type OverlapError struct {
	Ordinal int
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("mask %d overlaps with existing labels", e.Ordinal)
}

// GeometryError reports a packed bit buffer too short for the declared
// mask rectangle. Only raised in strict mode; the default behavior
// keeps the legacy silent truncation.
type GeometryError struct {
	WantBits int
	HaveBits int
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("mask bit buffer holds %d bits, %d required", e.HaveBits, e.WantBits)
}

// LinkageError reports a source image reference that cannot be resolved
// in the target store. Raised before any array is created.
type LinkageError struct {
	Target string
}

func (e *LinkageError) Error() string {
	return fmt.Sprintf("source image %q not found in store", e.Target)
}

// ParseError reports a malformed label-map file with per-line context.
// The whole map is discarded when any line fails.
type ParseError struct {
	File   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Reason)
}

package masks

// checkOverlap is the guard run before every additive write: the
// destination region must share no set pixel with the incoming plane.
// The check-then-add pair is atomic from the caller's perspective; the
// buffer has a single writer for the duration of one save.
func checkOverlap(buf *labelBuffer, prefix []int, p binPlane, ordinal int) error {
	if buf.overlaps(prefix, p) {
		return &OverlapError{Ordinal: ordinal}
	}
	return nil
}

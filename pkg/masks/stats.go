package masks

import "gonum.org/v1/gonum/stat"

// ObjectStats summarizes what one save wrote, reported the way the
// pipeline reports its other metrics after a run.
type ObjectStats struct {
	// Objects is the number of object groups written
	Objects int

	// LabeledPixels is the total number of pixel writes across all
	// planes (broadcast planes count each time)
	LabeledPixels int64

	// MeanSize and StdDevSize describe the distribution of per-object
	// written pixel counts
	MeanSize   float64
	StdDevSize float64
}

// objectStats reduces per-object pixel counts to summary statistics.
func objectStats(counts []float64) ObjectStats {
	s := ObjectStats{Objects: len(counts)}
	if len(counts) == 0 {
		return s
	}

	for _, c := range counts {
		s.LabeledPixels += int64(c)
	}
	s.MeanSize = stat.Mean(counts, nil)
	if len(counts) > 1 {
		s.StdDevSize = stat.StdDev(counts, nil)
	}
	return s
}

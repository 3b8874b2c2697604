package masks

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"masks2zarr/internal/models"
)

// LabelGroup is one named grouping from a label-map file: the ordered
// object sequences written together as one array.
type LabelGroup struct {
	Name    string
	Objects [][]models.MaskShape
}

// LoadLabelMap reads a label-map file assigning ROIs to named groups.
func LoadLabelMap(path string, rois []models.ROI) ([]LabelGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label map: %v", err)
	}
	defer f.Close()
	return ParseLabelMap(f, path, rois)
}

// ParseLabelMap parses lines of the form
//
//	source_id,name,roi_id
//
// grouping ROIs by name in first-appearance order. The source_id column
// is carried for provenance only and not interpreted. Any malformed
// line or unknown roi_id fails the whole map; no partial grouping is
// returned.
func ParseLabelMap(r io.Reader, filename string, rois []models.ROI) ([]LabelGroup, error) {
	roisByID := make(map[int64]models.ROI, len(rois))
	for _, roi := range rois {
		roisByID[roi.ID] = roi
	}

	var groups []LabelGroup
	index := map[string]int{}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, &ParseError{File: filename, Line: lineNo,
				Reason: fmt.Sprintf("expected 3 fields, got %d", len(fields))}
		}

		name := strings.TrimSpace(fields[1])
		if name == "" {
			return nil, &ParseError{File: filename, Line: lineNo, Reason: "empty group name"}
		}

		roiID, err := strconv.ParseInt(strings.TrimSpace(fields[2]), 10, 64)
		if err != nil {
			return nil, &ParseError{File: filename, Line: lineNo,
				Reason: fmt.Sprintf("invalid roi id %q", strings.TrimSpace(fields[2]))}
		}

		roi, ok := roisByID[roiID]
		if !ok {
			return nil, &ParseError{File: filename, Line: lineNo,
				Reason: fmt.Sprintf("unknown roi id %d", roiID)}
		}

		idx, ok := index[name]
		if !ok {
			idx = len(groups)
			index[name] = idx
			groups = append(groups, LabelGroup{Name: name})
		}
		groups[idx].Objects = append(groups[idx].Objects, roi.Shapes)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label map: %v", err)
	}

	return groups, nil
}

package masks

import (
	"strings"

	"masks2zarr/internal/models"
)

// axis identifies one of the three plane axes of the image volume.
type axis int

const (
	axisT axis = iota
	axisC
	axisZ
)

func (a axis) String() string {
	return [...]string{"T", "C", "Z"}[a]
}

// axisSet records which plane axes are collapsed to extent 1 in the
// output because no mask in the grouping places itself on them.
type axisSet struct {
	t, c, z bool
}

func (s axisSet) has(a axis) bool {
	switch a {
	case axisT:
		return s.t
	case axisC:
		return s.c
	case axisZ:
		return s.z
	}
	return false
}

func (s axisSet) String() string {
	var names []string
	for _, a := range []axis{axisT, axisC, axisZ} {
		if s.has(a) {
			names = append(names, a.String())
		}
	}
	return "{" + strings.Join(names, ", ") + "}"
}

// collapsedAxes determines which axes can be flattened for a grouping.
// An axis collapses only when every single mask of every object leaves
// it unspecified; one concrete coordinate anywhere keeps the axis at
// full image extent for the whole grouping.
func collapsedAxes(objects [][]models.MaskShape) axisSet {
	set := axisSet{t: true, c: true, z: true}
	for _, shapes := range objects {
		for _, m := range shapes {
			if m.T.Specified {
				set.t = false
			}
			if m.C.Specified {
				set.c = false
			}
			if m.Z.Specified {
				set.z = false
			}
		}
	}
	return set
}

// planeIndices lists the planes a mask must be written to along one
// axis:
//   - collapsed axis: index 0, regardless of any declared value
//   - declared value: that plane only
//   - otherwise: every plane of the axis
func planeIndices(collapsed axisSet, a axis, v models.PlaneIndex, extent int) []int {
	if collapsed.has(a) {
		return []int{0}
	}
	if v.Specified {
		return []int{v.Value}
	}
	all := make([]int, extent)
	for i := range all {
		all[i] = i
	}
	return all
}

// collapseShape applies an axisSet to the 5-D image shape, forcing
// collapsed axes to extent 1.
func collapseShape(img models.Image, collapsed axisSet) []int {
	shape := img.Shape()
	if collapsed.t {
		shape[0] = 1
	}
	if collapsed.c {
		shape[1] = 1
	}
	if collapsed.z {
		shape[2] = 1
	}
	return shape
}

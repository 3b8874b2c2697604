package zarr

import "fmt"

// Dtype is the closed set of element types this package can write.
// Labels are boolean or signed integers; the numpy typestr form is what
// gets persisted in .zarray metadata.
type Dtype int

const (
	Bool Dtype = iota
	Int8
	Int16
	Int32
	Int64
)

// TypeStr returns the numpy array-protocol type string stored in
// .zarray metadata. Multi-byte types are little-endian.
func (d Dtype) TypeStr() string {
	switch d {
	case Bool:
		return "|b1"
	case Int8:
		return "|i1"
	case Int16:
		return "<i2"
	case Int32:
		return "<i4"
	case Int64:
		return "<i8"
	}
	return ""
}

// Size returns the encoded width of one element in bytes.
func (d Dtype) Size() int {
	switch d {
	case Bool, Int8:
		return 1
	case Int16:
		return 2
	case Int32:
		return 4
	case Int64:
		return 8
	}
	return 0
}

func (d Dtype) String() string {
	switch d {
	case Bool:
		return "bool"
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	}
	return fmt.Sprintf("Dtype(%d)", int(d))
}

// ParseTypeStr maps a persisted type string back to a Dtype.
func ParseTypeStr(s string) (Dtype, error) {
	switch s {
	case "|b1":
		return Bool, nil
	case "|i1":
		return Int8, nil
	case "<i2":
		return Int16, nil
	case "<i4":
		return Int32, nil
	case "<i8":
		return Int64, nil
	}
	return 0, fmt.Errorf("unsupported dtype: %q", s)
}

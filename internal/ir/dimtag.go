package ir

import "fmt"

// Dimension constants for kernel entities.
const (
	DimPoint   = 0
	DimCurve   = 1
	DimSurface = 2
	DimVolume  = 3
)

// DimTag is a kernel handle: a (dimension, tag) pair identifying one
// committed geometric entity inside the kernel's model graph.
type DimTag struct {
	Dim int
	Tag int
}

// String renders the handle in the kernel's conventional notation.
func (dt DimTag) String() string {
	return fmt.Sprintf("(%d,%d)", dt.Dim, dt.Tag)
}

// KindName maps a dimension to the kernel's kind word used in script
// statements. Only curves, surfaces and volumes participate in boolean
// operations.
func KindName(dim int) (string, bool) {
	switch dim {
	case DimCurve:
		return "Line", true
	case DimSurface:
		return "Surface", true
	case DimVolume:
		return "Volume", true
	}
	return "", false
}

// UniformTags reports whether every handle in the list equals the first.
// The boolean fold requires each intersection step to produce a single
// uniform result group.
func UniformTags(tags []DimTag) bool {
	for _, dt := range tags[1:] {
		if dt != tags[0] {
			return false
		}
	}
	return true
}

// FormatTags renders a handle list for journal payloads and logs.
func FormatTags(tags []DimTag) string {
	out := ""
	for i, dt := range tags {
		if i > 0 {
			out += ";"
		}
		out += dt.String()
	}
	return out
}

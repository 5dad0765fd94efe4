package ir

// PrimitiveKind enumerates the closed set of primitive shapes the
// builder knows how to define. Adding a shape means adding a constant
// here plus its dimension entry; no new entity variant is required.
type PrimitiveKind string

const (
	KindRectangle PrimitiveKind = "rectangle"
	KindDisk      PrimitiveKind = "disk"
	KindBall      PrimitiveKind = "ball"
	KindBox       PrimitiveKind = "box"
	KindCone      PrimitiveKind = "cone"
	KindCylinder  PrimitiveKind = "cylinder"
	KindEllipsoid PrimitiveKind = "ellipsoid"
	KindTorus     PrimitiveKind = "torus"
	KindWedge     PrimitiveKind = "wedge"
)

// kindDimensions fixes the dimension of each shape kind.
// Planar shapes are surfaces, everything else is a volume.
var kindDimensions = map[PrimitiveKind]int{
	KindRectangle: DimSurface,
	KindDisk:      DimSurface,
	KindBall:      DimVolume,
	KindBox:       DimVolume,
	KindCone:      DimVolume,
	KindCylinder:  DimVolume,
	KindEllipsoid: DimVolume,
	KindTorus:     DimVolume,
	KindWedge:     DimVolume,
}

// Dimension returns the fixed dimension for the kind.
// The second return is false for unknown kinds.
func (k PrimitiveKind) Dimension() (int, bool) {
	dim, ok := kindDimensions[k]
	return dim, ok
}

// Valid reports whether k names a known shape kind.
func (k PrimitiveKind) Valid() bool {
	_, ok := kindDimensions[k]
	return ok
}

package occ

import "github.com/meshforge/csgkit/internal/ir"

type primitiveConfig struct {
	meshSize *float64
}

// PrimitiveOption annotates a primitive at creation.
type PrimitiveOption func(*primitiveConfig)

// MeshSize queues a target mesh size for the new entity. The size is a
// pure queue append here; the kernel sees it at FlushDeferred.
func MeshSize(size float64) PrimitiveOption {
	return func(c *primitiveConfig) { c.meshSize = &size }
}

// addPrimitive defines the shape against the bridge and applies the
// creation options. No kernel command is issued before Synchronize.
func (g *Geometry) addPrimitive(kind ir.PrimitiveKind, params []float64, opts []PrimitiveOption) (*ir.Primitive, error) {
	cfg := &primitiveConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	p, err := g.bridge.Define(kind, params)
	if err != nil {
		return nil, err
	}
	if cfg.meshSize != nil {
		g.deferred.AppendSize(ir.SizeEntry{Entity: p, Size: *cfg.meshSize})
	}
	return p, nil
}

// AddRectangle adds an axis-aligned rectangle with corner (x, y, z) and
// extents dx, dy.
func (g *Geometry) AddRectangle(x, y, z, dx, dy float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindRectangle, []float64{x, y, z, dx, dy}, opts)
}

// AddDisk adds an elliptical disk centered at (xc, yc, zc) with radii
// rx >= ry.
func (g *Geometry) AddDisk(xc, yc, zc, rx, ry float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindDisk, []float64{xc, yc, zc, rx, ry}, opts)
}

// AddBall adds a ball centered at (xc, yc, zc) with radius r.
func (g *Geometry) AddBall(xc, yc, zc, r float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindBall, []float64{xc, yc, zc, r}, opts)
}

// AddBox adds an axis-aligned box with corner (x, y, z) and extents
// dx, dy, dz.
func (g *Geometry) AddBox(x, y, z, dx, dy, dz float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindBox, []float64{x, y, z, dx, dy, dz}, opts)
}

// AddCone adds a cone from (x, y, z) along (dx, dy, dz) with base
// radius r0 and top radius r1.
func (g *Geometry) AddCone(x, y, z, dx, dy, dz, r0, r1 float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindCone, []float64{x, y, z, dx, dy, dz, r0, r1}, opts)
}

// AddCylinder adds a cylinder from (x, y, z) along (dx, dy, dz) with
// radius r.
func (g *Geometry) AddCylinder(x, y, z, dx, dy, dz, r float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindCylinder, []float64{x, y, z, dx, dy, dz, r}, opts)
}

// AddEllipsoid adds an ellipsoid centered at (xc, yc, zc) with radii
// rx, ry, rz.
func (g *Geometry) AddEllipsoid(xc, yc, zc, rx, ry, rz float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindEllipsoid, []float64{xc, yc, zc, rx, ry, rz}, opts)
}

// AddTorus adds a torus centered at (xc, yc, zc) with major radius r0
// and minor radius r1.
func (g *Geometry) AddTorus(xc, yc, zc, r0, r1 float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindTorus, []float64{xc, yc, zc, r0, r1}, opts)
}

// AddWedge adds a right-angular wedge with corner (x, y, z) and extents
// dx, dy, dz.
func (g *Geometry) AddWedge(x, y, z, dx, dy, dz float64, opts ...PrimitiveOption) (*ir.Primitive, error) {
	return g.addPrimitive(ir.KindWedge, []float64{x, y, z, dx, dy, dz}, opts)
}

package kernel

import (
	"strconv"
	"strings"

	"github.com/meshforge/csgkit/internal/ir"
)

// Kernel is the external kernel's command surface.
//
// The direct boolean calls return the flat list of result handles plus
// the kernel's mapping of each input to its output handles. Errors
// raised here originate inside the kernel (malformed geometry,
// numerical failure) and propagate unchanged through the builder.
type Kernel interface {
	// SetOption pushes a numeric kernel option (characteristic mesh
	// lengths at session start).
	SetOption(name string, value float64) error

	// DefinePrimitive registers a primitive shape under the given tag.
	// The shape only enters the queryable model graph at Synchronize.
	DefinePrimitive(tag int, def Definition) error

	// EmitScript submits one textual IR statement.
	EmitScript(stmt string) error

	// Synchronize commits every definition issued since the previous
	// barrier into the kernel's model graph.
	Synchronize() error

	// Intersect computes the boolean intersection of objects and tools.
	Intersect(objects, tools []ir.DimTag, removeObject, removeTool bool) (out []ir.DimTag, outMap [][]ir.DimTag, err error)

	// Fuse computes the boolean union of objects and tools.
	Fuse(objects, tools []ir.DimTag, removeObject, removeTool bool) (out []ir.DimTag, outMap [][]ir.DimTag, err error)

	// Cut subtracts tools from objects, consuming both.
	Cut(objects, tools []ir.DimTag) (out []ir.DimTag, outMap [][]ir.DimTag, err error)

	// Mesh annotations applied by deferred-queue flushes.
	SetSize(tags []ir.DimTag, size float64) error
	SetTransfiniteCurve(tag ir.DimTag, numNodes int, coeff float64) error
	SetTransfiniteSurface(tag ir.DimTag) error
	Recombine(tag ir.DimTag) error
	SetCompound(tags []ir.DimTag) error
	Embed(entity, target ir.DimTag) error

	// Finalize releases the kernel session.
	Finalize() error
}

// Definition describes one primitive shape: its kind, fixed dimension
// and numeric parameters. Parameter semantics belong to the kernel; the
// builder only transports them.
type Definition struct {
	Kind   ir.PrimitiveKind
	Dim    int
	Params []float64
}

// String renders the definition for journal payloads and logs.
// Floats use the shortest round-trippable form.
func (d Definition) String() string {
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = strconv.FormatFloat(p, 'g', -1, 64)
	}
	return string(d.Kind) + "(" + strings.Join(parts, ",") + ")"
}

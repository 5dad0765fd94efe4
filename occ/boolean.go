package occ

import "github.com/meshforge/csgkit/internal/ir"

type booleanConfig struct {
	deleteInput bool
	deleteTool  bool
}

// BooleanOption adjusts delete semantics of a fragments operation.
// Both sides are consumed by default.
type BooleanOption func(*booleanConfig)

// KeepInput leaves the input entities valid after the operation.
func KeepInput() BooleanOption {
	return func(c *booleanConfig) { c.deleteInput = false }
}

// KeepTool leaves the tool entities valid after the operation.
func KeepTool() BooleanOption {
	return func(c *booleanConfig) { c.deleteTool = false }
}

// BooleanFragments partitions the overlapping regions of the input and
// tool sets into non-overlapping pieces, emitted as one script-mode
// statement. The result is a named group that may expand to several
// kernel handles.
func (g *Geometry) BooleanFragments(inputs, tools []ir.Entity, opts ...BooleanOption) (ir.Entity, error) {
	cfg := &booleanConfig{deleteInput: true, deleteTool: true}
	for _, opt := range opts {
		opt(cfg)
	}
	return g.engine.Fragments(inputs, tools, cfg.deleteInput, cfg.deleteTool)
}

// BooleanUnion fuses at least two entities in a single N-ary kernel
// call, consuming every operand.
func (g *Geometry) BooleanUnion(entities []ir.Entity) (ir.Entity, error) {
	return g.engine.Union(entities)
}

// BooleanDifference subtracts d1 from d0, consuming both. Fails with
// INCONSISTENT_BOOLEAN_RESULT when the kernel fragments the result.
func (g *Geometry) BooleanDifference(d0, d1 ir.Entity) (ir.Entity, error) {
	return g.engine.Difference(d0, d1)
}

// BooleanIntersection intersects the entities as a left fold of binary
// kernel calls. A single entity is the identity case and performs zero
// kernel calls.
func (g *Geometry) BooleanIntersection(entities []ir.Entity) (ir.Entity, error) {
	return g.engine.Intersection(entities)
}

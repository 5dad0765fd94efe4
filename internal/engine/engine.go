package engine

import (
	"fmt"
	"log/slog"

	"github.com/meshforge/csgkit/internal/ir"
	"github.com/meshforge/csgkit/internal/kernel"
)

// Operation names used in error reporting.
const (
	opFragments    = "boolean_fragments"
	opUnion        = "boolean_union"
	opDifference   = "boolean_difference"
	opIntersection = "boolean_intersection"
)

// FragmentsOp is the kernel's script-mode operation word for the
// general boolean partition.
const FragmentsOp = "BooleanFragments"

// Engine executes boolean operations through the kernel bridge.
type Engine struct {
	clock  *Clock
	bridge *kernel.Bridge
	logger *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine over the given bridge with a fresh clock.
func New(bridge *kernel.Bridge, opts ...Option) *Engine {
	e := &Engine{
		clock:  NewClock(),
		bridge: bridge,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CurrentID returns the last allocated boolean id. Zero before the
// first operation.
func (e *Engine) CurrentID() int64 {
	return e.clock.Current()
}

// validateOperands runs the full precondition chain: liveness of every
// operand, legality of the first input's dimension, and dimensional
// agreement of everything else. Returns the shared dimension and its
// kind word. No side effect has happened when this fails.
func (e *Engine) validateOperands(op string, inputs, tools []ir.Entity) (int, string, error) {
	all := make([]ir.Entity, 0, len(inputs)+len(tools))
	all = append(all, inputs...)
	all = append(all, tools...)
	if err := ir.CheckAlive(op, all...); err != nil {
		return 0, "", err
	}

	dim := inputs[0].Dimension()
	kindWord, ok := ir.KindName(dim)
	if !ok {
		return 0, "", ir.NewIllegalDimensionError(op, dim)
	}
	for _, ent := range all[1:] {
		if ent.Dimension() != dim {
			return 0, "", ir.NewIncompatibleDimensionError(op, ent.ID(), ent.Dimension(), dim)
		}
	}
	return dim, kindWord, nil
}

// Fragments executes the general script-mode boolean operation,
// partitioning overlapping regions of the input and tool sets into
// non-overlapping pieces.
//
// On success the operation is emitted as one statement named bo<N> and
// a named-group entity of the shared dimension is returned; the name
// may expand to several kernel handles, so the result is list-valued.
// Delete flags are formatted independently per side and consume that
// side's operands.
func (e *Engine) Fragments(inputs, tools []ir.Entity, deleteInput, deleteTool bool) (ir.Entity, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%s: requires at least one input entity", opFragments)
	}
	dim, kindWord, err := e.validateOperands(opFragments, inputs, tools)
	if err != nil {
		return nil, err
	}

	id := e.clock.Next()
	name := fmt.Sprintf("bo%d", id)

	stmt := ir.BooleanStatement{
		Name:        name,
		Op:          FragmentsOp,
		Kind:        kindWord,
		InputIDs:    entityIDs(inputs),
		ToolIDs:     entityIDs(tools),
		DeleteInput: deleteInput,
		DeleteTool:  deleteTool,
	}
	if err := e.bridge.EmitBoolean(stmt); err != nil {
		return nil, err
	}

	if deleteInput {
		ir.InvalidateAll(inputs)
	}
	if deleteTool {
		ir.InvalidateAll(tools)
	}

	e.logger.Debug("fragments emitted", "name", name, "dim", dim)
	return ir.NewNamedGroup(name, dim), nil
}

// Union fuses all entities in a single N-ary kernel call, consuming
// every operand.
//
// The fuse call itself deletes the operands inside the kernel, so they
// are stamped dead as soon as it succeeds, even when the result check
// then fails: a kernel-consumed handle must never look usable.
func (e *Engine) Union(entities []ir.Entity) (ir.Entity, error) {
	if len(entities) < 2 {
		return nil, fmt.Errorf("%s: requires at least two entities", opUnion)
	}
	if _, _, err := e.validateOperands(opUnion, entities, nil); err != nil {
		return nil, err
	}

	objects := entities[0].DimTags()
	var tools []ir.DimTag
	for _, ent := range entities[1:] {
		tools = append(tools, ent.DimTags()...)
	}

	out, _, err := e.bridge.Fuse(objects, tools, true, true)
	if err != nil {
		return nil, err
	}
	ir.InvalidateAll(entities)

	if len(out) == 0 {
		return nil, ir.NewInconsistentResultError(opUnion, 0)
	}
	return ir.NewComposite("Union", out), nil
}

// Difference subtracts d1 from d0 in a single binary cut, consuming
// both. The kernel must return exactly one result group.
//
// A successful cut has already consumed both operands inside the
// kernel, so they are stamped dead before the result-count check; a
// fragmented result fails the operation but does not revive them.
func (e *Engine) Difference(d0, d1 ir.Entity) (ir.Entity, error) {
	if _, _, err := e.validateOperands(opDifference, []ir.Entity{d0}, []ir.Entity{d1}); err != nil {
		return nil, err
	}

	out, _, err := e.bridge.Cut(d0.DimTags(), d1.DimTags())
	if err != nil {
		return nil, err
	}
	ir.InvalidateAll([]ir.Entity{d0, d1})

	if len(out) != 1 {
		return nil, ir.NewInconsistentResultError(opDifference, len(out))
	}
	return ir.NewComposite("Difference", out), nil
}

// Intersection computes the N-ary intersection as a left fold of the
// kernel's binary intersect, consuming both operand sets of every step.
// Each step must yield a single uniform result group; a fragmented
// result aborts the fold. A single-element input is the identity case:
// the sole operand's handles are wrapped directly with zero kernel
// calls.
//
// Operands are stamped dead step by step, as soon as the kernel call
// that consumes them succeeds. When a later fold step fails, operands
// of completed steps stay dead and operands the fold never reached stay
// alive.
func (e *Engine) Intersection(entities []ir.Entity) (ir.Entity, error) {
	if len(entities) == 0 {
		return nil, fmt.Errorf("%s: requires at least one entity", opIntersection)
	}
	if _, _, err := e.validateOperands(opIntersection, entities, nil); err != nil {
		return nil, err
	}

	running := entities[0].DimTags()
	if len(entities) == 1 {
		return ir.NewComposite("Intersection", running), nil
	}

	for i, ent := range entities[1:] {
		out, _, err := e.bridge.Intersect(running, ent.DimTags(), true, true)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			entities[0].Invalidate()
		}
		ent.Invalidate()

		if len(out) == 0 {
			return nil, ir.NewInconsistentResultError(opIntersection, 0)
		}
		if !ir.UniformTags(out) {
			return nil, ir.NewInconsistentResultError(opIntersection, distinctTags(out))
		}
		running = []ir.DimTag{out[0]}
	}

	return ir.NewComposite("Intersection", running), nil
}

// entityIDs collects the kernel-addressable ids of a group.
func entityIDs(entities []ir.Entity) []string {
	ids := make([]string, len(entities))
	for i, ent := range entities {
		ids[i] = ent.ID()
	}
	return ids
}

// distinctTags counts the distinct handles in a result list.
func distinctTags(tags []ir.DimTag) int {
	seen := make(map[ir.DimTag]bool, len(tags))
	for _, dt := range tags {
		seen[dt] = true
	}
	return len(seen)
}

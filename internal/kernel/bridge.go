package kernel

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"

	"github.com/meshforge/csgkit/internal/ir"
	"github.com/meshforge/csgkit/internal/store"
)

// Bridge sits between the builder and the external kernel.
//
// It owns primitive handle allocation, the pending-definition ledger
// committed at Synchronize, script emission for the boolean engine, the
// deferred-queue flush, and journal recording. Every kernel interaction
// in the module funnels through exactly one Bridge.
//
// Single-threaded: the owning model mutates kernel state in place from
// one logical thread of control. The bridge adds no locking.
type Bridge struct {
	k       Kernel
	session string
	journal *store.Journal
	logger  *slog.Logger

	nextTag    map[int]int
	pending    []pendingDef
	everSynced bool
	seq        int64
}

type pendingDef struct {
	tag ir.DimTag
	def Definition
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithJournal attaches a command journal. Nil leaves recording off.
func WithJournal(j *store.Journal) BridgeOption {
	return func(b *Bridge) { b.journal = j }
}

// WithLogger sets the bridge logger.
func WithLogger(l *slog.Logger) BridgeOption {
	return func(b *Bridge) { b.logger = l }
}

// WithSessionToken overrides the generated session token.
// Used by tests and the scenario harness for deterministic journals.
func WithSessionToken(token string) BridgeOption {
	return func(b *Bridge) { b.session = token }
}

// NewBridge wraps a kernel session. The session token is a UUIDv7,
// time-sortable across sessions, unless overridden.
func NewBridge(k Kernel, opts ...BridgeOption) *Bridge {
	b := &Bridge{
		k:       k,
		session: uuid.Must(uuid.NewV7()).String(),
		logger:  slog.Default(),
		nextTag: make(map[int]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Session returns the session token stamped on journal records.
func (b *Bridge) Session() string { return b.session }

// Synchronized reports whether every primitive definition issued so far
// has been committed to the kernel's model graph.
func (b *Bridge) Synchronized() bool {
	return b.everSynced && len(b.pending) == 0
}

// journalCommand records one issued command when a journal is attached.
func (b *Bridge) journalCommand(kind, payload string) error {
	if b.journal == nil {
		return nil
	}
	b.seq++
	return b.journal.Append(context.Background(), store.CommandRecord{
		Session: b.session,
		Seq:     b.seq,
		Kind:    kind,
		Payload: payload,
	})
}

// SetOption pushes a numeric kernel option.
func (b *Bridge) SetOption(name string, value float64) error {
	payload := name + "=" + strconv.FormatFloat(value, 'g', -1, 64)
	if err := b.journalCommand(store.KindOption, payload); err != nil {
		return err
	}
	return b.k.SetOption(name, value)
}

// Define allocates a handle for a primitive and records it as pending.
// No kernel interaction happens here; the definition reaches the kernel
// at the next Synchronize. Tags are monotonic per dimension, never
// reused.
func (b *Bridge) Define(kind ir.PrimitiveKind, params []float64) (*ir.Primitive, error) {
	dim, ok := kind.Dimension()
	if !ok {
		return nil, fmt.Errorf("unknown primitive kind %q", kind)
	}

	b.nextTag[dim]++
	dt := ir.DimTag{Dim: dim, Tag: b.nextTag[dim]}
	def := Definition{Kind: kind, Dim: dim, Params: params}
	b.pending = append(b.pending, pendingDef{tag: dt, def: def})

	if err := b.journalCommand(store.KindDefine, fmt.Sprintf("%s tag=%s", def, dt)); err != nil {
		return nil, err
	}

	b.logger.Debug("primitive defined", "kind", string(kind), "tag", dt.String())
	return ir.NewPrimitive(kind, dt, params), nil
}

// EmitBoolean submits one script-mode boolean statement.
func (b *Bridge) EmitBoolean(stmt ir.BooleanStatement) error {
	text := stmt.Render()
	if err := b.journalCommand(store.KindScript, text); err != nil {
		return err
	}
	b.logger.Debug("boolean statement emitted", "name", stmt.Name, "op", stmt.Op)
	return b.k.EmitScript(text)
}

// Synchronize commits every pending primitive definition into the
// kernel's model graph. Required before any deferred-queue flush and
// before direct boolean operations can resolve entity handles.
func (b *Bridge) Synchronize() error {
	committed := len(b.pending)
	for _, p := range b.pending {
		if err := b.k.DefinePrimitive(p.tag.Tag, p.def); err != nil {
			return err
		}
	}
	if err := b.k.Synchronize(); err != nil {
		return err
	}
	b.pending = nil
	b.everSynced = true

	if err := b.journalCommand(store.KindSync, fmt.Sprintf("committed=%d", committed)); err != nil {
		return err
	}
	b.logger.Info("synchronized", "committed", committed)
	return nil
}

// Intersect issues one direct binary/N-ary intersection.
func (b *Bridge) Intersect(objects, tools []ir.DimTag, removeObject, removeTool bool) ([]ir.DimTag, [][]ir.DimTag, error) {
	payload := fmt.Sprintf("intersect objects=%s tools=%s removeObject=%t removeTool=%t",
		ir.FormatTags(objects), ir.FormatTags(tools), removeObject, removeTool)
	if err := b.journalCommand(store.KindBoolean, payload); err != nil {
		return nil, nil, err
	}
	return b.k.Intersect(objects, tools, removeObject, removeTool)
}

// Fuse issues one direct N-ary union.
func (b *Bridge) Fuse(objects, tools []ir.DimTag, removeObject, removeTool bool) ([]ir.DimTag, [][]ir.DimTag, error) {
	payload := fmt.Sprintf("fuse objects=%s tools=%s removeObject=%t removeTool=%t",
		ir.FormatTags(objects), ir.FormatTags(tools), removeObject, removeTool)
	if err := b.journalCommand(store.KindBoolean, payload); err != nil {
		return nil, nil, err
	}
	return b.k.Fuse(objects, tools, removeObject, removeTool)
}

// Cut issues one direct binary difference, consuming both sides.
func (b *Bridge) Cut(objects, tools []ir.DimTag) ([]ir.DimTag, [][]ir.DimTag, error) {
	payload := fmt.Sprintf("cut objects=%s tools=%s", ir.FormatTags(objects), ir.FormatTags(tools))
	if err := b.journalCommand(store.KindBoolean, payload); err != nil {
		return nil, nil, err
	}
	return b.k.Cut(objects, tools)
}

// FlushDeferred consumes every deferred-action queue, in the fixed
// cross-queue order size, transfinite-curve, transfinite-surface,
// recombine, compound, embed, issuing one kernel call per entry and
// clearing each queue.
//
// Preconditions: a Synchronize has committed every primitive
// definition, and every queued entry still references a live entity.
// A NOT_SYNCHRONIZED or USE_AFTER_DELETE violation leaves all queues
// untouched; the liveness sweep runs before the first drain so an
// entity consumed by a boolean delete flag after enqueue never has its
// stale handle resubmitted to the kernel.
func (b *Bridge) FlushDeferred(d *ir.Deferred) error {
	if !b.Synchronized() {
		return ir.NewNotSynchronizedError("flush_deferred")
	}
	if err := ir.CheckAlive("flush_deferred", d.Entities()...); err != nil {
		return err
	}

	for _, e := range d.DrainSize() {
		tags := e.Entity.DimTags()
		size := strconv.FormatFloat(e.Size, 'g', -1, 64)
		if err := b.journalCommand(store.KindFlush, fmt.Sprintf("setsize %s %s", ir.FormatTags(tags), size)); err != nil {
			return err
		}
		if err := b.k.SetSize(tags, e.Size); err != nil {
			return err
		}
	}

	for _, e := range d.DrainTransfiniteCurve() {
		for _, tag := range e.Curve.DimTags() {
			coeff := strconv.FormatFloat(e.Coeff, 'g', -1, 64)
			if err := b.journalCommand(store.KindFlush, fmt.Sprintf("transfinite_curve %s n=%d coeff=%s", tag, e.NumNodes, coeff)); err != nil {
				return err
			}
			if err := b.k.SetTransfiniteCurve(tag, e.NumNodes, e.Coeff); err != nil {
				return err
			}
		}
	}

	for _, e := range d.DrainTransfiniteSurface() {
		for _, tag := range e.Surface.DimTags() {
			if err := b.journalCommand(store.KindFlush, fmt.Sprintf("transfinite_surface %s", tag)); err != nil {
				return err
			}
			if err := b.k.SetTransfiniteSurface(tag); err != nil {
				return err
			}
		}
	}

	for _, e := range d.DrainRecombine() {
		for _, tag := range e.Surface.DimTags() {
			if err := b.journalCommand(store.KindFlush, fmt.Sprintf("recombine %s", tag)); err != nil {
				return err
			}
			if err := b.k.Recombine(tag); err != nil {
				return err
			}
		}
	}

	for _, e := range d.DrainCompound() {
		var tags []ir.DimTag
		for _, ent := range e.Entities {
			tags = append(tags, ent.DimTags()...)
		}
		if err := b.journalCommand(store.KindFlush, fmt.Sprintf("compound %s", ir.FormatTags(tags))); err != nil {
			return err
		}
		if err := b.k.SetCompound(tags); err != nil {
			return err
		}
	}

	for _, e := range d.DrainEmbed() {
		targets := e.Target.DimTags()
		if len(targets) == 0 {
			return fmt.Errorf("flush_deferred: embed target %q has no kernel handles", e.Target.ID())
		}
		for _, tag := range e.Entity.DimTags() {
			if err := b.journalCommand(store.KindFlush, fmt.Sprintf("embed %s -> %s", tag, targets[0])); err != nil {
				return err
			}
			if err := b.k.Embed(tag, targets[0]); err != nil {
				return err
			}
		}
	}

	b.logger.Info("deferred queues flushed")
	return nil
}

// Finalize releases the kernel session.
func (b *Bridge) Finalize() error {
	if err := b.journalCommand(store.KindFinalize, "session="+b.session); err != nil {
		return err
	}
	return b.k.Finalize()
}

package ir

import (
	"fmt"
	"strconv"
)

// Entity is the capability surface shared by all geometric records.
//
// ID is the kernel-addressable identifier used in script statements:
// the decimal tag for primitives, the assigned name (bo<N>) for
// script-mode boolean results, and a synthetic label for direct-mode
// composites. IDs are unique for the lifetime of the owning model.
//
// DimTags returns the resolved kernel handles, nil when the entity is a
// named group whose handles only exist after the kernel evaluates the
// emitted statement. IsList distinguishes that case.
type Entity interface {
	ID() string
	Dimension() int
	DimTags() []DimTag
	IsList() bool

	// Alive reports whether the entity may still be referenced.
	// Invalidate stamps it dead; there is no resurrection.
	Alive() bool
	Invalidate()
}

// dead is the shared use-after-delete stamp embedded in every variant.
type dead struct {
	deleted bool
}

func (d *dead) Alive() bool { return !d.deleted }
func (d *dead) Invalidate() { d.deleted = true }

// InvalidateAll stamps every entity in the list dead.
func InvalidateAll(entities []Entity) {
	for _, e := range entities {
		e.Invalidate()
	}
}

// CheckAlive verifies every operand is still valid. It returns a
// USE_AFTER_DELETE error naming the first dead entity, before any id
// allocation or kernel interaction has happened.
func CheckAlive(op string, entities ...Entity) error {
	for _, e := range entities {
		if !e.Alive() {
			return NewUseAfterDeleteError(op, e.ID())
		}
	}
	return nil
}

// Primitive is a single shape defined against the kernel.
// It carries exactly one handle, allocated at definition time and
// committed to the kernel's model graph at the next synchronize.
type Primitive struct {
	dead
	kind   PrimitiveKind
	dimTag DimTag
	params []float64
}

// NewPrimitive builds a primitive record for an allocated handle.
func NewPrimitive(kind PrimitiveKind, dt DimTag, params []float64) *Primitive {
	return &Primitive{kind: kind, dimTag: dt, params: params}
}

func (p *Primitive) ID() string          { return strconv.Itoa(p.dimTag.Tag) }
func (p *Primitive) Dimension() int      { return p.dimTag.Dim }
func (p *Primitive) DimTags() []DimTag   { return []DimTag{p.dimTag} }
func (p *Primitive) IsList() bool        { return false }
func (p *Primitive) Kind() PrimitiveKind { return p.kind }
func (p *Primitive) Params() []float64   { return p.params }

// Composite wraps the raw result handles of a direct-kernel boolean
// operation under its operation label (Union, Difference, Intersection).
type Composite struct {
	dead
	label   string
	dimTags []DimTag
}

// NewComposite builds a composite from a non-empty handle list.
// Dimension is inherited from the first handle.
func NewComposite(label string, tags []DimTag) *Composite {
	return &Composite{label: label, dimTags: tags}
}

func (c *Composite) ID() string        { return fmt.Sprintf("%s[%s]", c.label, FormatTags(c.dimTags)) }
func (c *Composite) Dimension() int    { return c.dimTags[0].Dim }
func (c *Composite) DimTags() []DimTag { return c.dimTags }
func (c *Composite) IsList() bool      { return true }
func (c *Composite) Label() string     { return c.label }

// NamedGroup is the result of a script-mode boolean operation. The
// kernel resolves the name to one or more handles when it evaluates the
// statement, so no handles are available here.
type NamedGroup struct {
	dead
	name string
	dim  int
}

// NewNamedGroup builds a named group result (bo<N>) of the given
// dimension.
func NewNamedGroup(name string, dim int) *NamedGroup {
	return &NamedGroup{name: name, dim: dim}
}

func (g *NamedGroup) ID() string        { return g.name }
func (g *NamedGroup) Dimension() int    { return g.dim }
func (g *NamedGroup) DimTags() []DimTag { return nil }
func (g *NamedGroup) IsList() bool      { return true }

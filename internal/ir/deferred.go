package ir

// Deferred action entries. Each pairs an entity created strictly before
// enqueue with the payload its kernel call needs at flush time.

// SizeEntry requests a target mesh size on an entity.
type SizeEntry struct {
	Entity Entity
	Size   float64
}

// TransfiniteCurveEntry requests transfinite interpolation on a curve.
type TransfiniteCurveEntry struct {
	Curve    Entity
	NumNodes int
	Coeff    float64
}

// TransfiniteSurfaceEntry requests transfinite interpolation on a
// surface.
type TransfiniteSurfaceEntry struct {
	Surface Entity
}

// RecombineEntry requests recombination of a surface's mesh.
type RecombineEntry struct {
	Surface Entity
}

// CompoundEntry groups entities into one meshing compound.
type CompoundEntry struct {
	Entities []Entity
}

// EmbedEntry embeds an entity into a target entity's mesh.
type EmbedEntry struct {
	Entity Entity
	Target Entity
}

// Deferred holds the six independent FIFO queues of pending mesh
// annotations. Appends preserve insertion order per queue; relative
// order between two distinct queues carries no meaning.
//
// The queues have a single documented owner: the kernel bridge's flush
// consumes each queue completely, in order, one kernel call per entry,
// then clears it. Nothing else drains them.
type Deferred struct {
	size      []SizeEntry
	tfCurve   []TransfiniteCurveEntry
	tfSurface []TransfiniteSurfaceEntry
	recombine []RecombineEntry
	compound  []CompoundEntry
	embed     []EmbedEntry
}

// NewDeferred creates an empty queue set.
func NewDeferred() *Deferred {
	return &Deferred{}
}

func (d *Deferred) AppendSize(e SizeEntry) { d.size = append(d.size, e) }
func (d *Deferred) AppendTransfiniteCurve(e TransfiniteCurveEntry) {
	d.tfCurve = append(d.tfCurve, e)
}
func (d *Deferred) AppendTransfiniteSurface(e TransfiniteSurfaceEntry) {
	d.tfSurface = append(d.tfSurface, e)
}
func (d *Deferred) AppendRecombine(e RecombineEntry) { d.recombine = append(d.recombine, e) }
func (d *Deferred) AppendCompound(e CompoundEntry)   { d.compound = append(d.compound, e) }
func (d *Deferred) AppendEmbed(e EmbedEntry)         { d.embed = append(d.embed, e) }

// Drain methods hand the queue's entries to the flush owner and clear
// the queue. Insertion order is preserved.

func (d *Deferred) DrainSize() []SizeEntry {
	out := d.size
	d.size = nil
	return out
}

func (d *Deferred) DrainTransfiniteCurve() []TransfiniteCurveEntry {
	out := d.tfCurve
	d.tfCurve = nil
	return out
}

func (d *Deferred) DrainTransfiniteSurface() []TransfiniteSurfaceEntry {
	out := d.tfSurface
	d.tfSurface = nil
	return out
}

func (d *Deferred) DrainRecombine() []RecombineEntry {
	out := d.recombine
	d.recombine = nil
	return out
}

func (d *Deferred) DrainCompound() []CompoundEntry {
	out := d.compound
	d.compound = nil
	return out
}

func (d *Deferred) DrainEmbed() []EmbedEntry {
	out := d.embed
	d.embed = nil
	return out
}

// Entities returns every entity a pending entry references, in flush
// order, without draining anything. The flush owner sweeps this list
// for liveness before the first drain, so an entity consumed by a
// delete flag after enqueue fails the whole flush instead of
// resubmitting a stale handle.
func (d *Deferred) Entities() []Entity {
	var out []Entity
	for _, e := range d.size {
		out = append(out, e.Entity)
	}
	for _, e := range d.tfCurve {
		out = append(out, e.Curve)
	}
	for _, e := range d.tfSurface {
		out = append(out, e.Surface)
	}
	for _, e := range d.recombine {
		out = append(out, e.Surface)
	}
	for _, e := range d.compound {
		out = append(out, e.Entities...)
	}
	for _, e := range d.embed {
		out = append(out, e.Entity, e.Target)
	}
	return out
}

// SizeLen returns the size queue length without draining.
func (d *Deferred) SizeLen() int { return len(d.size) }

// Len returns the total number of pending entries across all queues.
func (d *Deferred) Len() int {
	return len(d.size) + len(d.tfCurve) + len(d.tfSurface) +
		len(d.recombine) + len(d.compound) + len(d.embed)
}

// Empty reports whether every queue is empty.
func (d *Deferred) Empty() bool { return d.Len() == 0 }

// Package ir defines the data model shared by every layer of csgkit:
// entities, kernel handles, deferred-action queues, the textual boolean
// statement form, and the plan representation executed by the facade.
//
// ENTITY MODEL:
//
// An Entity is anything the builder can hand to a boolean operation or a
// deferred mesh annotation. Three concrete variants exist:
//
//   - Primitive: a single shape defined against the kernel, carrying one
//     (dimension, tag) handle. Dimension is fixed by the shape kind:
//     2 for planar shapes, 3 for solids.
//   - Composite: the result of a direct-kernel boolean operation,
//     wrapping the raw result handles under an operation label.
//   - NamedGroup: the result of a script-mode boolean operation. It is
//     addressed by name (bo1, bo2, ...) and may expand to several kernel
//     handles once the kernel evaluates the statement, so IsList reports
//     true and no handles are available up front.
//
// Entities consumed by a boolean operation's delete flags are stamped
// dead via Invalidate. Every consumer checks CheckAlive before touching
// the kernel; a dead entity yields a USE_AFTER_DELETE error instead of
// resubmitting a stale handle.
//
// ORDERING:
//
// All identity in this package is deterministic: primitive tags are
// allocated monotonically per dimension, boolean names embed a strictly
// increasing counter, and journal record IDs are content-addressed over
// a canonical encoding. No wall-clock input participates in identity.
package ir

// Package engine implements the boolean-operation engine.
//
// The engine validates boolean algebra over entities and lowers it to
// the kernel through the bridge, in two execution modes:
//
// Script/IR mode (fragments): the operation is emitted as one textual
// statement naming its output bo<N>, where N comes from the engine's
// monotonic clock. The kernel resolves the name to result handles when
// it evaluates the statement.
//
// Direct-kernel mode (intersection, union, difference): the operation
// runs against already-resolved handles. Union is a single N-ary fuse.
// Difference is a single binary cut that must yield exactly one result
// group. The kernel only offers binary intersection, so N-ary
// intersection is a left fold of pairwise intersects, each step
// required to yield a single uniform result group; a singleton input is
// the identity case and touches the kernel zero times.
//
// VALIDATION ORDER:
//
// Every operation validates before any side effect: liveness of all
// operands, then legality of the first operand's dimension, then
// dimensional agreement of the rest. A rejected operation has allocated
// no id, stamped nothing dead, and issued no kernel command. Operands
// consumed by delete semantics are stamped dead only after the kernel
// accepted the operation.
package engine

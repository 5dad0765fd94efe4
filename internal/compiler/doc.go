// Package compiler parses declarative CUE build plans into the
// intermediate representation executed by the model facade.
//
// A plan is a CUE struct with a name and an ordered list of steps; each
// step is discriminated by which of its fields is present (add, boolean,
// synchronize, flush). The compiler produces an ir.Plan and leaves
// structural validation (label binding, operand arity) to
// ir.Plan.Validate, so CUE input and programmatically built plans go
// through the same checks.
package compiler

// Package harness runs declarative build scenarios end to end and
// snapshots the exact kernel command stream they lower to.
//
// A scenario is a YAML file describing a build plan: primitive
// definitions, synchronize barriers, boolean operations and deferred
// flushes. The harness executes the plan against the model facade with
// a scripted in-memory kernel and compares the recorded command stream
// against a golden file, so any change to lowering order, statement
// rendering or tag allocation shows up as a diff.
package harness

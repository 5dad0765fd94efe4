// Package kernel is the only layer that talks to the external geometry
// kernel.
//
// The Kernel interface is the exact command surface the kernel exposes:
// primitive definition, textual script statements, the synchronize
// barrier, the three direct boolean entrypoints (intersect, fuse, cut),
// the mesh-annotation calls consumed by deferred-queue flushes, and
// session finalization. Production code wires a real kernel binding;
// tests wire testutil.FakeKernel.
//
// The Bridge in front of it owns everything the builder defers:
//
//   - A pending-definition ledger. Primitive definitions allocate their
//     handle immediately but are not pushed into the kernel's model
//     graph until Synchronize. There is no implicit auto-synchronize;
//     call-order correctness is the caller's responsibility.
//   - Deferred-queue flushing. FlushDeferred refuses to run until a
//     synchronize has committed every pending definition, then consumes
//     the queues completely in a fixed cross-queue order.
//   - The command journal. When attached, every command issued through
//     the bridge is recorded with a strictly increasing sequence number
//     and a content-addressed id.
//
// One kernel session exists per bridge. Finalize releases it; the
// owning model guarantees exactly one Finalize on every exit path.
package kernel

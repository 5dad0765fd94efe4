package testutil

import (
	"fmt"
	"strconv"

	"github.com/meshforge/csgkit/internal/ir"
	"github.com/meshforge/csgkit/internal/kernel"
)

// FakeKernel is a scripted in-memory stand-in for the external geometry
// kernel. It records every call as one formatted line in Calls, in
// issue order, so tests and golden files can assert on the exact
// command stream the builder lowers to.
//
// Direct boolean results default to a single freshly allocated handle
// group. Tests exercising fragmented or empty kernel results push
// scripted outputs onto the per-operation queues; tests exercising
// kernel failures inject errors by method name.
//
// Not safe for concurrent use. The builder is single-threaded and the
// fake inherits that assumption.
type FakeKernel struct {
	Calls []string

	// Scripted result lists, consumed front to back. A nil or exhausted
	// queue falls back to the default single-group result.
	IntersectOuts [][]ir.DimTag
	FuseOuts      [][]ir.DimTag
	CutOuts       [][]ir.DimTag

	// Errs injects a kernel error per method name (e.g. "cut").
	Errs map[string]error

	FinalizeCount int

	nextTag int
}

// NewFakeKernel creates a fake with result tags starting at 100,
// clearly apart from primitive tags.
func NewFakeKernel() *FakeKernel {
	return &FakeKernel{nextTag: 100}
}

func (k *FakeKernel) record(format string, args ...any) {
	k.Calls = append(k.Calls, fmt.Sprintf(format, args...))
}

func (k *FakeKernel) err(method string) error {
	if k.Errs == nil {
		return nil
	}
	return k.Errs[method]
}

// BooleanCalls returns how many direct boolean calls were issued.
func (k *FakeKernel) BooleanCalls() int {
	n := 0
	for _, c := range k.Calls {
		switch {
		case len(c) >= 9 && c[:9] == "intersect":
			n++
		case len(c) >= 4 && c[:4] == "fuse":
			n++
		case len(c) >= 3 && c[:3] == "cut":
			n++
		}
	}
	return n
}

func (k *FakeKernel) SetOption(name string, value float64) error {
	k.record("option %s=%s", name, strconv.FormatFloat(value, 'g', -1, 64))
	return k.err("setoption")
}

func (k *FakeKernel) DefinePrimitive(tag int, def kernel.Definition) error {
	k.record("define %d %s", tag, def)
	return k.err("defineprimitive")
}

func (k *FakeKernel) EmitScript(stmt string) error {
	k.record("script %s", stmt)
	return k.err("emitscript")
}

func (k *FakeKernel) Synchronize() error {
	k.record("synchronize")
	return k.err("synchronize")
}

func (k *FakeKernel) Intersect(objects, tools []ir.DimTag, removeObject, removeTool bool) ([]ir.DimTag, [][]ir.DimTag, error) {
	k.record("intersect objects=%s tools=%s removeObject=%t removeTool=%t",
		ir.FormatTags(objects), ir.FormatTags(tools), removeObject, removeTool)
	if err := k.err("intersect"); err != nil {
		return nil, nil, err
	}
	out := k.popOut(&k.IntersectOuts, objects)
	return out, [][]ir.DimTag{out}, nil
}

func (k *FakeKernel) Fuse(objects, tools []ir.DimTag, removeObject, removeTool bool) ([]ir.DimTag, [][]ir.DimTag, error) {
	k.record("fuse objects=%s tools=%s removeObject=%t removeTool=%t",
		ir.FormatTags(objects), ir.FormatTags(tools), removeObject, removeTool)
	if err := k.err("fuse"); err != nil {
		return nil, nil, err
	}
	out := k.popOut(&k.FuseOuts, objects)
	return out, [][]ir.DimTag{out}, nil
}

func (k *FakeKernel) Cut(objects, tools []ir.DimTag) ([]ir.DimTag, [][]ir.DimTag, error) {
	k.record("cut objects=%s tools=%s", ir.FormatTags(objects), ir.FormatTags(tools))
	if err := k.err("cut"); err != nil {
		return nil, nil, err
	}
	out := k.popOut(&k.CutOuts, objects)
	return out, [][]ir.DimTag{out}, nil
}

// popOut takes the next scripted result, or allocates the default
// single-group result in the operands' dimension.
func (k *FakeKernel) popOut(queue *[][]ir.DimTag, objects []ir.DimTag) []ir.DimTag {
	if len(*queue) > 0 {
		out := (*queue)[0]
		*queue = (*queue)[1:]
		return out
	}
	dim := 3
	if len(objects) > 0 {
		dim = objects[0].Dim
	}
	out := []ir.DimTag{{Dim: dim, Tag: k.nextTag}}
	k.nextTag++
	return out
}

func (k *FakeKernel) SetSize(tags []ir.DimTag, size float64) error {
	k.record("setsize %s %s", ir.FormatTags(tags), strconv.FormatFloat(size, 'g', -1, 64))
	return k.err("setsize")
}

func (k *FakeKernel) SetTransfiniteCurve(tag ir.DimTag, numNodes int, coeff float64) error {
	k.record("transfinite_curve %s n=%d coeff=%s", tag, numNodes, strconv.FormatFloat(coeff, 'g', -1, 64))
	return k.err("settransfinitecurve")
}

func (k *FakeKernel) SetTransfiniteSurface(tag ir.DimTag) error {
	k.record("transfinite_surface %s", tag)
	return k.err("settransfinitesurface")
}

func (k *FakeKernel) Recombine(tag ir.DimTag) error {
	k.record("recombine %s", tag)
	return k.err("recombine")
}

func (k *FakeKernel) SetCompound(tags []ir.DimTag) error {
	k.record("compound %s", ir.FormatTags(tags))
	return k.err("setcompound")
}

func (k *FakeKernel) Embed(entity, target ir.DimTag) error {
	k.record("embed %s -> %s", entity, target)
	return k.err("embed")
}

func (k *FakeKernel) Finalize() error {
	k.record("finalize")
	k.FinalizeCount++
	return k.err("finalize")
}

var _ kernel.Kernel = (*FakeKernel)(nil)

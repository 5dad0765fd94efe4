package occ_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshforge/csgkit/internal/ir"
	"github.com/meshforge/csgkit/internal/store"
	"github.com/meshforge/csgkit/internal/testutil"
	"github.com/meshforge/csgkit/occ"
)

func newGeometry(t *testing.T, opts ...occ.Option) (*testutil.FakeKernel, *occ.Geometry) {
	t.Helper()
	fk := testutil.NewFakeKernel()
	g, err := occ.New(fk, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return fk, g
}

func TestNew_CharacteristicLengths(t *testing.T) {
	fk, _ := newGeometry(t,
		occ.WithCharacteristicLengthMin(0.01),
		occ.WithCharacteristicLengthMax(0.5),
	)

	assert.Equal(t, []string{
		"option Mesh.CharacteristicLengthMin=0.01",
		"option Mesh.CharacteristicLengthMax=0.5",
	}, fk.Calls)
}

func TestClose_Idempotent(t *testing.T) {
	fk := testutil.NewFakeKernel()
	g, err := occ.New(fk)
	require.NoError(t, err)

	require.NoError(t, g.Close())
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())

	assert.Equal(t, 1, fk.FinalizeCount, "session released exactly once")
}

func TestAddPrimitives_UniqueIDsAndDimensions(t *testing.T) {
	_, g := newGeometry(t)

	rect, err := g.AddRectangle(0, 0, 0, 2, 1)
	require.NoError(t, err)
	disk, err := g.AddDisk(0, 0, 0, 1, 0.5)
	require.NoError(t, err)
	ball, err := g.AddBall(0, 0, 0, 1)
	require.NoError(t, err)
	box, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	cone, err := g.AddCone(0, 0, 0, 0, 0, 1, 1, 0)
	require.NoError(t, err)
	cyl, err := g.AddCylinder(0, 0, 0, 0, 0, 1, 0.5)
	require.NoError(t, err)
	ell, err := g.AddEllipsoid(0, 0, 0, 1, 2, 3)
	require.NoError(t, err)
	torus, err := g.AddTorus(0, 0, 0, 2, 0.5)
	require.NoError(t, err)
	wedge, err := g.AddWedge(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)

	surfaces := []ir.Entity{rect, disk}
	solids := []ir.Entity{ball, box, cone, cyl, ell, torus, wedge}

	seen := map[string]bool{}
	for _, e := range surfaces {
		assert.Equal(t, 2, e.Dimension())
		assert.False(t, seen["2/"+e.ID()], "duplicate id %s", e.ID())
		seen["2/"+e.ID()] = true
	}
	for _, e := range solids {
		assert.Equal(t, 3, e.Dimension())
		assert.False(t, seen["3/"+e.ID()], "duplicate id %s", e.ID())
		seen["3/"+e.ID()] = true
	}
}

func TestMeshSize_QueuesWithoutKernelCommands(t *testing.T) {
	fk, g := newGeometry(t)

	_, err := g.AddRectangle(0, 0, 0, 1, 1, occ.MeshSize(5))
	require.NoError(t, err)

	assert.Equal(t, 1, g.PendingDeferred(), "exactly one size entry queued")
	assert.Empty(t, fk.Calls, "zero kernel commands before synchronization")
}

func TestFlushDeferred_RequiresSynchronize(t *testing.T) {
	fk, g := newGeometry(t)

	_, err := g.AddBox(0, 0, 0, 1, 1, 1, occ.MeshSize(0.2))
	require.NoError(t, err)

	err = g.FlushDeferred()
	require.Error(t, err)
	assert.True(t, ir.IsNotSynchronized(err))
	assert.Equal(t, 1, g.PendingDeferred())

	require.NoError(t, g.Synchronize())
	require.NoError(t, g.FlushDeferred())
	assert.Equal(t, 0, g.PendingDeferred())
	assert.Equal(t, "setsize (3,1) 0.2", fk.Calls[len(fk.Calls)-1])
}

func TestSetMeshSize_AfterDelete(t *testing.T) {
	_, g := newGeometry(t)

	a, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	b, err := g.AddBall(0.5, 0.5, 0.5, 0.4)
	require.NoError(t, err)
	require.NoError(t, g.Synchronize())

	_, err = g.BooleanUnion([]ir.Entity{a, b})
	require.NoError(t, err)

	err = g.SetMeshSize(a, 5)
	require.Error(t, err)
	assert.True(t, ir.IsUseAfterDelete(err))
	assert.Equal(t, 0, g.PendingDeferred(), "failed append leaves queues unchanged")
}

func TestFlushDeferred_StaleEntryFails(t *testing.T) {
	fk, g := newGeometry(t)

	a, err := g.AddBox(0, 0, 0, 1, 1, 1, occ.MeshSize(0.1))
	require.NoError(t, err)
	b, err := g.AddBall(0.5, 0.5, 0.5, 0.4)
	require.NoError(t, err)
	require.NoError(t, g.Synchronize())

	// The queued entity is consumed between enqueue and flush.
	_, err = g.BooleanDifference(a, b)
	require.NoError(t, err)

	err = g.FlushDeferred()
	require.Error(t, err)
	assert.True(t, ir.IsUseAfterDelete(err))
	assert.Equal(t, 1, g.PendingDeferred(), "queues untouched on the failed sweep")
	assert.Equal(t, "cut objects=(3,1) tools=(3,2)", fk.Calls[len(fk.Calls)-1],
		"the consumed tag is never resubmitted")
}

func TestDeferred_RejectsNamedGroup(t *testing.T) {
	_, g := newGeometry(t)

	a, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	b, err := g.AddBox(0.5, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	c, err := g.AddBox(1, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	require.NoError(t, g.Synchronize())

	group, err := g.BooleanFragments([]ir.Entity{a}, []ir.Entity{b})
	require.NoError(t, err)

	err = g.SetMeshSize(group, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kernel handles")

	err = g.Embed(c, group)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no kernel handles")

	assert.Equal(t, 0, g.PendingDeferred(), "rejected appends queue nothing")
}

func TestDeferredAppends_AllQueues(t *testing.T) {
	_, g := newGeometry(t)

	surf, err := g.AddRectangle(0, 0, 0, 1, 1)
	require.NoError(t, err)
	vol, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)

	require.NoError(t, g.SetMeshSize(surf, 1))
	require.NoError(t, g.SetTransfiniteCurve(surf, 10, 1.05))
	require.NoError(t, g.SetTransfiniteSurface(surf))
	require.NoError(t, g.SetRecombine(surf))
	require.NoError(t, g.AddCompound([]ir.Entity{surf, vol}))
	require.NoError(t, g.Embed(surf, vol))

	assert.Equal(t, 6, g.PendingDeferred())
}

func TestBooleanFragments_QueuesUnchangedOnFailure(t *testing.T) {
	_, g := newGeometry(t)

	rect, err := g.AddRectangle(0, 0, 0, 1, 1, occ.MeshSize(5))
	require.NoError(t, err)
	box, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)

	_, err = g.BooleanFragments([]ir.Entity{rect}, []ir.Entity{box})
	require.Error(t, err)
	assert.True(t, ir.IsIncompatibleDimension(err))
	assert.Equal(t, 1, g.PendingDeferred(), "size queue untouched by rejected boolean")
}

func TestJournal_RecordsFacadeSession(t *testing.T) {
	j, err := store.Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	fk := testutil.NewFakeKernel()
	g, err := occ.New(fk,
		occ.WithJournal(j),
		occ.WithSessionToken("facade-session"),
		occ.WithCharacteristicLengthMax(0.1),
	)
	require.NoError(t, err)

	a, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	b, err := g.AddBall(0.5, 0.5, 0.5, 0.4)
	require.NoError(t, err)
	require.NoError(t, g.Synchronize())

	_, err = g.BooleanDifference(a, b)
	require.NoError(t, err)
	require.NoError(t, g.Close())

	recs, err := j.Commands(context.Background(), "facade-session")
	require.NoError(t, err)

	kinds := make([]string, len(recs))
	for i, rec := range recs {
		kinds[i] = rec.Kind
	}
	assert.Equal(t, []string{
		store.KindOption,
		store.KindDefine,
		store.KindDefine,
		store.KindSync,
		store.KindBoolean,
		store.KindFinalize,
	}, kinds)
}

func TestBooleanOps_EndToEnd(t *testing.T) {
	fk, g := newGeometry(t)

	a, err := g.AddBox(0, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	b, err := g.AddBox(0.5, 0, 0, 1, 1, 1)
	require.NoError(t, err)
	c, err := g.AddBall(0.5, 0.5, 0.5, 0.3)
	require.NoError(t, err)
	require.NoError(t, g.Synchronize())

	u, err := g.BooleanUnion([]ir.Entity{a, b})
	require.NoError(t, err)

	diff, err := g.BooleanDifference(u, c)
	require.NoError(t, err)
	assert.Equal(t, 3, diff.Dimension())

	out, err := g.BooleanIntersection([]ir.Entity{diff})
	require.NoError(t, err)
	assert.Equal(t, diff.DimTags(), out.DimTags())

	assert.Equal(t, 2, fk.BooleanCalls(), "union + difference; singleton intersection is free")
}

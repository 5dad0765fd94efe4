package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestJournal(t *testing.T) *Journal {
	t.Helper()
	dir := t.TempDir()
	j, err := Open(dir + "/journal.db")
	require.NoError(t, err)
	t.Cleanup(func() { j.Close() })
	return j
}

func TestOpen_CreatesSchema(t *testing.T) {
	j := setupTestJournal(t)

	records, err := j.Commands(context.Background(), "none")
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records, "empty slice, not nil")
}

func TestOpen_InMemory(t *testing.T) {
	j, err := Open(":memory:")
	require.NoError(t, err)
	defer j.Close()

	err = j.Append(context.Background(), CommandRecord{
		Session: "s", Seq: 1, Kind: KindSync, Payload: "committed=0",
	})
	require.NoError(t, err)
}

func TestAppendAndRead_Ordered(t *testing.T) {
	j := setupTestJournal(t)
	ctx := context.Background()

	recs := []CommandRecord{
		{Session: "s1", Seq: 1, Kind: KindDefine, Payload: "box(0,0,0,1,1,1)"},
		{Session: "s1", Seq: 2, Kind: KindSync, Payload: "committed=1"},
		{Session: "s1", Seq: 3, Kind: KindBoolean, Payload: "fuse objects=(3,1) tools=(3,2)"},
	}
	// Insert out of order; reads come back seq-ordered.
	require.NoError(t, j.Append(ctx, recs[2]))
	require.NoError(t, j.Append(ctx, recs[0]))
	require.NoError(t, j.Append(ctx, recs[1]))

	got, err := j.Commands(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i, rec := range got {
		assert.Equal(t, recs[i].Seq, rec.Seq)
		assert.Equal(t, recs[i].Kind, rec.Kind)
		assert.Equal(t, recs[i].Payload, rec.Payload)
		assert.Len(t, rec.ID, 64, "content-addressed id is filled on read")
	}
}

func TestAppend_Idempotent(t *testing.T) {
	j := setupTestJournal(t)
	ctx := context.Background()

	rec := CommandRecord{Session: "s1", Seq: 1, Kind: KindScript, Payload: "bo1[] = ..."}
	require.NoError(t, j.Append(ctx, rec))
	require.NoError(t, j.Append(ctx, rec), "duplicate write is silently ignored")

	got, err := j.Commands(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestCommands_SessionIsolation(t *testing.T) {
	j := setupTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, CommandRecord{Session: "a", Seq: 1, Kind: KindSync, Payload: "committed=0"}))
	require.NoError(t, j.Append(ctx, CommandRecord{Session: "b", Seq: 1, Kind: KindSync, Payload: "committed=2"}))

	got, err := j.Commands(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "committed=0", got[0].Payload)
}

func TestCommandsByKind(t *testing.T) {
	j := setupTestJournal(t)
	ctx := context.Background()

	require.NoError(t, j.Append(ctx, CommandRecord{Session: "s", Seq: 1, Kind: KindDefine, Payload: "box"}))
	require.NoError(t, j.Append(ctx, CommandRecord{Session: "s", Seq: 2, Kind: KindScript, Payload: "bo1"}))
	require.NoError(t, j.Append(ctx, CommandRecord{Session: "s", Seq: 3, Kind: KindDefine, Payload: "ball"}))

	got, err := j.CommandsByKind(ctx, "s", KindDefine)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "box", got[0].Payload)
	assert.Equal(t, "ball", got[1].Payload)
}

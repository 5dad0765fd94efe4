package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandID_Stable(t *testing.T) {
	a, err := CommandID("sess-1", 1, "script", "bo1[] = ...")
	require.NoError(t, err)
	b, err := CommandID("sess-1", 1, "script", "bo1[] = ...")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "hex-encoded SHA-256")
}

func TestCommandID_DiffersByField(t *testing.T) {
	base, err := CommandID("sess-1", 1, "script", "payload")
	require.NoError(t, err)

	otherSession, _ := CommandID("sess-2", 1, "script", "payload")
	otherSeq, _ := CommandID("sess-1", 2, "script", "payload")
	otherKind, _ := CommandID("sess-1", 1, "sync", "payload")
	otherPayload, _ := CommandID("sess-1", 1, "script", "other")

	assert.NotEqual(t, base, otherSession)
	assert.NotEqual(t, base, otherSeq)
	assert.NotEqual(t, base, otherKind)
	assert.NotEqual(t, base, otherPayload)
}

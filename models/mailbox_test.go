package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(s string) *string { return &s }

func positions(boxes []Mailbox) map[string]int {
	pos := make(map[string]int, len(boxes))
	for i, m := range boxes {
		pos[m.ServerID] = i
	}
	return pos
}

func TestOrderParentFirst_ChildBeforeParentInput(t *testing.T) {
	in := []Mailbox{
		{ServerID: "c", Name: "Child", ParentID: ref("p")},
		{ServerID: "g", Name: "Grandchild", ParentID: ref("c")},
		{ServerID: "p", Name: "Parent"},
	}

	out := OrderParentFirst(in)
	require.Len(t, out, 3)

	pos := positions(out)
	assert.Less(t, pos["p"], pos["c"])
	assert.Less(t, pos["c"], pos["g"])
}

func TestOrderParentFirst_ParentOutsideBatch(t *testing.T) {
	// "a" hangs off a folder that already exists in the mirror; it must be
	// treated as a batch root, not held back forever.
	in := []Mailbox{
		{ServerID: "b", Name: "B", ParentID: ref("a")},
		{ServerID: "a", Name: "A", ParentID: ref("already-mirrored")},
	}

	out := OrderParentFirst(in)
	require.Len(t, out, 2)

	pos := positions(out)
	assert.Less(t, pos["a"], pos["b"])
}

func TestOrderParentFirst_PreservesSiblingOrder(t *testing.T) {
	in := []Mailbox{
		{ServerID: "r1", Name: "One"},
		{ServerID: "r2", Name: "Two"},
		{ServerID: "r3", Name: "Three"},
	}

	out := OrderParentFirst(in)
	require.Equal(t, in, out)
}

func TestOrderParentFirst_CycleFallsThrough(t *testing.T) {
	// Structurally broken remote data: the nodes still come back so the
	// store's foreign keys get the final word.
	in := []Mailbox{
		{ServerID: "x", Name: "X", ParentID: ref("y")},
		{ServerID: "y", Name: "Y", ParentID: ref("x")},
	}

	out := OrderParentFirst(in)
	require.Len(t, out, 2)
}

func TestOrderParentFirst_EmptyAndSingle(t *testing.T) {
	assert.Empty(t, OrderParentFirst(nil))

	single := []Mailbox{{ServerID: "only", Name: "Only"}}
	assert.Equal(t, single, OrderParentFirst(single))
}

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SnapshotFromSnapshot_RoundTrip(t *testing.T) {
	g := sumGrammar()
	table, err := Generate(g)
	require.NoError(t, err)

	restored := FromSnapshot(table.Snapshot())

	assert.Equal(t, table.start, restored.start)
	assert.Equal(t, table.origStart, restored.origStart)
	assert.Equal(t, table.terminals, restored.terminals)
	assert.Equal(t, table.nonTerms, restored.nonTerms)
	assert.Equal(t, table.itemSets, restored.itemSets)
	assert.Equal(t, table.action, restored.action)
	assert.Equal(t, table.goTo, restored.goTo)

	assert.Equal(t, table.Action(table.Start(), "NUM"), restored.Action(restored.Start(), "NUM"))
}

package dhash

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStateString(t *testing.T) {
	assert.Equal(t, "empty", slotEmpty.String())
	assert.Equal(t, "occupied", slotOccupied.String())
	assert.Equal(t, "tombstone", slotTombstone.String())
	assert.Equal(t, "unknown", slotState(9).String())
}

func TestInsertReusesOwnTombstone(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	require.NoError(t, table.Insert("k", "v1"))
	idx, found := table.lookup("k")
	require.True(t, found)

	require.True(t, table.Delete("k"))
	assert.Equal(t, slotTombstone, table.slots[idx].state)
	assert.Empty(t, table.slots[idx].key)

	require.NoError(t, table.Insert("k", "v2"))
	assert.Equal(t, slotOccupied, table.slots[idx].state)
	assert.Equal(t, 0, table.tombstones)
	assert.Equal(t, 1, table.count)
}

func TestInsertDoesNotDuplicatePastTombstone(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	first := "key-0"
	home := newProbeSeq(first, table.Cap()).at(0)

	// find a second key whose probe sequence starts in the same bucket
	second := ""
	for i := 1; i < 100000; i++ {
		candidate := "key-" + strconv.Itoa(i)
		if newProbeSeq(candidate, table.Cap()).at(0) == home {
			second = candidate
			break
		}
	}
	require.NotEmpty(t, second)

	require.NoError(t, table.Insert(first, "1"))
	require.NoError(t, table.Insert(second, "2"))
	secondIdx, found := table.lookup(second)
	require.True(t, found)
	require.NotEqual(t, home, secondIdx)

	// the tombstone at home sits in front of second's live slot
	require.True(t, table.Delete(first))
	require.NoError(t, table.Insert(second, "3"))

	assert.Equal(t, 1, table.Len())
	assert.Equal(t, 1, table.tombstones)
	assert.Equal(t, slotTombstone, table.slots[home].state)
	assert.Equal(t, "3", table.slots[secondIdx].value)
}

func TestTombstonePressureTriggersRehash(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	for i := 0; i < 40; i++ {
		table.slots[i] = slot{state: slotTombstone}
	}
	table.tombstones = 40

	require.NoError(t, table.Insert("fresh", "v"))

	st := table.Stats()
	assert.Equal(t, uint64(1), st.Rehashes)
	assert.Equal(t, uint64(0), st.Grows)
	assert.Equal(t, 0, st.Tombstones)
	assert.Equal(t, 53, st.Capacity)
	for i := range table.slots {
		assert.NotEqual(t, slotTombstone, table.slots[i].state)
	}

	value, found := table.Search("fresh")
	require.True(t, found)
	assert.Equal(t, "v", value)
}

func TestSearchContinuesPastTombstones(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	require.NoError(t, table.Insert("target", "v"))
	idx, _ := table.lookup("target")

	// cover every other bucket with tombstones so the only way to reach
	// target is to probe through them
	for i := range table.slots {
		if i != idx {
			table.slots[i] = slot{state: slotTombstone}
		}
	}
	table.tombstones = len(table.slots) - 1

	value, found := table.Search("target")
	require.True(t, found)
	assert.Equal(t, "v", value)

	_, found = table.Search("absent")
	assert.False(t, found)
}

func TestResizeDropsTombstones(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		require.NoError(t, table.Insert("key-"+strconv.Itoa(i), strconv.Itoa(i)))
	}
	for i := 0; i < 5; i++ {
		require.True(t, table.Delete("key-"+strconv.Itoa(i)))
	}
	require.Equal(t, 5, table.tombstones)

	require.NoError(t, table.resize(table.baseSize*2, resizeGrow))
	assert.Equal(t, 0, table.tombstones)
	assert.Equal(t, 107, table.Cap())
	assert.Equal(t, 106, table.BaseSize())
	assert.Equal(t, 15, table.Len())
	for i := 5; i < 20; i++ {
		value, found := table.Search("key-" + strconv.Itoa(i))
		require.True(t, found)
		assert.Equal(t, strconv.Itoa(i), value)
	}
}

func TestResizeBelowMinimumIsNoop(t *testing.T) {
	table, err := New()
	require.NoError(t, err)

	require.NoError(t, table.resize(table.baseSize/2, resizeShrink))
	assert.Equal(t, 53, table.Cap())
	assert.Equal(t, uint64(0), table.Stats().Shrinks)
}

func TestResizeAboveMaximumLeavesTableUnchanged(t *testing.T) {
	table, err := New(WithMaxBaseSize(60))
	require.NoError(t, err)
	require.NoError(t, table.Insert("k", "v"))

	err = table.resize(106, resizeGrow)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, 53, table.Cap())
	assert.Equal(t, 53, table.BaseSize())
	value, found := table.Search("k")
	require.True(t, found)
	assert.Equal(t, "v", value)
}

package crds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/crds/common"
)

func TestHashTimeQueueInsertValuesOrder(t *testing.T) {
	q := NewHashTimeQueue()
	h1 := hashWithPrefix(1, 1)
	h2 := hashWithPrefix(2, 2)
	h3 := hashWithPrefix(3, 3)

	q.Insert(h1, 10)
	q.Insert(h2, 20)
	q.Insert(h3, 30)

	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []common.Hash{h1, h2, h3}, q.Values())
}

func TestHashTimeQueueTrim(t *testing.T) {
	q := NewHashTimeQueue()
	q.Insert(hashWithPrefix(1, 1), 100)
	q.Insert(hashWithPrefix(2, 2), 110)
	q.Insert(hashWithPrefix(3, 3), 130)

	q.Trim(120)

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, []common.Hash{hashWithPrefix(3, 3)}, q.Values())
}

func TestHashTimeQueueTrimStopsAtFirstSurvivor(t *testing.T) {
	q := NewHashTimeQueue()
	// Out-of-order timestamp after the cutoff point: trim leaves the
	// later-arriving-but-older-timestamp entry, since it only scans from
	// the head and stops at the first survivor.
	q.Insert(hashWithPrefix(1, 1), 50)
	q.Insert(hashWithPrefix(2, 2), 200) // out of order, arrives "early" but is fresh
	q.Insert(hashWithPrefix(3, 3), 60)  // older, but behind the fresh entry

	q.Trim(100)

	assert.Equal(t, 2, q.Len())
	assert.Equal(t, []common.Hash{hashWithPrefix(2, 2), hashWithPrefix(3, 3)}, q.Values())
}

// TestPurgedTrimScenario is the end-to-end scenario from §8.5: a
// contact-info insert followed by an overwrite pushes exactly one
// purged entry, which Trim(130) then clears.
func TestPurgedTrimScenario(t *testing.T) {
	tbl := NewTable(nil)
	pk := mustPubkey(1)

	err := tbl.Insert(CrdsValue{Data: LegacyContactInfo{Id: pk, WallclockMs: 0}}, 100)
	require.NoError(t, err)

	err = tbl.Insert(CrdsValue{Data: LegacyContactInfo{Id: pk, WallclockMs: 1}}, 120)
	require.NoError(t, err)

	assert.Equal(t, 1, tbl.Purged().Len())

	tbl.Purged().Trim(130)
	assert.Equal(t, 0, tbl.Purged().Len())
}

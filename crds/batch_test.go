package crds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertValuesFiltersOutOfWindow(t *testing.T) {
	tbl := NewTable(nil)
	values := []CrdsValue{
		{Data: LegacyContactInfo{Id: mustPubkey(1), WallclockMs: 1000}},  // too old
		{Data: LegacyContactInfo{Id: mustPubkey(2), WallclockMs: 5000}},  // in window
		{Data: LegacyContactInfo{Id: mustPubkey(3), WallclockMs: 9000}},  // too new
	}

	failed := tbl.InsertValues(values, 5000, 100)

	assert.Empty(t, failed)
	assert.Equal(t, 1, tbl.Len())
	_, ok := tbl.Get(Label{Kind: KindLegacyContactInfo, Pubkey: mustPubkey(2)})
	assert.True(t, ok)
}

func TestInsertValuesCollectsFailedIndices(t *testing.T) {
	tbl := NewTable(nil)
	pk := mustPubkey(4)

	// Prime the slot with a wallclock the batch's older/duplicate entries
	// will lose or tie against, while still sitting inside the window the
	// batch call below uses.
	require.NoError(t, tbl.Insert(CrdsValue{Data: LegacyContactInfo{Id: pk, WallclockMs: 4500}}, 5000))

	values := []CrdsValue{
		{Data: LegacyContactInfo{Id: pk, WallclockMs: 4400}},          // older -> OldValue, index 0
		{Data: LegacyContactInfo{Id: mustPubkey(5), WallclockMs: 4600}}, // accepted, index 1
		{Data: LegacyContactInfo{Id: pk, WallclockMs: 4500}},          // duplicate of primed record, index 2
	}

	failed := tbl.InsertValues(values, 5000, 1000)

	assert.Equal(t, []int{0, 2}, failed)
	assert.Equal(t, 2, tbl.Len())
}

func TestInsertValuesSaturatingWindowNeverUnderflows(t *testing.T) {
	tbl := NewTable(nil)
	values := []CrdsValue{
		{Data: LegacyContactInfo{Id: mustPubkey(6), WallclockMs: 0}},
	}

	// now - timeout would underflow a plain uint64 subtraction; saturating
	// arithmetic must clamp the lower bound to 0 instead of wrapping.
	failed := tbl.InsertValues(values, 10, 1_000_000)

	assert.Empty(t, failed)
	assert.Equal(t, 1, tbl.Len())
}

package crds

import "github.com/google/btree"

// Get returns a copy of the record stored under label, if any.
func (t *Table) Get(label Label) (CrdsVersionedValue, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	idx, ok := t.labelIndex[label]
	if !ok {
		return CrdsVersionedValue{}, false
	}
	return *t.store[idx], true
}

// getWithCursor is the shared implementation behind the four
// get_*_with_cursor getters: scan ascending from *cursor, copy at most
// len(buf) records, and advance *cursor past the last one returned.
func getWithCursor(t *Table, tree *btree.BTree, buf []CrdsVersionedValue, cursor *uint64) []CrdsVersionedValue {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	start := *cursor
	next := start
	tree.AscendGreaterOrEqual(cursorItem{cursor: start}, func(item btree.Item) bool {
		if n >= len(buf) {
			return false
		}
		ci := item.(cursorItem)
		buf[n] = *t.store[ci.index]
		next = ci.cursor + 1
		n++
		return n < len(buf)
	})
	*cursor = next
	return buf[:n]
}

// GetEntriesWithCursor returns every accepted value with insertion cursor
// >= *cursor, in cursor order, up to len(buf) records, and advances
// *cursor past what it returned.
func (t *Table) GetEntriesWithCursor(buf []CrdsVersionedValue, cursor *uint64) []CrdsVersionedValue {
	return getWithCursor(t, t.entries, buf, cursor)
}

// GetVotesWithCursor is GetEntriesWithCursor restricted to Vote values.
func (t *Table) GetVotesWithCursor(buf []CrdsVersionedValue, cursor *uint64) []CrdsVersionedValue {
	return getWithCursor(t, t.votes, buf, cursor)
}

// GetEpochSlotsWithCursor is GetEntriesWithCursor restricted to EpochSlots values.
func (t *Table) GetEpochSlotsWithCursor(buf []CrdsVersionedValue, cursor *uint64) []CrdsVersionedValue {
	return getWithCursor(t, t.epochSlots, buf, cursor)
}

// GetDuplicateShredsWithCursor is GetEntriesWithCursor restricted to DuplicateShred values.
func (t *Table) GetDuplicateShredsWithCursor(buf []CrdsVersionedValue, cursor *uint64) []CrdsVersionedValue {
	return getWithCursor(t, t.duplicateShreds, buf, cursor)
}

// GetContactInfos copies up to len(buf) LegacyContactInfo records, in the
// order they were first inserted (not cursor order) — used for peer
// sampling, where the caller does not track a resumable cursor.
func (t *Table) GetContactInfos(buf []CrdsVersionedValue) []CrdsVersionedValue {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, idx := range t.contactInfos {
		if n >= len(buf) {
			break
		}
		buf[n] = *t.store[idx]
		n++
	}
	return buf[:n]
}

// GetBitmaskMatches delegates to the shard index: every primary index
// whose current value hash's top maskBits bits equal mask's.
func (t *Table) GetBitmaskMatches(mask uint64, maskBits int) []int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.shards.Find(mask, maskBits)
}

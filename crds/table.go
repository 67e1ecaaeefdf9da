package crds

import (
	"sync"

	"github.com/google/btree"
	"github.com/tos-network/crds/common"
)

// cursorItem is a (cursor -> primary index) entry in one of the
// cursor-ordered secondary indices. btree orders items by cursor alone,
// so Delete only needs a cursor value to find and remove an entry.
type cursorItem struct {
	cursor uint64
	index  int
}

func (c cursorItem) Less(than btree.Item) bool {
	return c.cursor < than.(cursorItem).cursor
}

const btreeDegree = 32

// Table is the CrdsTable: the primary store keyed by value label, its
// category and cursor secondary indices, the hash-shard index, and the
// purged queue, all behind a single reader/writer lock. Every exported
// method acquires the lock it needs internally — callers never see a
// lock guard.
type Table struct {
	mu     sync.RWMutex
	logger Logger

	store      []*CrdsVersionedValue
	labelIndex map[Label]int

	contactInfos []int

	votes           *btree.BTree
	epochSlots      *btree.BTree
	duplicateShreds *btree.BTree
	entries         *btree.BTree

	shredVersions map[common.PubKey]uint16

	shards *CrdsShards
	purged *HashTimeQueue

	cursor uint64
}

// NewTable creates an empty CrdsTable. A nil logger silences the
// diagnostic logging InsertValues would otherwise emit for discarded or
// rejected values.
func NewTable(logger Logger) *Table {
	if logger == nil {
		logger = noopLogger{}
	}
	return &Table{
		logger:          logger,
		labelIndex:      make(map[Label]int),
		votes:           btree.New(btreeDegree),
		epochSlots:      btree.New(btreeDegree),
		duplicateShreds: btree.New(btreeDegree),
		entries:         btree.New(btreeDegree),
		shredVersions:   make(map[common.PubKey]uint16),
		shards:          NewCrdsShards(),
		purged:          NewHashTimeQueue(),
	}
}

// Len returns the number of distinct labels currently stored.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.store)
}

// Cursor returns the next cursor value that would be assigned to a
// successful insert.
func (t *Table) Cursor() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor
}

// Purged exposes the purged-hash queue for callers building pull
// requests. The queue has its own internal state but is not separately
// locked — callers must not use it concurrently with Table's writers
// without external synchronization, matching the "table owns all its
// sub-structures exclusively" resource policy of §5.
func (t *Table) Purged() *HashTimeQueue {
	return t.purged
}

// Insert inserts or overwrites a single value. now is the caller-supplied
// wall-clock time of acceptance (not the value's own wallclock).
func (t *Table) Insert(value CrdsValue, now uint64) error {
	valueHash, err := ValueHash(value)
	if err != nil {
		return ErrResourceError
	}
	label := value.Label()

	candidate := &CrdsVersionedValue{
		Value:                value,
		ValueHash:            valueHash,
		TimestampOnInsertion: now,
		CursorOnInsertion:    0, // assigned below, once we know we're accepting
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx, exists := t.labelIndex[label]
	if !exists {
		return t.insertNewLocked(label, candidate)
	}
	return t.overwriteLocked(idx, candidate)
}

func (t *Table) insertNewLocked(label Label, candidate *CrdsVersionedValue) error {
	candidate.CursorOnInsertion = t.cursor
	idx := len(t.store)

	t.store = append(t.store, candidate)
	t.labelIndex[label] = idx
	t.indexNewSlotLocked(idx, candidate)
	t.shards.Insert(idx, candidate.ValueHash)
	t.entries.ReplaceOrInsert(cursorItem{cursor: candidate.CursorOnInsertion, index: idx})

	t.cursor++
	return nil
}

// indexNewSlotLocked updates the category-specific secondary index for a
// brand-new slot. A slot's category never changes across overwrites (its
// label fixes its Kind), so this only runs once per slot's lifetime.
func (t *Table) indexNewSlotLocked(idx int, rec *CrdsVersionedValue) {
	switch d := rec.Value.Data.(type) {
	case LegacyContactInfo:
		t.contactInfos = append(t.contactInfos, idx)
		t.shredVersions[d.Id] = d.ShredVersion
	case Vote:
		t.votes.ReplaceOrInsert(cursorItem{cursor: rec.CursorOnInsertion, index: idx})
	case EpochSlots:
		t.epochSlots.ReplaceOrInsert(cursorItem{cursor: rec.CursorOnInsertion, index: idx})
	case DuplicateShred:
		t.duplicateShreds.ReplaceOrInsert(cursorItem{cursor: rec.CursorOnInsertion, index: idx})
	}
}

func (t *Table) overwriteLocked(idx int, candidate *CrdsVersionedValue) error {
	old := t.store[idx]
	assertf(old != nil, "primary slot %d missing its record", idx)

	if !shouldOverwrite(old, candidate) {
		if old.ValueHash == candidate.ValueHash {
			return ErrDuplicateValue
		}
		t.purged.Insert(old.ValueHash, candidate.TimestampOnInsertion)
		return ErrOldValue
	}

	candidate.CursorOnInsertion = t.cursor

	t.shards.Remove(idx, old.ValueHash)
	t.shards.Insert(idx, candidate.ValueHash)

	t.entries.Delete(cursorItem{cursor: old.CursorOnInsertion})
	t.entries.ReplaceOrInsert(cursorItem{cursor: candidate.CursorOnInsertion, index: idx})

	t.reindexOverwriteLocked(idx, old, candidate)

	t.purged.Insert(old.ValueHash, candidate.TimestampOnInsertion)
	t.store[idx] = candidate
	t.cursor++
	return nil
}

// reindexOverwriteLocked moves an existing slot's cursor-keyed index
// entry (if it has one) from the old cursor to the new one, and refreshes
// shred_versions for contact-info overwrites.
func (t *Table) reindexOverwriteLocked(idx int, old, candidate *CrdsVersionedValue) {
	switch d := candidate.Value.Data.(type) {
	case LegacyContactInfo:
		t.shredVersions[d.Id] = d.ShredVersion
	case Vote:
		t.votes.Delete(cursorItem{cursor: old.CursorOnInsertion})
		t.votes.ReplaceOrInsert(cursorItem{cursor: candidate.CursorOnInsertion, index: idx})
	case EpochSlots:
		t.epochSlots.Delete(cursorItem{cursor: old.CursorOnInsertion})
		t.epochSlots.ReplaceOrInsert(cursorItem{cursor: candidate.CursorOnInsertion, index: idx})
	case DuplicateShred:
		t.duplicateShreds.Delete(cursorItem{cursor: old.CursorOnInsertion})
		t.duplicateShreds.ReplaceOrInsert(cursorItem{cursor: candidate.CursorOnInsertion, index: idx})
	}
}

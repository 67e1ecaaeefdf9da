package crds

import (
	"container/list"

	"github.com/tos-network/crds/common"
)

// purgedEntry is one (hash, timestamp) pair recorded when a value is
// overwritten or rejected as stale.
type purgedEntry struct {
	hash common.Hash
	ts   uint64
}

// HashTimeQueue is a FIFO of recently evicted or rejected value hashes,
// used by callers to avoid re-offering values a peer just rejected. It
// is bounded only by explicit Trim calls — the core does not age it out
// on its own (§5, Non-goals).
//
// Entries are appended with monotone-nondecreasing timestamps in steady
// state, so Trim only needs to scan from the head; an out-of-order
// timestamp may survive a Trim call, which is acceptable since this
// queue is advisory.
type HashTimeQueue struct {
	entries *list.List // of purgedEntry
}

// NewHashTimeQueue creates an empty purged queue.
func NewHashTimeQueue() *HashTimeQueue {
	return &HashTimeQueue{entries: list.New()}
}

// Insert appends (hash, now) to the tail of the queue.
func (q *HashTimeQueue) Insert(hash common.Hash, now uint64) {
	q.entries.PushBack(purgedEntry{hash: hash, ts: now})
}

// Trim removes every prefix entry with timestamp < cutoff, stopping at
// the first entry that is not older than cutoff.
func (q *HashTimeQueue) Trim(cutoff uint64) {
	for e := q.entries.Front(); e != nil; {
		entry := e.Value.(purgedEntry)
		if entry.ts >= cutoff {
			return
		}
		next := e.Next()
		q.entries.Remove(e)
		e = next
	}
}

// Values returns every hash currently queued, oldest first.
func (q *HashTimeQueue) Values() []common.Hash {
	out := make([]common.Hash, 0, q.entries.Len())
	for e := q.entries.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(purgedEntry).hash)
	}
	return out
}

// Len returns the number of hashes currently queued.
func (q *HashTimeQueue) Len() int {
	return q.entries.Len()
}

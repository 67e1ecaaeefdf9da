package crds

import "github.com/tos-network/crds/common"

// CrdsVersionedValue is one stored record: a value plus the bookkeeping
// the table attaches to it at insertion time. Getters return copies of
// this type so callers may read them after releasing the table's lock.
type CrdsVersionedValue struct {
	Value               CrdsValue
	ValueHash           common.Hash
	TimestampOnInsertion uint64
	CursorOnInsertion    uint64
}

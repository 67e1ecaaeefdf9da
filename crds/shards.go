package crds

import (
	"encoding/binary"
	"fmt"

	"github.com/tos-network/crds/common"
)

// numShardBits is the width of the shard id: 2^12 = 4096 buckets, wide
// enough to keep per-bucket scans cheap but coarse enough that typical
// mask queries touch only a handful of buckets.
const numShardBits = 12
const numShards = 1 << numShardBits

// shardIDOf returns the top numShardBits bits of the hash's first 8
// bytes, read as a little-endian u64.
func shardIDOf(hash common.Hash) uint16 {
	prefix := binary.LittleEndian.Uint64(hash[:8])
	return uint16(prefix >> (64 - numShardBits))
}

func hashPrefixOf(hash common.Hash) uint64 {
	return binary.LittleEndian.Uint64(hash[:8])
}

// CrdsShards is a binary-prefix index over value hashes: each of its
// 4096 buckets maps a primary store index to the u64 prefix of that
// slot's current value hash. It exists to answer bitmask-matched
// pull-response queries — "which of our indices fall in this peer's
// sample space" — without scanning the whole table.
type CrdsShards struct {
	buckets [numShards]map[int]uint64
}

// NewCrdsShards creates an empty shard index.
func NewCrdsShards() *CrdsShards {
	s := &CrdsShards{}
	for i := range s.buckets {
		s.buckets[i] = make(map[int]uint64)
	}
	return s
}

// Insert records index in the bucket derived from hash. Re-inserting an
// index already present (without an intervening Remove) is a programming
// error.
func (s *CrdsShards) Insert(index int, hash common.Hash) {
	b := s.buckets[shardIDOf(hash)]
	if _, exists := b[index]; exists {
		panic(fmt.Sprintf("crds: shard index %d already present", index))
	}
	b[index] = hashPrefixOf(hash)
}

// Remove deletes index from the bucket derived from hash. Removing an
// absent index is a programming error.
func (s *CrdsShards) Remove(index int, hash common.Hash) {
	b := s.buckets[shardIDOf(hash)]
	if _, exists := b[index]; !exists {
		panic(fmt.Sprintf("crds: shard index %d not present for removal", index))
	}
	delete(b, index)
}

// Find returns every primary index whose stored hash prefix matches the
// top maskBits bits of mask. maskBits must be in [0, 64].
//
//   - maskBits == 0: every index in every bucket matches.
//   - maskBits <= 12: a contiguous range of buckets matches in full;
//     their indices are unioned without per-entry comparison.
//   - maskBits > 12: exactly one bucket can match; within it, an index
//     matches iff its stored prefix agrees with mask on the top maskBits
//     bits.
func (s *CrdsShards) Find(mask uint64, maskBits int) []int {
	if maskBits < 0 || maskBits > 64 {
		panic(fmt.Sprintf("crds: mask_bits out of range: %d", maskBits))
	}

	if maskBits == 0 {
		var out []int
		for _, b := range s.buckets {
			for idx := range b {
				out = append(out, idx)
			}
		}
		return out
	}

	if maskBits <= numShardBits {
		base := int(mask >> (64 - maskBits) << (numShardBits - maskBits))
		count := 1 << (numShardBits - maskBits)
		var out []int
		for i := base; i < base+count; i++ {
			for idx := range s.buckets[i] {
				out = append(out, idx)
			}
		}
		return out
	}

	bucket := s.buckets[shardIDOf(hashFromPrefixShift(mask))]
	shift := 64 - maskBits
	want := mask >> shift
	var out []int
	for idx, prefix := range bucket {
		if prefix>>shift == want {
			out = append(out, idx)
		}
	}
	return out
}

// hashFromPrefixShift builds a synthetic Hash whose first 8 bytes are
// mask's bytes, solely so shardIDOf can be reused to compute the single
// candidate bucket for a maskBits > 12 query.
func hashFromPrefixShift(mask uint64) common.Hash {
	var h common.Hash
	binary.LittleEndian.PutUint64(h[:8], mask)
	return h
}

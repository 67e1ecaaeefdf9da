package crds

import (
	"fmt"

	"github.com/tos-network/crds/common"
)

// Kind discriminates the category of a CrdsValue's payload. The numeric
// value doubles as the wire-format tag written by Encode, so the order
// these constants are declared in is part of the encoding contract.
type Kind uint32

const (
	KindLegacyContactInfo Kind = iota
	KindVote
	KindEpochSlots
	KindDuplicateShred
	KindLowestSlot // catch-all "other" category: indexed only in entries
)

func (k Kind) String() string {
	switch k {
	case KindLegacyContactInfo:
		return "LegacyContactInfo"
	case KindVote:
		return "Vote"
	case KindEpochSlots:
		return "EpochSlots"
	case KindDuplicateShred:
		return "DuplicateShred"
	case KindLowestSlot:
		return "LowestSlot"
	default:
		return fmt.Sprintf("Kind(%d)", uint32(k))
	}
}

// Label uniquely names a slot in the table. Two values with equal labels
// are alternative assertions of the same fact; the overwrite predicate
// decides which one the table retains. Index is meaningful only for
// subtyped variants (Vote, EpochSlots, DuplicateShred); it is zero for
// everything else, so it never spuriously splits a LegacyContactInfo or
// LowestSlot slot keyed only by pubkey.
type Label struct {
	Kind   Kind
	Pubkey common.PubKey
	Index  uint32
}

func (l Label) String() string {
	if l.Kind == KindVote || l.Kind == KindEpochSlots || l.Kind == KindDuplicateShred {
		return fmt.Sprintf("%s(%s, %d)", l.Kind, l.Pubkey, l.Index)
	}
	return fmt.Sprintf("%s(%s)", l.Kind, l.Pubkey)
}

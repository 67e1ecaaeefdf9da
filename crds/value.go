package crds

import "github.com/tos-network/crds/common"

// CrdsData is the tagged-union payload carried by a CrdsValue. Concrete
// schemas beyond label and wallclock are an external collaborator's
// concern (vote contents, contact-info fields, ...); the variants below
// are the minimal representative shapes needed to exercise every index
// the table maintains.
type CrdsData interface {
	// Kind identifies the variant and its wire-format discriminant.
	Kind() Kind
	// Pubkey is the originator's public key.
	Pubkey() common.PubKey
	// Wallclock is the author-supplied millisecond timestamp.
	Wallclock() uint64
	// Index distinguishes multiple slots owned by the same pubkey within
	// a subtyped category (e.g. a validator's nth vote). Zero for
	// variants with no such subtyping.
	Index() uint32
}

// LegacyContactInfo advertises a node's network endpoints and the shred
// version it gossips with. Labeled by pubkey alone.
type LegacyContactInfo struct {
	Id           common.PubKey
	GossipAddr   [4]byte
	GossipPort   uint16
	ShredVersion uint16
	WallclockMs  uint64
}

func (c LegacyContactInfo) Kind() Kind             { return KindLegacyContactInfo }
func (c LegacyContactInfo) Pubkey() common.PubKey  { return c.Id }
func (c LegacyContactInfo) Wallclock() uint64      { return c.WallclockMs }
func (c LegacyContactInfo) Index() uint32          { return 0 }

// Vote is one of a validator's recent votes. Labeled by (pubkey, index)
// so that a validator's concurrent votes coexist as distinct slots (up to
// 256, the range of the uint8 VoteIndex).
type Vote struct {
	From        common.PubKey
	VoteIndex   uint8
	WallclockMs uint64
	Bits        []byte
}

func (v Vote) Kind() Kind            { return KindVote }
func (v Vote) Pubkey() common.PubKey { return v.From }
func (v Vote) Wallclock() uint64     { return v.WallclockMs }
func (v Vote) Index() uint32         { return uint32(v.VoteIndex) }

// EpochSlots advertises which slots in a range a node claims to have.
// Labeled by (pubkey, index) — nodes split a wide slot range across
// several indexed slots.
type EpochSlots struct {
	From        common.PubKey
	SlotsIndex  uint8
	WallclockMs uint64
	Slots       []uint64
}

func (e EpochSlots) Kind() Kind            { return KindEpochSlots }
func (e EpochSlots) Pubkey() common.PubKey { return e.From }
func (e EpochSlots) Wallclock() uint64     { return e.WallclockMs }
func (e EpochSlots) Index() uint32         { return uint32(e.SlotsIndex) }

// DuplicateShred is proof that a leader produced two conflicting shreds
// for the same slot/index. Labeled by (pubkey, index): a validator may
// publish evidence for several distinct duplicate shreds concurrently.
type DuplicateShred struct {
	From         common.PubKey
	ShredIndex   uint16
	WallclockMs  uint64
	IsRetransmit bool
	Chunk        []byte
}

func (d DuplicateShred) Kind() Kind            { return KindDuplicateShred }
func (d DuplicateShred) Pubkey() common.PubKey { return d.From }
func (d DuplicateShred) Wallclock() uint64     { return d.WallclockMs }
func (d DuplicateShred) Index() uint32         { return uint32(d.ShredIndex) }

// LowestSlot is a representative "other" category value: it gets an
// entries-index slot like everything else but no dedicated secondary
// index. Labeled by pubkey alone.
type LowestSlot struct {
	From        common.PubKey
	WallclockMs uint64
	Slot        uint64
}

func (l LowestSlot) Kind() Kind            { return KindLowestSlot }
func (l LowestSlot) Pubkey() common.PubKey { return l.From }
func (l LowestSlot) Wallclock() uint64     { return l.WallclockMs }
func (l LowestSlot) Index() uint32         { return 0 }

// CrdsValue is the opaque signed payload exchanged between nodes: a
// detached signature over a tagged-union Data payload.
type CrdsValue struct {
	Signature common.Signature
	Data      CrdsData
}

// Label derives the value's slot identifier from its payload.
func (v CrdsValue) Label() Label {
	return Label{Kind: v.Data.Kind(), Pubkey: v.Data.Pubkey(), Index: v.Data.Index()}
}

// Wallclock returns the payload's author-supplied timestamp.
func (v CrdsValue) Wallclock() uint64 {
	return v.Data.Wallclock()
}

package crds

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/crds/common"
)

// TestEncodeSlotGolden pins the low-level fixed-width little-endian
// integer writer against the canonical golden vector: Slot{4335} encodes
// to EF 10 00 00 00 00 00 00.
func TestEncodeSlotGolden(t *testing.T) {
	e := &encoder{}
	e.writeU64(4335)
	assert.Equal(t, "ef10000000000000", hex.EncodeToString(e.buf))

	d := &decoder{buf: e.buf}
	v, err := d.readU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(4335), v)
}

func mustPubkey(b byte) common.PubKey {
	var pk common.PubKey
	for i := range pk {
		pk[i] = b
	}
	return pk
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []CrdsValue{
		{
			Signature: common.Signature{1, 2, 3},
			Data: LegacyContactInfo{
				Id:           mustPubkey(0xAA),
				GossipAddr:   [4]byte{127, 0, 0, 1},
				GossipPort:   8001,
				ShredVersion: 42,
				WallclockMs:  1000,
			},
		},
		{
			Signature: common.Signature{4, 5, 6},
			Data: Vote{
				From:        mustPubkey(0xBB),
				VoteIndex:   3,
				WallclockMs: 2000,
				Bits:        []byte{0xde, 0xad, 0xbe, 0xef},
			},
		},
		{
			Data: EpochSlots{
				From:        mustPubkey(0xCC),
				SlotsIndex:  1,
				WallclockMs: 3000,
				Slots:       []uint64{100, 200, 300},
			},
		},
		{
			Data: DuplicateShred{
				From:         mustPubkey(0xDD),
				ShredIndex:   7,
				WallclockMs:  4000,
				IsRetransmit: true,
				Chunk:        []byte("chunk-bytes"),
			},
		},
		{
			Data: DuplicateShred{
				From:         mustPubkey(0xEE),
				ShredIndex:   8,
				WallclockMs:  4001,
				IsRetransmit: false,
				Chunk:        nil,
			},
		},
		{
			Data: LowestSlot{
				From:        mustPubkey(0xFF),
				WallclockMs: 5000,
				Slot:        999,
			},
		},
	}

	for _, want := range cases {
		enc, err := Encode(want)
		require.NoError(t, err)

		got, err := Decode(enc)
		require.NoError(t, err)
		assert.Equal(t, want, got)

		// Round-tripping through encode again must be byte-identical
		// (the encoding is canonical, not merely equivalent).
		enc2, err := Encode(got)
		require.NoError(t, err)
		assert.Equal(t, enc, enc2)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	v := CrdsValue{Data: LowestSlot{From: mustPubkey(1), WallclockMs: 1, Slot: 1}}
	enc, err := Encode(v)
	require.NoError(t, err)

	_, err = Decode(append(enc, 0xff))
	assert.ErrorIs(t, err, ErrTrailingBytes)
}

func TestDecodeRejectsShortPayload(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrPayloadTooShort)
}

func TestDecodeRejectsUnknownKind(t *testing.T) {
	v := CrdsValue{Data: LowestSlot{From: mustPubkey(1), WallclockMs: 1, Slot: 1}}
	enc, err := Encode(v)
	require.NoError(t, err)

	// Corrupt the u32 tag (immediately after the 64-byte signature) to an
	// out-of-range discriminant.
	enc[64] = 0xff
	_, err = Decode(enc)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

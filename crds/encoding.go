package crds

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/tos-network/crds/common"
)

// Canonical wire format: little-endian fixed-width integers, sequences
// prefixed by a u64 length, tagged unions prefixed by a u32 discriminant
// assigned by declaration order, booleans as one byte, fixed-size arrays
// written inline with no length prefix. This must stay byte-exact —
// drift here silently breaks every peer's bloom-filter membership test
// against our value hashes.

var (
	// ErrPayloadTooShort is returned when Decode runs out of bytes mid-field.
	ErrPayloadTooShort = errors.New("crds: encoded payload too short")
	// ErrUnknownKind is returned when Decode sees an unrecognized tag.
	ErrUnknownKind = errors.New("crds: unknown data kind tag")
	// ErrTrailingBytes is returned when Decode does not consume the full input.
	ErrTrailingBytes = errors.New("crds: trailing bytes after decode")
)

type encoder struct {
	buf []byte
}

func (e *encoder) writeBool(v bool) {
	if v {
		e.buf = append(e.buf, 1)
	} else {
		e.buf = append(e.buf, 0)
	}
}

func (e *encoder) writeU8(v uint8) {
	e.buf = append(e.buf, v)
}

func (e *encoder) writeU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) writeU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

func (e *encoder) writeU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf = append(e.buf, b[:]...)
}

// writeFixed appends a fixed-size array inline, with no length prefix.
func (e *encoder) writeFixed(b []byte) {
	e.buf = append(e.buf, b...)
}

// writeSeq appends a u64-length-prefixed byte sequence.
func (e *encoder) writeSeq(b []byte) {
	e.writeU64(uint64(len(b)))
	e.buf = append(e.buf, b...)
}

// writeU64Seq appends a u64-length-prefixed sequence of little-endian u64s.
func (e *encoder) writeU64Seq(vals []uint64) {
	e.writeU64(uint64(len(vals)))
	for _, v := range vals {
		e.writeU64(v)
	}
}

type decoder struct {
	buf []byte
	off int
}

func (d *decoder) remaining() int { return len(d.buf) - d.off }

func (d *decoder) readBool() (bool, error) {
	if d.remaining() < 1 {
		return false, ErrPayloadTooShort
	}
	v := d.buf[d.off]
	d.off++
	return v != 0, nil
}

func (d *decoder) readU8() (uint8, error) {
	if d.remaining() < 1 {
		return 0, ErrPayloadTooShort
	}
	v := d.buf[d.off]
	d.off++
	return v, nil
}

func (d *decoder) readU16() (uint16, error) {
	if d.remaining() < 2 {
		return 0, ErrPayloadTooShort
	}
	v := binary.LittleEndian.Uint16(d.buf[d.off:])
	d.off += 2
	return v, nil
}

func (d *decoder) readU32() (uint32, error) {
	if d.remaining() < 4 {
		return 0, ErrPayloadTooShort
	}
	v := binary.LittleEndian.Uint32(d.buf[d.off:])
	d.off += 4
	return v, nil
}

func (d *decoder) readU64() (uint64, error) {
	if d.remaining() < 8 {
		return 0, ErrPayloadTooShort
	}
	v := binary.LittleEndian.Uint64(d.buf[d.off:])
	d.off += 8
	return v, nil
}

func (d *decoder) readFixed(n int) ([]byte, error) {
	if d.remaining() < n {
		return nil, ErrPayloadTooShort
	}
	out := make([]byte, n)
	copy(out, d.buf[d.off:d.off+n])
	d.off += n
	return out, nil
}

func (d *decoder) readSeq() ([]byte, error) {
	n, err := d.readU64()
	if err != nil {
		return nil, err
	}
	if uint64(d.remaining()) < n {
		return nil, ErrPayloadTooShort
	}
	if n == 0 {
		// Empty and nil sequences encode identically; decode to nil so a
		// nil field round-trips unchanged.
		return nil, nil
	}
	return d.readFixed(int(n))
}

func (d *decoder) readU64Seq() ([]uint64, error) {
	n, err := d.readU64()
	if err != nil {
		return nil, err
	}
	if uint64(d.remaining()) < n*8 {
		return nil, ErrPayloadTooShort
	}
	out := make([]uint64, n)
	for i := range out {
		out[i], err = d.readU64()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readPubkey(d *decoder) (common.PubKey, error) {
	var pk common.PubKey
	b, err := d.readFixed(common.PubKeyLength)
	if err != nil {
		return pk, err
	}
	copy(pk[:], b)
	return pk, nil
}

// Encode serializes a CrdsValue to its canonical wire format. It is the
// only encoding path used to derive a value's hash, so every field of
// every variant must round-trip through Decode exactly.
func Encode(v CrdsValue) ([]byte, error) {
	e := &encoder{buf: make([]byte, 0, 128)}
	e.writeFixed(v.Signature[:])
	e.writeU32(uint32(v.Data.Kind()))

	switch d := v.Data.(type) {
	case LegacyContactInfo:
		e.writeFixed(d.Id[:])
		e.writeFixed(d.GossipAddr[:])
		e.writeU16(d.GossipPort)
		e.writeU16(d.ShredVersion)
		e.writeU64(d.WallclockMs)
	case Vote:
		e.writeFixed(d.From[:])
		e.writeU8(d.VoteIndex)
		e.writeU64(d.WallclockMs)
		e.writeSeq(d.Bits)
	case EpochSlots:
		e.writeFixed(d.From[:])
		e.writeU8(d.SlotsIndex)
		e.writeU64(d.WallclockMs)
		e.writeU64Seq(d.Slots)
	case DuplicateShred:
		e.writeFixed(d.From[:])
		e.writeU16(d.ShredIndex)
		e.writeU64(d.WallclockMs)
		e.writeBool(d.IsRetransmit)
		e.writeSeq(d.Chunk)
	case LowestSlot:
		e.writeFixed(d.From[:])
		e.writeU64(d.WallclockMs)
		e.writeU64(d.Slot)
	default:
		return nil, fmt.Errorf("crds: unsupported data type %T", v.Data)
	}
	return e.buf, nil
}

// Decode parses a CrdsValue from its canonical wire format.
func Decode(data []byte) (CrdsValue, error) {
	d := &decoder{buf: data}
	var v CrdsValue

	sigBytes, err := d.readFixed(common.SignatureLength)
	if err != nil {
		return v, err
	}
	copy(v.Signature[:], sigBytes)

	tag, err := d.readU32()
	if err != nil {
		return v, err
	}

	switch Kind(tag) {
	case KindLegacyContactInfo:
		var c LegacyContactInfo
		if c.Id, err = readPubkey(d); err != nil {
			return v, err
		}
		addr, err := d.readFixed(4)
		if err != nil {
			return v, err
		}
		copy(c.GossipAddr[:], addr)
		if c.GossipPort, err = d.readU16(); err != nil {
			return v, err
		}
		if c.ShredVersion, err = d.readU16(); err != nil {
			return v, err
		}
		if c.WallclockMs, err = d.readU64(); err != nil {
			return v, err
		}
		v.Data = c
	case KindVote:
		var vv Vote
		if vv.From, err = readPubkey(d); err != nil {
			return v, err
		}
		if vv.VoteIndex, err = d.readU8(); err != nil {
			return v, err
		}
		if vv.WallclockMs, err = d.readU64(); err != nil {
			return v, err
		}
		if vv.Bits, err = d.readSeq(); err != nil {
			return v, err
		}
		v.Data = vv
	case KindEpochSlots:
		var es EpochSlots
		if es.From, err = readPubkey(d); err != nil {
			return v, err
		}
		if es.SlotsIndex, err = d.readU8(); err != nil {
			return v, err
		}
		if es.WallclockMs, err = d.readU64(); err != nil {
			return v, err
		}
		if es.Slots, err = d.readU64Seq(); err != nil {
			return v, err
		}
		v.Data = es
	case KindDuplicateShred:
		var ds DuplicateShred
		if ds.From, err = readPubkey(d); err != nil {
			return v, err
		}
		if ds.ShredIndex, err = d.readU16(); err != nil {
			return v, err
		}
		if ds.WallclockMs, err = d.readU64(); err != nil {
			return v, err
		}
		if ds.IsRetransmit, err = d.readBool(); err != nil {
			return v, err
		}
		if ds.Chunk, err = d.readSeq(); err != nil {
			return v, err
		}
		v.Data = ds
	case KindLowestSlot:
		var ls LowestSlot
		if ls.From, err = readPubkey(d); err != nil {
			return v, err
		}
		if ls.WallclockMs, err = d.readU64(); err != nil {
			return v, err
		}
		if ls.Slot, err = d.readU64(); err != nil {
			return v, err
		}
		v.Data = ls
	default:
		return v, fmt.Errorf("%w: %d", ErrUnknownKind, tag)
	}

	if d.remaining() != 0 {
		return v, ErrTrailingBytes
	}
	return v, nil
}

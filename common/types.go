// Package common holds the small fixed-size value types shared across the
// gossip table and its surrounding services: hashes, public keys, and
// signatures.
package common

import "encoding/hex"

// HashLength is the size in bytes of a value hash.
const HashLength = 32

// PubKeyLength is the size in bytes of an originator public key.
const PubKeyLength = 32

// SignatureLength is the size in bytes of a value signature.
const SignatureLength = 64

// Hash is a 32-byte content hash, used both as a CrdsValue's value_hash and
// as the key into CrdsShards buckets.
type Hash [HashLength]byte

// BytesToHash copies b into a Hash, left-truncating or zero-padding on the
// left if b is not exactly HashLength bytes.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > HashLength {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
	return h
}

// Bytes returns a copy of the hash's bytes.
func (h Hash) Bytes() []byte {
	out := make([]byte, HashLength)
	copy(out, h[:])
	return out
}

// Hex returns the 0x-prefixed hex encoding of the hash.
func (h Hash) Hex() string {
	return "0x" + hex.EncodeToString(h[:])
}

func (h Hash) String() string { return h.Hex() }

// Less reports whether h sorts strictly before other under lexicographic
// byte comparison — the tie-breaking total order used by the overwrite
// predicate.
func (h Hash) Less(other Hash) bool {
	for i := range h {
		if h[i] != other[i] {
			return h[i] < other[i]
		}
	}
	return false
}

// PubKey is a gossip value originator's public key.
type PubKey [PubKeyLength]byte

func (p PubKey) Bytes() []byte {
	out := make([]byte, PubKeyLength)
	copy(out, p[:])
	return out
}

func (p PubKey) Hex() string { return "0x" + hex.EncodeToString(p[:]) }

func (p PubKey) String() string { return p.Hex() }

// Signature is a gossip value's detached signature. The core never
// verifies it; that is an external collaborator's concern.
type Signature [SignatureLength]byte

func (s Signature) Bytes() []byte {
	out := make([]byte, SignatureLength)
	copy(out, s[:])
	return out
}

package crds

import (
	"crypto/sha256"

	"github.com/tos-network/crds/common"
)

// ValueHash returns the SHA-256 hash of v's canonical encoding. This is
// the value used to key CrdsShards and purged entries, and the total
// order used to break equal-wallclock overwrite ties. It must stay
// bit-exact with the wire format peers hash — see Encode.
func ValueHash(v CrdsValue) (common.Hash, error) {
	enc, err := Encode(v)
	if err != nil {
		return common.Hash{}, err
	}
	return common.Hash(sha256.Sum256(enc)), nil
}

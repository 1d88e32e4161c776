package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// BytesEqual compares two slice of bytes by wrapping them into strings,
// which is necessary with new util.Equals interop behaviour, see neo-go#1176.
func BytesEqual(a []byte, b []byte) bool {
	return util.Equals(string(a), string(b))
}

// IDKey encodes a non-negative integer id as an 8-byte big-endian storage
// key fragment. Unlike convert.ToBytes, the width is fixed, so several ids
// concatenated in one key cannot collide and keys iterate in id order.
func IDKey(id int) []byte {
	le := convert.ToBytes(id)
	key := make([]byte, 8)
	for i := 0; i < len(le); i++ {
		key[7-i] = le[i]
	}
	return key
}

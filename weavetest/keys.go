package weavetest

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() tokenswap.Condition {
	return NewKey().PublicKey().Condition()
}

// SequenceID returns n encoded the way an orm sequence allocates keys.
func SequenceID(n uint64) []byte {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, n)
	return id
}

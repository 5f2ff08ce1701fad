package crypto

import (
	"github.com/iov-one/tokenswap"
)

// ExtensionName is the extension part of every signature condition.
const ExtensionName = "sigs"

// PubKey verifies signatures made by the matching private key and maps the
// key onto a condition, so that a signer can own funds and escrows.
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() tokenswap.Condition
	Address() tokenswap.Address
}

// Signer produces signatures. It never exposes the private key, which allows
// keys kept outside of the process.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

package sigs

import (
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
)

// SignedTx is a transaction that carries signatures over its own content.
type SignedTx interface {
	// GetSignBytes returns the transaction content that is signed. It must
	// not include the signatures.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// StdSignature is the signature of one signer, together with the key and
// the sequence it was created for.
type StdSignature struct {
	Sequence  int64             `json:"sequence"`
	Pubkey    *crypto.PublicKey `json:"pubkey"`
	Signature *crypto.Signature `json:"signature"`
}

// Validate checks that all fields required for verification are present.
func (s *StdSignature) Validate() error {
	switch {
	case s.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}

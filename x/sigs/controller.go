package sigs

import (
	"bytes"
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
)

// SignCodeV1 prefixes every signed message. Changing the sign bytes layout
// requires a new code.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

// VerifyTxSignatures validates every signature of the transaction and
// increments the sequence of each signer. The returned conditions are in the
// order of the signatures.
func VerifyTxSignatures(db tokenswap.KVStore, tx SignedTx, chainID string) ([]tokenswap.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(err, "sign bytes")
	}
	var conds []tokenswap.Condition
	for i, sig := range tx.GetSignatures() {
		c, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, errors.Wrapf(err, "signature %d", i)
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// VerifySignature validates a single signature of payload. On success the
// sequence of the signer is incremented and the signer condition is
// returned.
func VerifySignature(db tokenswap.KVStore, sig *StdSignature, payload []byte, chainID string) (tokenswap.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	users := NewBucket()
	addr := sig.Pubkey.Address()
	user := UserData{Pubkey: sig.Pubkey}
	switch err := users.One(db, addr, &user); {
	case err == nil, errors.ErrNotFound.Is(err):
	default:
		return nil, errors.Wrap(err, "cannot load user")
	}

	msg, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(msg, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if _, err := users.Put(db, addr, &user); err != nil {
		return nil, errors.Wrap(err, "cannot save user")
	}
	return user.Pubkey.Condition(), nil
}

// BuildSignBytes returns the message that is signed for a transaction.
// The sha512 hash of the following concatenation is used
//
//	SignCodeV1 | len(chainID) as uint8 | chainID | seq as big endian int64 | payload
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	switch {
	case seq < 0:
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	case !tokenswap.IsValidChainID(chainID):
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}

	var buf bytes.Buffer
	buf.Write(SignCodeV1)
	buf.WriteByte(uint8(len(chainID)))
	buf.WriteString(chainID)
	_ = binary.Write(&buf, binary.BigEndian, seq)
	buf.Write(payload)

	sum := sha512.Sum512(buf.Bytes())
	return sum[:], nil
}

// BuildSignBytesTx is BuildSignBytes for the payload of tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(payload, chainID, seq)
}

// SignTx signs tx for given chain using the signer sequence seq.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	msg, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, errors.Wrap(err, "sign")
	}
	return &StdSignature{
		Sequence:  seq,
		Pubkey:    signer.PublicKey(),
		Signature: sig,
	}, nil
}

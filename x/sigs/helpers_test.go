package sigs

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/weavetest"
)

// signedTx is a minimal SignedTx used by tests.
type signedTx struct {
	weavetest.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ tokenswap.Tx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx:      weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/msg", Serialized: payload}},
		Payload: payload,
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

package sigs

import (
	"context"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x"
)

type signersKey struct{}

// withSigners is unexported so that only the decorator of this package can
// authenticate anybody.
func withSigners(ctx tokenswap.Context, signers []tokenswap.Condition) tokenswap.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate exposes the signers verified by Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the conditions of all valid signatures, in the
// order of the signatures. It is empty outside of a signed transaction.
func (Authenticate) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	signers, _ := ctx.Value(signersKey{}).([]tokenswap.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

package x

import (
	"github.com/iov-one/tokenswap"
)

// Authenticator tells which conditions authorized the current transaction.
// Handlers receive it in their constructor so the source of authentication
// (signatures, or a test double) can be swapped.
type Authenticator interface {
	// GetConditions returns every condition satisfied in ctx. The first
	// one is the main signer.
	GetConditions(tokenswap.Context) []tokenswap.Condition
	// HasAddress is true when any satisfied condition has given address.
	HasAddress(tokenswap.Context, tokenswap.Address) bool
}

// MultiAuth merges several authenticators. A condition is satisfied if any
// of them satisfies it.
type MultiAuth []Authenticator

var _ Authenticator = MultiAuth(nil)

// ChainAuth merges the given authenticators, keeping their order.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth(impls)
}

// GetConditions returns the conditions of all authenticators. Duplicates
// are returned only once.
func (m MultiAuth) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	var res []tokenswap.Condition
	seen := make(map[string]bool)
	for _, impl := range m {
		for _, c := range impl.GetConditions(ctx) {
			if !seen[string(c)] {
				seen[string(c)] = true
				res = append(res, c)
			}
		}
	}
	return res
}

func (m MultiAuth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, impl := range m {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authenticated condition or nil.
func MainSigner(ctx tokenswap.Context, auth Authenticator) tokenswap.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/tokenswap"
)

// CtxAuth is an authenticator that reads signers from the context.
// Conditions are set using SetConditions, which mimics what a signature
// verifying decorator does.
type CtxAuth struct {
	// Key separates conditions of different authenticators stored in the
	// same context.
	Key string
}

type ctxAuthKey string

// SetConditions returns a context with given conditions authenticated.
func (a *CtxAuth) SetConditions(ctx tokenswap.Context, conds ...tokenswap.Condition) tokenswap.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	switch conds := ctx.Value(ctxAuthKey(a.Key)).(type) {
	case nil:
		return nil
	case []tokenswap.Condition:
		return conds
	default:
		panic(fmt.Sprintf("conditions stored as %T", conds))
	}
}

func (a *CtxAuth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

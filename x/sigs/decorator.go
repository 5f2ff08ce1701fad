/*
Package sigs authenticates transactions with ed25519 signatures.

Every signature is bound to the chain id and to a per key sequence, which is
incremented on use so that a signed transaction cannot be replayed. The
decorator puts the conditions of all signers into the context, where the
Authenticator of this package finds them.
*/
package sigs

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Gas charged on check for each verified signature.
const signatureVerifyCost = 500

// Decorator verifies transaction signatures before calling the next handler.
type Decorator struct {
	allowMissingSigs bool
}

var _ tokenswap.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects transactions without a
// signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that passes through
// transactions without signatures. Present signatures must still be valid.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowMissingSigs = true
	return d
}

func (d Decorator) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n) * signatureVerifyCost
	return res, nil
}

func (d Decorator) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns a context carrying the signer conditions and the
// number of verified signatures.
func (d Decorator) authenticate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (tokenswap.Context, int, error) {
	var conds []tokenswap.Condition
	if stx, ok := tx.(SignedTx); ok {
		c, err := VerifyTxSignatures(db, stx, tokenswap.GetChainID(ctx))
		if err != nil {
			return nil, 0, errors.Wrap(err, "cannot verify signatures")
		}
		conds = c
	} else if !d.allowMissingSigs {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "transaction cannot be signed")
	}

	if len(conds) == 0 {
		if !d.allowMissingSigs {
			return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
		}
		return ctx, 0, nil
	}
	return withSigners(ctx, conds), len(conds), nil
}

package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Recovery converts a panic of any inner decorator or handler into an
// ErrPanic error and logs it. Place it right after Logging so that the
// failure is logged with the rest of the request.
type Recovery struct{}

var _ tokenswap.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (res *tokenswap.CheckResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicErr(ctx, tx, p)
		}
	}()
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (res *tokenswap.DeliverResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			res, err = nil, panicErr(ctx, tx, p)
		}
	}()
	return next.Deliver(ctx, db, tx)
}

func panicErr(ctx tokenswap.Context, tx tokenswap.Tx, p interface{}) error {
	path := "(missing)"
	if tx != nil {
		path = tokenswap.GetPath(tx)
	}
	tokenswap.GetLogger(ctx).Error("transaction panic", "path", path, "panic", p)
	return errors.Wrapf(errors.ErrPanic, "%v", p)
}

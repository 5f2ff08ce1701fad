package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Savepoint runs the wrapped handler on a cache wrap of the store. Changes
// are written back only if the handler succeeds, so a failed transaction
// leaves no partial transfers or record updates behind.
//
// Each phase must be enabled with OnCheck or OnDeliver.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tokenswap.Decorator = Savepoint{}

// NewSavepoint returns a Savepoint that is enabled for no phase.
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a copy that also isolates CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver returns a copy that also isolates DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	var res *tokenswap.CheckResult
	err := isolate(ctx, store, func(db tokenswap.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	var res *tokenswap.DeliverResult
	err := isolate(ctx, store, func(db tokenswap.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// isolate calls fn with a cache wrap of the store and writes the cache only
// when fn succeeds. Stores that cannot be wrapped are passed through.
func isolate(ctx tokenswap.Context, store tokenswap.KVStore, fn func(tokenswap.KVStore) error) error {
	cstore, ok := store.(tokenswap.CacheableKVStore)
	if !ok {
		return fn(store)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		tokenswap.GetLogger(ctx).Debug("savepoint rollback", "err", err)
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "writing savepoint")
	}
	return nil
}

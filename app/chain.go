package app

import (
	"reflect"

	"github.com/iov-one/tokenswap"
)

// Decorators is an ordered list of decorators waiting for a final handler.
// The first decorator is the outermost one.
type Decorators struct {
	chain []tokenswap.Decorator
}

// ChainDecorators starts a decorator chain. The swap daemon builds its stack
// with
//
//	app.ChainDecorators(
//	  utils.NewLogging(),
//	  utils.NewRecovery(),
//	  sigs.NewDecorator(),
//	  utils.NewSavepoint().OnDeliver(),
//	).WithHandler(router)
func ChainDecorators(chain ...tokenswap.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new list with the given decorators appended. Nil values,
// including typed nil pointers, are ignored so that optional decorators can
// be passed unconditionally.
func (d Decorators) Chain(chain ...tokenswap.Decorator) Decorators {
	next := append([]tokenswap.Decorator(nil), d.chain...)
	for _, dec := range chain {
		if dec == nil {
			continue
		}
		if v := reflect.ValueOf(dec); v.Kind() == reflect.Ptr && v.IsNil() {
			continue
		}
		next = append(next, dec)
	}
	return Decorators{chain: next}
}

// WithHandler closes the chain with h.
func (d Decorators) WithHandler(h tokenswap.Handler) tokenswap.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = decorated{dec: d.chain[i], next: h}
	}
	return h
}

// decorated binds a decorator to the handler it wraps.
type decorated struct {
	dec  tokenswap.Decorator
	next tokenswap.Handler
}

func (s decorated) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	return s.dec.Check(ctx, db, tx, s.next)
}

func (s decorated) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	return s.dec.Deliver(ctx, db, tx, s.next)
}

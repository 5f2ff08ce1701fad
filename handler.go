package tokenswap

import (
	"encoding/json"

	"github.com/iov-one/tokenswap/errors"
)

// Checker validates a transaction without executing it. The check phase
// runs on a scratch store and reports the gas the transaction needs.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction. All writes go to store.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Handler processes one kind of message, for example escrow deposits.
type Handler interface {
	Checker
	Deliverer
}

// Decorator wraps the next handler of a chain to add behaviour shared by
// all messages, such as authentication or logging. A decorator may modify
// the context or stop the chain by returning an error.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Initializer loads the state of an extension from the genesis app state.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// Options is the genesis app state. Every extension reads its own top level
// key.
type Options map[string]json.RawMessage

// ReadOptions decodes the JSON stored under key into obj. A missing key
// leaves obj untouched and is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

package app

import (
	"sync"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp is a complete abci.Application. It decodes transactions and passes
// them to the handler, using the check or the deliver store of StoreApp.
//
// At most one transaction is processed at any time and Commit waits for it
// to finish. Handlers read a record, check it and write it back without
// any locking of their own.
type BaseApp struct {
	*StoreApp
	decoder tokenswap.TxDecoder
	handler tokenswap.Handler
	debug   bool

	mu sync.Mutex
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp returns an application processing transactions with handler.
// In debug mode error responses include stack traces and internal errors.
func NewBaseApp(store *StoreApp, decoder tokenswap.TxDecoder, handler tokenswap.Handler, debug bool) *BaseApp {
	return &BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

func (b *BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.decode(raw)
	if err != nil {
		return tokenswap.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return tokenswap.DeliverOrError(res, err, b.debug)
}

func (b *BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, err := b.decode(raw)
	if err != nil {
		return tokenswap.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return tokenswap.CheckOrError(res, err, b.debug)
}

func (b *BaseApp) Commit() abci.ResponseCommit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.StoreApp.Commit()
}

func (b *BaseApp) txContext(call string, tx tokenswap.Tx) tokenswap.Context {
	return tokenswap.WithLogInfo(b.BlockContext(), "call", call, "path", tokenswap.GetPath(tx))
}

// decode never panics, whatever the input.
func (b *BaseApp) decode(raw []byte) (tx tokenswap.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}

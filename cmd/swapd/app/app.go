/*
Package swapd links together all the various components
to construct the swapd app.
*/
package swapd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store/iavl"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/swap"
	"github.com/iov-one/tokenswap/x/utils"
	"github.com/prometheus/client_golang/prometheus"
)

// Authenticator returns the typical authentication,
// just using public key signatures
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication,
// logging, metrics and recovery.
func Chain(reg prometheus.Registerer) (app.Decorators, error) {
	metrics, err := utils.NewMetrics(reg)
	if err != nil {
		return app.Decorators{}, errors.Wrap(err, "metrics")
	}
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		metrics,
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, a failed instruction still increments the
		// sequence but moves no funds
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	), nil
}

// Router returns a router dispatching all escrow messages.
func Router(authFn x.Authenticator, bank cash.Controller) *app.Router {
	r := app.NewRouter()
	swap.RegisterRoutes(r, authFn, bank)
	return r
}

// QueryRouter returns a default query router,
// allowing access to "/wallets", "/auth" and "/escrows"
func QueryRouter() tokenswap.QueryRouter {
	r := tokenswap.NewQueryRouter()
	r.RegisterAll(
		cash.RegisterQuery,
		sigs.RegisterQuery,
		swap.RegisterQuery,
	)
	return r
}

// Bank returns the controller holding all wallets, vaults included.
func Bank() cash.Controller {
	return cash.NewController(cash.NewBucket())
}

// Stack wires up a standard router with a standard decorator
// chain. This can be passed into BaseApp.
func Stack(reg prometheus.Registerer) (tokenswap.Handler, error) {
	chain, err := Chain(reg)
	if err != nil {
		return nil, err
	}
	return chain.WithHandler(Router(Authenticator(), Bank())), nil
}

// Initializers returns everything that is loaded from the genesis file.
func Initializers() tokenswap.Initializer {
	return app.ChainInitializers(
		&cash.Initializer{},
		&swap.Initializer{Bank: Bank()},
	)
}

// Application constructs a basic ABCI application with
// the given arguments. If you are not sure what to use
// for the Handler, just use Stack().
func Application(name string, h tokenswap.Handler,
	tx tokenswap.TxDecoder, dbPath string, debug bool) (*app.BaseApp, error) {

	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	store, err := app.NewStoreApp(name, kv, QueryRouter(), context.Background())
	if err != nil {
		return nil, err
	}
	store.WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// CommitKVStore returns an initialized KVStore that persists
// the data to the named path.
func CommitKVStore(dbPath string) (tokenswap.CommitKVStore, error) {
	// memory backed case, just for testing
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	// Expand the path fully
	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "invalid database name: %s", dbPath)
	}

	// Some external calls accidently add a ".db", which is now removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	// Split the database name into it's components (dir, name)
	dir := filepath.Dir(path)
	name := filepath.Base(path)
	return iavl.NewCommitStore(dir, name), nil
}

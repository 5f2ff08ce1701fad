/*
Package apptest drives a complete ABCI application from tests, block by
block, using the same serialized transactions a client would send.
*/
package apptest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

// Tester is implemented by both *testing.T and *testing.B.
type Tester interface {
	Helper()
	Errorf(string, ...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// SignedTx is a transaction that can be sent over the wire.
type SignedTx interface {
	tokenswap.Tx
	tokenswap.Marshaller
}

// Runner provides a translation layer between the ABCI interface and
// tokenswap transactions. It takes care of serialization and creates blocks.
type Runner struct {
	chainID string
	height  int64
	t       Tester
	app     abci.Application
}

// NewRunner returns a runner for the given application. Genesis is loaded
// with InitChain.
func NewRunner(t Tester, app abci.Application, chainID string) *Runner {
	return &Runner{
		chainID: chainID,
		t:       t,
		app:     app,
	}
}

// Height returns the height of the last created block.
func (r *Runner) Height() int64 {
	return r.height
}

// InitChain serializes the genesis to JSON and loads it in its own block.
func (r *Runner) InitChain(genesis interface{}) {
	r.t.Helper()
	raw, err := json.MarshalIndent(genesis, "", "  ")
	if err != nil {
		r.t.Fatalf("cannot JSON serialize genesis: %s", err)
	}

	changed := r.InBlock(func() error {
		r.app.InitChain(abci.RequestInitChain{
			Time:          time.Now(),
			ChainId:       r.chainID,
			AppStateBytes: raw,
		})
		return nil
	})
	if !changed {
		r.t.Fatalf("genesis did not change the state")
	}
}

// CheckTx serializes the transaction and runs CheckTx.
func (r *Runner) CheckTx(tx SignedTx) error {
	raw, err := tx.Marshal()
	if err != nil {
		return errors.Wrap(err, "cannot marshal transaction")
	}
	if resp := r.app.CheckTx(raw); resp.Code != 0 {
		return &ABCIError{Code: resp.Code, Log: resp.Log}
	}
	return nil
}

// DeliverTx serializes the transaction and runs DeliverTx. It must be called
// from within InBlock.
func (r *Runner) DeliverTx(tx SignedTx) (abci.ResponseDeliverTx, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return abci.ResponseDeliverTx{}, errors.Wrap(err, "cannot marshal transaction")
	}
	resp := r.app.DeliverTx(raw)
	if resp.Code != 0 {
		return resp, &ABCIError{Code: resp.Code, Log: resp.Log}
	}
	return resp, nil
}

// InBlock begins a block, runs the given function and commits. It returns
// true if the block changed the application state.
//
// Any error returned by executeTx ends the test.
func (r *Runner) InBlock(executeTx func() error) bool {
	r.t.Helper()

	r.height++
	initialHash := r.app.Info(abci.RequestInfo{}).LastBlockAppHash

	r.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{
			ChainID: r.chainID,
			Height:  r.height,
			Time:    time.Now(),
		},
	})

	if err := executeTx(); err != nil {
		r.t.Fatalf("operation failed with %+v", err)
	}

	r.app.EndBlock(abci.RequestEndBlock{Height: r.height})
	finalHash := r.app.Commit().Data
	return !bytes.Equal(initialHash, finalHash)
}

// Query runs an ABCI query against the last committed state and returns
// the models found.
func (r *Runner) Query(path string, data []byte) ([]tokenswap.Model, error) {
	resp := r.app.Query(abci.RequestQuery{Path: path, Data: data})
	if resp.Code != 0 {
		return nil, &ABCIError{Code: resp.Code, Log: resp.Log}
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(err, "cannot parse keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(err, "cannot parse values")
	}
	return app.JoinResults(&keys, &values)
}

// QueryOne loads the single model found under the given path and key into
// dest. It fails the test if nothing is found.
func (r *Runner) QueryOne(path string, key []byte, dest tokenswap.Persistent) {
	r.t.Helper()
	models, err := r.Query(path, key)
	if err != nil {
		r.t.Fatalf("query %s: %+v", path, err)
	}
	if len(models) != 1 {
		r.t.Fatalf("query %s: want one result, got %d", path, len(models))
	}
	if err := dest.Unmarshal(models[0].Value); err != nil {
		r.t.Fatalf("query %s: cannot unmarshal: %s", path, err)
	}
}

// ABCIError is a failed ABCI response.
type ABCIError struct {
	Code uint32
	Log  string
}

func (e *ABCIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Log)
}

// Is returns true if the response carries the code of the given error.
func (e *ABCIError) Is(err *errors.Error) bool {
	return err != nil && e.Code == err.ABCICode()
}

/*
Package client talks to a swapd node over the tendermint RPC. It submits
signed transactions and reads the application state with ABCI queries.
*/
package client

import (
	"encoding/hex"
	"fmt"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/swap"
	abci "github.com/tendermint/tendermint/abci/types"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
)

const txPerPage = 50

// Client is a tendermint client wrapped to provide simple access to the
// swapd state and transactions.
type Client struct {
	conn rpcclient.Client
}

// NewClient wraps a Client around an existing tendermint client connection.
func NewClient(conn rpcclient.Client) *Client {
	return &Client{conn: conn}
}

// Status returns current height and other (subjective) status info from this node
func (c *Client) Status() (*Status, error) {
	status, err := c.conn.Status()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "status: %s", err)
	}
	return &Status{
		Height:     status.SyncInfo.LatestBlockHeight,
		CatchingUp: status.SyncInfo.CatchingUp,
	}, nil
}

// ChainID returns the chain id declared in the genesis of the node.
func (c *Client) ChainID() (string, error) {
	res, err := c.conn.Genesis()
	if err != nil {
		return "", errors.Wrapf(errors.ErrNetwork, "genesis: %s", err)
	}
	if res.Genesis == nil {
		return "", errors.Wrap(errors.ErrEmpty, "genesis")
	}
	return res.Genesis.ChainID, nil
}

// BroadcastTxCommit submits the transaction and waits until it is included
// in a block. A transaction rejected by CheckTx or DeliverTx returns an
// error carrying the ABCI code of the failure.
func (c *Client) BroadcastTxCommit(tx tokenswap.Marshaller) (*CommitResult, error) {
	raw, err := tx.Marshal()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrMsg, "marshaling: %s", err)
	}
	res, err := c.conn.BroadcastTxCommit(raw)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "broadcast tx: %s", err)
	}
	// A CheckTx failure means the transaction never made it to the mempool.
	if res.CheckTx.Code != 0 {
		return nil, errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log)
	}
	result, err := parseDeliverOrError(res.DeliverTx)
	return &CommitResult{
		ID:     TransactionID(res.Hash),
		Height: res.Height,
		Result: result,
		Err:    err,
	}, nil
}

// Query runs an ABCI query on the latest state and returns all found models.
func (c *Client) Query(path string, data []byte) ([]tokenswap.Model, error) {
	res, err := c.conn.ABCIQuery(path, data)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "query %s: %s", path, err)
	}
	resp := res.Response
	if resp.Code != 0 {
		return nil, errors.ABCIError(resp.Code, resp.Log)
	}
	var keys, values app.ResultSet
	if err := keys.Unmarshal(resp.Key); err != nil {
		return nil, errors.Wrap(err, "keys")
	}
	if err := values.Unmarshal(resp.Value); err != nil {
		return nil, errors.Wrap(err, "values")
	}
	return app.JoinResults(&keys, &values)
}

// QueryOne loads the model found under given path and key into dest. It
// returns ErrNotFound if nothing is found.
func (c *Client) QueryOne(path string, key []byte, dest tokenswap.Persistent) error {
	models, err := c.Query(path, key)
	if err != nil {
		return err
	}
	switch len(models) {
	case 0:
		return errors.Wrapf(errors.ErrNotFound, "%s %X", path, key)
	case 1:
		return dest.Unmarshal(models[0].Value)
	default:
		return errors.Wrapf(errors.ErrState, "%s %X: %d results", path, key, len(models))
	}
}

// NextSequence returns the sequence the next signature of given address
// must use.
func (c *Client) NextSequence(addr tokenswap.Address) (int64, error) {
	var user sigs.UserData
	err := c.QueryOne("/auth", addr, &user)
	switch {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, err
	}
	return user.Sequence, nil
}

// SearchTx returns committed transactions matching the query, oldest
// first. At most one page of results is returned.
func (c *Client) SearchTx(query TxQuery) ([]*CommitResult, error) {
	search, err := c.conn.TxSearch(query, false, 1, txPerPage)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrNetwork, "search tx: %s", err)
	}
	results := make([]*CommitResult, len(search.Txs))
	for i, tx := range search.Txs {
		results[i] = resultTxToCommitResult(tx)
	}
	return results, nil
}

func resultTxToCommitResult(tx *ctypes.ResultTx) *CommitResult {
	res, err := parseDeliverOrError(tx.TxResult)
	return &CommitResult{
		ID:     TransactionID(tx.Hash),
		Height: tx.Height,
		Result: res,
		Err:    err,
	}
}

// parseDeliverOrError is the inverse of tokenswap.DeliverOrError.
func parseDeliverOrError(res abci.ResponseDeliverTx) (*tokenswap.DeliverResult, error) {
	if res.Code != 0 {
		return nil, errors.ABCIError(res.Code, res.Log)
	}
	return &tokenswap.DeliverResult{
		Data:    res.Data,
		Log:     res.Log,
		Tags:    res.Tags,
		GasUsed: res.GasUsed,
	}, nil
}

// QueryTxByEscrow returns a search query matching all successful
// transactions that modified given escrow.
func QueryTxByEscrow(escrowID []byte) TxQuery {
	return fmt.Sprintf("%s='%s'", swap.TagEscrow, hex.EncodeToString(escrowID))
}

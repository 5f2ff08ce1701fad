package client

import (
	"github.com/iov-one/tokenswap"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
)

// NewHTTPConnection returns a connection sending all requests to the remote
// tendermint node, for example "http://localhost:26657".
func NewHTTPConnection(remote string) rpcclient.Client {
	return rpcclient.NewHTTP(remote, "/websocket")
}

// TransactionID is the hash of a transaction, as indexed by tendermint.
type TransactionID = cmn.HexBytes

// TxQuery is a tendermint tag query, for example "swap.escrow='cafe'".
type TxQuery = string

// CommitResult describes a transaction included in a block. Exactly one of
// Result and Err is set, depending on the DeliverTx code.
type CommitResult struct {
	ID     TransactionID
	Height int64
	Result *tokenswap.DeliverResult
	Err    error
}

// EscrowID returns the escrow that the transaction applied to. Swap handlers
// return the escrow ID as the result data.
func (r *CommitResult) EscrowID() []byte {
	if r.Result == nil {
		return nil
	}
	return r.Result.Data
}

// Status of the node the client is connected to.
type Status struct {
	Height     int64
	CatchingUp bool
}

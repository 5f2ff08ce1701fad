package client

import (
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/weavetest/assert"
	"github.com/iov-one/tokenswap/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
	cmn "github.com/tendermint/tendermint/libs/common"
	rpcclient "github.com/tendermint/tendermint/rpc/client"
	ctypes "github.com/tendermint/tendermint/rpc/core/types"
	tmtypes "github.com/tendermint/tendermint/types"
)

// fakeConn implements only the calls used by the client. Any other call
// panics on the nil embedded interface.
type fakeConn struct {
	rpcclient.Client

	queries   map[string]abci.ResponseQuery
	broadcast *ctypes.ResultBroadcastTxCommit
	sent      []byte
	chainID   string
	found     []*ctypes.ResultTx
	searched  string
}

func (f *fakeConn) TxSearch(query string, prove bool, page, perPage int) (*ctypes.ResultTxSearch, error) {
	f.searched = query
	return &ctypes.ResultTxSearch{Txs: f.found, TotalCount: len(f.found)}, nil
}

func (f *fakeConn) ABCIQuery(path string, data cmn.HexBytes) (*ctypes.ResultABCIQuery, error) {
	resp, ok := f.queries[path+":"+string(data)]
	if !ok {
		return &ctypes.ResultABCIQuery{}, nil
	}
	return &ctypes.ResultABCIQuery{Response: resp}, nil
}

func (f *fakeConn) BroadcastTxCommit(tx tmtypes.Tx) (*ctypes.ResultBroadcastTxCommit, error) {
	f.sent = tx
	return f.broadcast, nil
}

func (f *fakeConn) Genesis() (*ctypes.ResultGenesis, error) {
	return &ctypes.ResultGenesis{Genesis: &tmtypes.GenesisDoc{ChainID: f.chainID}}, nil
}

func queryResponse(t *testing.T, models ...tokenswap.Model) abci.ResponseQuery {
	t.Helper()
	keys, err := app.ResultsFromKeys(models).Marshal()
	assert.Nil(t, err)
	values, err := app.ResultsFromValues(models).Marshal()
	assert.Nil(t, err)
	return abci.ResponseQuery{Key: keys, Value: values}
}

func TestNextSequence(t *testing.T) {
	known := crypto.GenPrivKeyEd25519().PublicKey()
	user := &sigs.UserData{Pubkey: known, Sequence: 7}
	raw, err := user.Marshal()
	assert.Nil(t, err)

	conn := &fakeConn{queries: map[string]abci.ResponseQuery{
		"/auth:" + string(known.Address()): queryResponse(t, tokenswap.Pair(known.Address(), raw)),
	}}
	c := NewClient(conn)

	seq, err := c.NextSequence(known.Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(7), seq)

	// unknown signers start from zero
	seq, err = c.NextSequence(crypto.GenPrivKeyEd25519().PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(0), seq)
}

func TestQueryError(t *testing.T) {
	conn := &fakeConn{queries: map[string]abci.ResponseQuery{
		"/escrows:x": {Code: errors.ErrInput.ABCICode(), Log: "bad"},
	}}
	_, err := NewClient(conn).Query("/escrows", []byte("x"))
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBroadcastTxCommit(t *testing.T) {
	cases := map[string]struct {
		result     ctypes.ResultBroadcastTxCommit
		wantErr    *errors.Error
		wantTxErr  *errors.Error
		wantResult []byte
	}{
		"success": {
			result: ctypes.ResultBroadcastTxCommit{
				DeliverTx: abci.ResponseDeliverTx{Data: []byte{0, 1}},
				Height:    5,
			},
			wantResult: []byte{0, 1},
		},
		"rejected by check": {
			result: ctypes.ResultBroadcastTxCommit{
				CheckTx: abci.ResponseCheckTx{Code: errors.ErrUnauthorized.ABCICode(), Log: "sig"},
			},
			wantErr: errors.ErrUnauthorized,
		},
		"failed in deliver": {
			result: ctypes.ResultBroadcastTxCommit{
				DeliverTx: abci.ResponseDeliverTx{Code: errors.ErrState.ABCICode(), Log: "closed"},
			},
			wantTxErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			conn := &fakeConn{broadcast: &tc.result}
			res, err := NewClient(conn).BroadcastTxCommit(rawTx("payload"))
			assert.Equal(t, []byte("payload"), []byte(conn.sent))
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			if tc.wantTxErr != nil {
				assert.IsErr(t, tc.wantTxErr, res.Err)
				return
			}
			assert.Nil(t, res.Err)
			assert.Equal(t, tc.wantResult, res.EscrowID())
		})
	}
}

func TestChainID(t *testing.T) {
	id, err := NewClient(&fakeConn{chainID: "swap-chain"}).ChainID()
	assert.Nil(t, err)
	assert.Equal(t, "swap-chain", id)
}

type rawTx string

func (r rawTx) Marshal() ([]byte, error) {
	return []byte(r), nil
}

func TestSearchTx(t *testing.T) {
	conn := &fakeConn{
		found: []*ctypes.ResultTx{
			{
				Hash:     cmn.HexBytes{0xAA},
				Height:   3,
				TxResult: abci.ResponseDeliverTx{Data: []byte{0, 0, 0, 7}},
			},
			{
				Hash:     cmn.HexBytes{0xBB},
				Height:   4,
				TxResult: abci.ResponseDeliverTx{Code: errors.ErrUnauthorized.ABCICode(), Log: "not a party"},
			},
		},
	}

	results, err := NewClient(conn).SearchTx(QueryTxByEscrow([]byte{0, 0, 0, 7}))
	assert.Nil(t, err)
	assert.Equal(t, "swap.escrow='00000007'", conn.searched)
	assert.Equal(t, 2, len(results))

	assert.Equal(t, int64(3), results[0].Height)
	assert.Nil(t, results[0].Err)
	assert.Equal(t, []byte{0, 0, 0, 7}, results[0].EscrowID())

	assert.Equal(t, TransactionID{0xBB}, results[1].ID)
	assert.IsErr(t, errors.ErrUnauthorized, results[1].Err)
	assert.Nil(t, results[1].EscrowID())
}

package tokenswap

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/tendermint/tendermint/libs/common"
)

func TestDeliverOrError(t *testing.T) {
	res := &DeliverResult{
		Data: []byte{0xca, 0xfe},
		Tags: []common.KVPair{{Key: []byte("swap.escrow"), Value: []byte("cafe")}},
	}
	ok := DeliverOrError(res, nil, false)
	assert.Equal(t, uint32(0), ok.Code)
	assert.Equal(t, []byte{0xca, 0xfe}, ok.Data)
	assert.Len(t, ok.Tags, 1)

	failed := DeliverOrError(res, errors.Wrap(errors.ErrNotFound, "escrow"), false)
	assert.Equal(t, errors.ErrNotFound.ABCICode(), failed.Code)
	assert.Equal(t, "cannot deliver tx: escrow: not found", failed.Log)
	assert.Nil(t, failed.Data)
}

func TestCheckOrError(t *testing.T) {
	ok := CheckOrError(&CheckResult{GasAllocated: 300}, nil, false)
	assert.Equal(t, uint32(0), ok.Code)
	assert.Equal(t, int64(300), ok.GasWanted)

	failed := CheckOrError(nil, errors.ErrUnauthorized, false)
	assert.Equal(t, errors.ErrUnauthorized.ABCICode(), failed.Code)
	assert.Contains(t, failed.Log, "cannot check tx")
}

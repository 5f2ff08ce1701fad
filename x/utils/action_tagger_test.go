package utils_test

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/weavetest"
	"github.com/iov-one/tokenswap/weavetest/assert"
	"github.com/iov-one/tokenswap/x/utils"
	"github.com/tendermint/tendermint/libs/common"
)

func TestActionTagger(t *testing.T) {
	escrowTag := common.KVPair{Key: []byte("swap"), Value: []byte("01")}

	cases := map[string]struct {
		handler      *weavetest.Handler
		tx           tokenswap.Tx
		wantErr      *errors.Error
		wantDelivers int
		wantTags     []string
	}{
		"message path is tagged": {
			handler:      &weavetest.Handler{},
			tx:           &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/init"}},
			wantDelivers: 1,
			wantTags:     []string{"action=swap/init"},
		},
		"handler tags are kept": {
			handler: &weavetest.Handler{
				DeliverResult: tokenswap.DeliverResult{Tags: []common.KVPair{escrowTag}},
			},
			tx:           &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/deposit"}},
			wantDelivers: 1,
			wantTags:     []string{"swap=01", "action=swap/deposit"},
		},
		"failed delivery is not tagged": {
			handler:      &weavetest.Handler{DeliverErr: errors.ErrHuman},
			tx:           &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/cancel"}},
			wantErr:      errors.ErrHuman,
			wantDelivers: 1,
		},
		"undecodable message never reaches the handler": {
			handler: &weavetest.Handler{},
			tx:      &weavetest.Tx{Err: errors.ErrInput},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := weavetest.Decorate(tc.handler, utils.NewActionTagger())

			res, err := h.Deliver(context.Background(), store.MemStore(), tc.tx)
			assert.Equal(t, tc.wantDelivers, tc.handler.DeliverCallCount())
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			var tags []string
			for _, kv := range res.Tags {
				tags = append(tags, string(kv.Key)+"="+string(kv.Value))
			}
			assert.Equal(t, tc.wantTags, tags)
		})
	}
}

func TestActionTaggerCheckIsNotTagged(t *testing.T) {
	var h weavetest.Handler
	tagged := weavetest.Decorate(&h, utils.NewActionTagger())
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/complete"}}

	_, err := tagged.Check(context.Background(), store.MemStore(), tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, h.CheckCallCount())
}

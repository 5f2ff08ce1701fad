package utils

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/weavetest"
	"github.com/stretchr/testify/assert"
)

func TestRecovery(t *testing.T) {
	cases := map[string]struct {
		tx tokenswap.Tx
	}{
		"with a transaction": {
			tx: &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/complete"}},
		},
		"without a transaction": {
			tx: nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			h := weavetest.PanicHandler{Msg: "vault exploded"}
			r := NewRecovery()
			ctx := context.Background()
			db := store.MemStore()

			assert.Panics(t, func() { h.Deliver(ctx, db, tc.tx) })

			_, err := r.Check(ctx, db, tc.tx, h)
			assert.True(t, errors.ErrPanic.Is(err))

			_, err = r.Deliver(ctx, db, tc.tx, h)
			assert.True(t, errors.ErrPanic.Is(err))
			assert.Contains(t, err.Error(), "vault exploded")
		})
	}
}

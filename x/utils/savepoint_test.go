package utils

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/weavetest"
	"github.com/iov-one/tokenswap/weavetest/assert"
)

func TestSavepoint(t *testing.T) {
	// always written before calling the savepoint
	ok, ov := []byte("demo"), []byte("data")
	// written by the handler
	nk, nv := []byte{1, 2, 3}, []byte{4, 5, 6}

	cases := map[string]struct {
		save    tokenswap.Decorator
		handler tokenswap.Handler
		check   bool
		wantErr *errors.Error
		written [][]byte
		missing [][]byte
	}{
		"savepoint disabled, error keeps writes": {
			save:    NewSavepoint(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok, nk},
		},
		"check savepoint rolls back on error": {
			save:    NewSavepoint().OnCheck(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint rolls back on error": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrHuman},
			wantErr: errors.ErrHuman,
			written: [][]byte{ok},
			missing: [][]byte{nk},
		},
		"deliver savepoint ignores check": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv, Err: errors.ErrHuman},
			check:   true,
			wantErr: errors.ErrHuman,
			written: [][]byte{ok, nk},
		},
		"deliver savepoint commits on success": {
			save:    NewSavepoint().OnDeliver(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv},
			written: [][]byte{ok, nk},
		},
		"both savepoints commit on success": {
			save:    NewSavepoint().OnCheck().OnDeliver(),
			handler: &weavetest.WriteHandler{Key: nk, Value: nv},
			check:   true,
			written: [][]byte{ok, nk},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			ctx := context.Background()
			kv := store.MemStore()
			assert.Nil(t, kv.Set(ok, ov))

			var err error
			if tc.check {
				_, err = tc.save.Check(ctx, kv, nil, tc.handler)
			} else {
				_, err = tc.save.Deliver(ctx, kv, nil, tc.handler)
			}
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
			} else {
				assert.Nil(t, err)
			}

			for _, k := range tc.written {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				if !has {
					t.Errorf("key %X not written", k)
				}
			}
			for _, k := range tc.missing {
				has, err := kv.Has(k)
				assert.Nil(t, err)
				if has {
					t.Errorf("key %X written", k)
				}
			}
		})
	}
}

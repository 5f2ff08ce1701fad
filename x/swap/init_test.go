package swap

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/weavetest"
	"github.com/iov-one/tokenswap/weavetest/assert"
	"github.com/iov-one/tokenswap/x/cash"
)

func TestGenesis(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()

	escrow := func(id string, depositedA bool) GenesisEscrow {
		return GenesisEscrow{
			ID: hexBytes(id),
			Escrow: Escrow{
				PartyA:     a,
				PartyB:     b,
				AssetA:     "XXX",
				AssetB:     "YYY",
				AmountA:    10,
				AmountB:    20,
				DepositedA: depositedA,
			},
		}
	}

	cases := map[string]struct {
		escrows   []GenesisEscrow
		raw       string
		wantErr   *errors.Error
		wantVault uint64
	}{
		"no escrows": {
			raw: `{}`,
		},
		"funded escrow": {
			escrows:   []GenesisEscrow{escrow("first", true)},
			wantVault: 10,
		},
		"unfunded escrow": {
			escrows: []GenesisEscrow{escrow("first", false)},
		},
		"duplicated id": {
			escrows: []GenesisEscrow{escrow("first", false), escrow("first", false)},
			wantErr: errors.ErrDuplicate,
		},
		"missing id": {
			escrows: []GenesisEscrow{escrow("", false)},
			wantErr: ErrMalformedInstruction,
		},
		"wrong vault": {
			escrows: func() []GenesisEscrow {
				e := escrow("first", false)
				e.Escrow.VaultAuthority = weavetest.NewCondition().Address()
				return []GenesisEscrow{e}
			}(),
			wantErr: errors.ErrInput,
		},
		"invalid escrow": {
			escrows: func() []GenesisEscrow {
				e := escrow("first", false)
				e.Escrow.AmountA = 0
				return []GenesisEscrow{e}
			}(),
			wantErr: ErrInvalidAmount,
		},
		"cancelled escrow still funded": {
			escrows: func() []GenesisEscrow {
				e := escrow("first", true)
				e.Escrow.Status = StatusCancelled
				return []GenesisEscrow{e}
			}(),
			wantErr: errors.ErrState,
		},
		"malformed id": {
			raw:     `{"swap": [{"id": "not hex"}]}`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			raw := []byte(tc.raw)
			if tc.escrows != nil {
				state, err := json.Marshal(tc.escrows)
				assert.Nil(t, err)
				raw, err = json.Marshal(map[string]json.RawMessage{"swap": state})
				assert.Nil(t, err)
			}
			var opts tokenswap.Options
			assert.Nil(t, json.Unmarshal(raw, &opts))

			db := store.MemStore()
			bank := cash.NewController(cash.NewBucket())
			initializer := Initializer{Bank: bank}
			err := initializer.FromGenesis(opts, db)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)

			for _, g := range tc.escrows {
				var got Escrow
				assert.Nil(t, NewBucket().One(db, g.ID, &got))
				assert.Equal(t, StatusActive, got.Status)
				assert.Equal(t, VaultCondition(g.ID).Address(), got.VaultAuthority)

				funds, err := bank.Balance(db, got.VaultAuthority)
				assert.Nil(t, err)
				assert.Equal(t, tc.wantVault, funds.Balance("XXX").Amount)
			}
		})
	}
}

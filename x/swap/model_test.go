package swap

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/weavetest"
	"github.com/iov-one/tokenswap/weavetest/assert"
)

func TestEscrowValidate(t *testing.T) {
	a := weavetest.NewCondition().Address()
	b := weavetest.NewCondition().Address()
	vault := VaultCondition(weavetest.SequenceID(1)).Address()

	valid := func() Escrow {
		return Escrow{
			PartyA:         a,
			AssetA:         "ETH",
			AssetB:         "BTC",
			AmountA:        1000,
			AmountB:        2000,
			VaultAuthority: vault,
			Status:         StatusActive,
		}
	}

	cases := map[string]struct {
		mutate func(*Escrow)
		field  string
		want   *errors.Error
	}{
		"fresh escrow": {
			mutate: func(*Escrow) {},
		},
		"party B assigned": {
			mutate: func(e *Escrow) { e.PartyB = b; e.DepositedB = true },
		},
		"missing party A": {
			mutate: func(e *Escrow) { e.PartyA = nil },
			field:  "PartyA",
			want:   errors.ErrInput,
		},
		"party B equals party A": {
			mutate: func(e *Escrow) { e.PartyB = a },
			field:  "PartyB",
			want:   errors.ErrInput,
		},
		"deposit B without party B": {
			mutate: func(e *Escrow) { e.DepositedB = true },
			field:  "DepositedB",
			want:   errors.ErrState,
		},
		"invalid asset": {
			mutate: func(e *Escrow) { e.AssetB = "bitcoin" },
			field:  "AssetB",
			want:   errors.ErrCurrency,
		},
		"zero amount": {
			mutate: func(e *Escrow) { e.AmountA = 0 },
			field:  "AmountA",
			want:   ErrInvalidAmount,
		},
		"missing vault": {
			mutate: func(e *Escrow) { e.VaultAuthority = nil },
			field:  "VaultAuthority",
			want:   errors.ErrInput,
		},
		"completed": {
			mutate: func(e *Escrow) {
				e.PartyB = b
				e.DepositedA, e.DepositedB = true, true
				e.Status = StatusCompleted
			},
		},
		"completed without both deposits": {
			mutate: func(e *Escrow) { e.DepositedA = true; e.Status = StatusCompleted },
			field:  "Status",
			want:   errors.ErrState,
		},
		"cancelled": {
			mutate: func(e *Escrow) { e.PartyB = b; e.Status = StatusCancelled },
		},
		"cancelled with a deposit left": {
			mutate: func(e *Escrow) { e.DepositedA = true; e.Status = StatusCancelled },
			field:  "DepositedA",
			want:   errors.ErrState,
		},
		"unknown status": {
			mutate: func(e *Escrow) { e.Status = 7 },
			field:  "Status",
			want:   errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			e := valid()
			tc.mutate(&e)
			err := e.Validate()
			if tc.want == nil {
				assert.Nil(t, err)
				return
			}
			assert.FieldError(t, err, tc.field, tc.want)
		})
	}
}

func TestEscrowSerialization(t *testing.T) {
	e := Escrow{
		PartyA:         weavetest.NewCondition().Address(),
		AssetA:         "ETH",
		AssetB:         "BTC",
		AmountA:        1000,
		AmountB:        2000,
		DepositedA:     true,
		VaultAuthority: VaultCondition([]byte("x")).Address(),
		Status:         StatusCompleted,
	}
	raw, err := e.Marshal()
	assert.Nil(t, err)
	var got Escrow
	assert.Nil(t, got.Unmarshal(raw))
	assert.Equal(t, e, got)

	js, err := json.Marshal(StatusCancelled)
	assert.Nil(t, err)
	assert.Equal(t, `"cancelled"`, string(js))
	var st Status
	assert.Nil(t, json.Unmarshal(js, &st))
	assert.Equal(t, StatusCancelled, st)
	assert.IsErr(t, errors.ErrInput, json.Unmarshal([]byte(`"lost"`), &st))
}

func TestStatusTerminal(t *testing.T) {
	assert.Equal(t, false, StatusActive.Terminal())
	assert.Equal(t, true, StatusCompleted.Terminal())
	assert.Equal(t, true, StatusCancelled.Terminal())
	assert.Equal(t, "unknown", Status(0).String())
}

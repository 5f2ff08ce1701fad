package swapd

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/weavetest/assert"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/swap"
)

func TestTxRoundTrip(t *testing.T) {
	tx, err := NewTx([]byte("escrow"), &swap.DepositInstruction{Amount: 42})
	assert.Nil(t, err)

	unsigned, err := tx.GetSignBytes()
	assert.Nil(t, err)

	sig, err := sigs.SignTx(crypto.GenPrivKeyEd25519(), tx, "test-chain", 3)
	assert.Nil(t, err)
	tx.Signatures = append(tx.Signatures, sig)

	// signatures never change what is signed
	signBytes, err := tx.GetSignBytes()
	assert.Nil(t, err)
	assert.Equal(t, unsigned, signBytes)
	assert.Equal(t, 1, len(tx.Signatures))

	raw, err := tx.Marshal()
	assert.Nil(t, err)
	decoded, err := TxDecoder(raw)
	assert.Nil(t, err)

	msg, err := decoded.GetMsg()
	assert.Nil(t, err)
	assert.Equal(t, &swap.DepositMsg{EscrowID: []byte("escrow"), Amount: 42}, msg)
	assert.Equal(t, int64(3), decoded.(*Tx).GetSignatures()[0].Sequence)
}

func TestTxGetMsg(t *testing.T) {
	cases := map[string]struct {
		tx      Tx
		wantErr *errors.Error
		path    string
	}{
		"init without id": {
			tx:   Tx{Instruction: mustEncode(t, &swap.InitInstruction{AssetA: "ETH", AssetB: "BTC", AmountA: 1, AmountB: 2})},
			path: "swap/init",
		},
		"complete": {
			tx:   Tx{EscrowID: []byte{1}, Instruction: []byte{2}},
			path: "swap/complete",
		},
		"cancel": {
			tx:   Tx{EscrowID: []byte{1}, Instruction: []byte{3}},
			path: "swap/cancel",
		},
		"missing instruction": {
			tx:      Tx{EscrowID: []byte{1}},
			wantErr: swap.ErrMalformedInstruction,
		},
		"unknown instruction": {
			tx:      Tx{EscrowID: []byte{1}, Instruction: []byte{4}},
			wantErr: swap.ErrMalformedInstruction,
		},
		"trailing bytes": {
			tx:      Tx{EscrowID: []byte{1}, Instruction: []byte{3, 0}},
			wantErr: swap.ErrMalformedInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			msg, err := tc.tx.GetMsg()
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.path, msg.Path())
		})
	}
}

func TestTxDecoderErrors(t *testing.T) {
	_, err := TxDecoder(nil)
	assert.IsErr(t, errors.ErrInput, err)
	_, err = TxDecoder([]byte{0xff, 0xff, 0xff})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestGenInitOptions(t *testing.T) {
	addr := crypto.GenPrivKeyEd25519().PublicKey().Address()

	raw, err := GenInitOptions([]string{"USDC", addr.String()})
	assert.Nil(t, err)
	opts := make(map[string]interface{})
	assert.Nil(t, json.Unmarshal(raw, &opts))
	for _, section := range []string{"cash", "swap", "conf"} {
		if _, ok := opts[section]; !ok {
			t.Fatalf("no %s section in %s", section, raw)
		}
	}

	_, err = GenInitOptions([]string{"usdc", addr.String()})
	assert.IsErr(t, errors.ErrCurrency, err)
}

func mustEncode(t *testing.T, ins swap.Instruction) []byte {
	t.Helper()
	raw, err := swap.EncodeInstruction(ins)
	assert.Nil(t, err)
	return raw
}

package swap

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/weavetest/assert"
)

func TestDecodeInstruction(t *testing.T) {
	cases := map[string]struct {
		raw     []byte
		want    Instruction
		wantErr *errors.Error
	}{
		"init": {
			raw: []byte{
				0,
				3, 0, 0, 0, 'E', 'T', 'H',
				3, 0, 0, 0, 'B', 'T', 'C',
				0xe8, 0x03, 0, 0, 0, 0, 0, 0,
				0xd0, 0x07, 0, 0, 0, 0, 0, 0,
			},
			want: &InitInstruction{AssetA: "ETH", AssetB: "BTC", AmountA: 1000, AmountB: 2000},
		},
		"deposit": {
			raw:  []byte{1, 0xe7, 0x03, 0, 0, 0, 0, 0, 0},
			want: &DepositInstruction{Amount: 999},
		},
		"complete swap": {
			raw:  []byte{2},
			want: &CompleteSwapInstruction{},
		},
		"cancel": {
			raw:  []byte{3},
			want: &CancelInstruction{},
		},
		"empty": {
			raw:     nil,
			wantErr: ErrMalformedInstruction,
		},
		"unknown tag": {
			raw:     []byte{4},
			wantErr: ErrMalformedInstruction,
		},
		"truncated amount": {
			raw:     []byte{1, 0xe7, 0x03, 0, 0},
			wantErr: ErrMalformedInstruction,
		},
		"truncated string": {
			raw:     []byte{0, 3, 0, 0, 0, 'E', 'T'},
			wantErr: ErrMalformedInstruction,
		},
		"huge string length": {
			raw:     []byte{0, 0xff, 0xff, 0xff, 0xff, 'E'},
			wantErr: ErrMalformedInstruction,
		},
		"huge second string length": {
			raw:     []byte{0, 3, 0, 0, 0, 'E', 'T', 'H', 0, 0, 0, 0x80, 'B'},
			wantErr: ErrMalformedInstruction,
		},
		"init trailing bytes": {
			raw: []byte{
				0,
				3, 0, 0, 0, 'E', 'T', 'H',
				3, 0, 0, 0, 'B', 'T', 'C',
				1, 0, 0, 0, 0, 0, 0, 0,
				2, 0, 0, 0, 0, 0, 0, 0,
				7,
			},
			wantErr: ErrMalformedInstruction,
		},
		"trailing bytes": {
			raw:     []byte{3, 0},
			wantErr: ErrMalformedInstruction,
		},
		"deposit trailing bytes": {
			raw:     []byte{1, 1, 0, 0, 0, 0, 0, 0, 0, 9},
			wantErr: ErrMalformedInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := DecodeInstruction(tc.raw)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)

			raw, err := EncodeInstruction(got)
			assert.Nil(t, err)
			assert.Equal(t, tc.raw, raw)
		})
	}
}

func TestEncodeNilInstruction(t *testing.T) {
	_, err := EncodeInstruction(nil)
	assert.IsErr(t, ErrMalformedInstruction, err)
}

func TestInitInstructionValidate(t *testing.T) {
	cases := map[string]struct {
		ins     InitInstruction
		wantErr *errors.Error
	}{
		"valid": {
			ins: InitInstruction{AssetA: "ETH", AssetB: "BTC", AmountA: 1, AmountB: 2},
		},
		"same asset on both sides": {
			ins: InitInstruction{AssetA: "ETH", AssetB: "ETH", AmountA: 1, AmountB: 2},
		},
		"zero amount A": {
			ins:     InitInstruction{AssetA: "ETH", AssetB: "BTC", AmountA: 0, AmountB: 2},
			wantErr: ErrInvalidAmount,
		},
		"zero amount B": {
			ins:     InitInstruction{AssetA: "ETH", AssetB: "BTC", AmountA: 1, AmountB: 0},
			wantErr: ErrInvalidAmount,
		},
		"invalid asset": {
			ins:     InitInstruction{AssetA: "eth", AssetB: "BTC", AmountA: 1, AmountB: 2},
			wantErr: ErrMalformedInstruction,
		},
		"missing asset": {
			ins:     InitInstruction{AssetA: "ETH", AmountA: 1, AmountB: 2},
			wantErr: ErrMalformedInstruction,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.IsErr(t, tc.wantErr, tc.ins.Validate())
		})
	}
}

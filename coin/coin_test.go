package coin

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/weavetest/assert"
)

func TestCoinAdd(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same currency": {
			a:    NewCoin(1000, "ETH"),
			b:    NewCoin(2000, "ETH"),
			want: NewCoin(3000, "ETH"),
		},
		"empty coin is ignored": {
			a:    Coin{},
			b:    NewCoin(7, "USDC"),
			want: NewCoin(7, "USDC"),
		},
		"different currency": {
			a:       NewCoin(1, "ETH"),
			b:       NewCoin(1, "BTC"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       NewCoin(math.MaxUint64, "ETH"),
			b:       NewCoin(1, "ETH"),
			wantErr: errors.ErrOverflow,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"enough funds": {
			a:    NewCoin(1000, "ETH"),
			b:    NewCoin(400, "ETH"),
			want: NewCoin(600, "ETH"),
		},
		"everything": {
			a:    NewCoin(1000, "ETH"),
			b:    NewCoin(1000, "ETH"),
			want: NewCoin(0, "ETH"),
		},
		"not enough funds": {
			a:       NewCoin(999, "ETH"),
			b:       NewCoin(1000, "ETH"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"different currency": {
			a:       NewCoin(5, "ETH"),
			b:       NewCoin(1, "BTC"),
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Subtract(tc.b)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"valid":             {coin: NewCoin(1, "USDC")},
		"zero is valid":     {coin: NewCoin(0, "ETH")},
		"digits allowed":    {coin: NewCoin(1, "W3T")},
		"missing ticker":    {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
		"lower case ticker": {coin: NewCoin(1, "eth"), wantErr: errors.ErrCurrency},
		"ticker too long":   {coin: NewCoin(1, "TOOLONGX"), wantErr: errors.ErrCurrency},
		"leading digit":     {coin: NewCoin(1, "1ETH"), wantErr: errors.ErrCurrency},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := tc.coin.Validate()
			if tc.wantErr == nil {
				assert.Nil(t, err)
			} else {
				assert.IsErr(t, tc.wantErr, err)
			}
		})
	}
}

func TestCoinHumanFormat(t *testing.T) {
	c, err := ParseHumanFormat(" 1000 ETH ")
	assert.Nil(t, err)
	assert.Equal(t, NewCoin(1000, "ETH"), c)
	assert.Equal(t, "1000 ETH", c.String())

	_, err = ParseHumanFormat("1.5 ETH")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = ParseHumanFormat("99999999999999999999 ETH")
	assert.IsErr(t, errors.ErrOverflow, err)
}

func TestCoinUnmarshalJSON(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    Coin
		wantErr *errors.Error
	}{
		"human format": {
			raw:  `"2000 USDC"`,
			want: NewCoin(2000, "USDC"),
		},
		"object format": {
			raw:  `{"ticker": "ETH", "amount": 5}`,
			want: NewCoin(5, "ETH"),
		},
		"invalid human format": {
			raw:     `"lots of ETH"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c Coin
			err := json.Unmarshal([]byte(tc.raw), &c)
			if tc.wantErr != nil {
				assert.IsErr(t, tc.wantErr, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, tc.want, c)
		})
	}
}

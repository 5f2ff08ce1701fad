package coin

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/iov-one/tokenswap/errors"
)

// IsCC is the RegExp to ensure valid currency codes. A ticker starts with an
// upper case letter and is followed by 2 to 5 upper case letters or digits.
var IsCC = regexp.MustCompile(`^[A-Z][A-Z0-9]{2,5}$`).MatchString

// Coin is an amount of a single token type. Amounts are expressed in the
// smallest unit of the token, there are no fractions.
type Coin struct {
	Ticker string `json:"ticker"`
	Amount uint64 `json:"amount"`
}

// NewCoin creates a new coin object.
func NewCoin(amount uint64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount uint64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins.
// Returns error if they are of different currencies, or if the combination
// would cause an overflow.
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins represents no value and does not have a ticker
	// set then it has no influence on the addition result.
	if c.Ticker == "" && c.IsZero() {
		return o, nil
	}
	if o.Ticker == "" && o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "adding %s to %s", o.Ticker, c.Ticker)
	}
	if c.Amount > math.MaxUint64-o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "%s + %s", c, o)
	}
	c.Amount += o.Amount
	return c, nil
}

// Subtract given amount. Because amounts cannot be negative, subtracting more
// than available fails.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if o.IsZero() {
		return c, nil
	}
	if !c.SameType(o) {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "subtracting %s from %s", o.Ticker, c.Ticker)
	}
	if c.Amount < o.Amount {
		return Coin{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s < %s", c, o)
	}
	c.Amount -= o.Amount
	return c, nil
}

// Compare will check values of two coins, without inspecting the currency
// code. It is up to the caller to determine if they want to check this.
//
// Returns 1 if c is larger, -1 if o is larger, 0 if equal
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical.
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount.
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true if the amount is 0.
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0.
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsGTE returns true if c is same type and at least as large as o.
func (c Coin) IsGTE(o Coin) bool {
	return c.SameType(o) && c.Amount >= o.Amount
}

// SameType returns true if they have the same currency.
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer.
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	cpy := *c
	return &cpy
}

// Validate ensures that the coin has a valid currency code. A zero amount is
// accepted, so you may want to make other checks in your business logic.
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrCurrency, "invalid currency: %q", c.Ticker)
	}
	return nil
}

// String provides a human readable representation of the coin, for example
// "1000 ETH". For a valid coin the result can be parsed back using
// ParseHumanFormat.
func (c Coin) String() string {
	if c.Ticker == "" {
		return strconv.FormatUint(c.Amount, 10)
	}
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

var humanCoinFormatRx = regexp.MustCompile(`^\s*(\d+)\s*([A-Z][A-Z0-9]{2,5})\s*$`)

// ParseHumanFormat parse a human readable coin representation. Accepted format
// is a string:
//
//	"<amount> <ticker>"
func ParseHumanFormat(h string) (Coin, error) {
	m := humanCoinFormatRx.FindStringSubmatch(h)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin format: %q", h)
	}
	amount, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return Coin{}, errors.Wrapf(errors.ErrOverflow, "invalid amount: %s", err)
	}
	return NewCoin(amount, m[2]), nil
}

// UnmarshalJSON accepts both the human readable string format and the
// object representation.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if err := json.Unmarshal(raw, &human); err == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	// Fallback into the default unmarshaling. Because UnmarshalJSON method
	// is provided, we can no longer use Coin type for this.
	var coin struct {
		Ticker string
		Amount uint64
	}
	if err := json.Unmarshal(raw, &coin); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	c.Ticker = coin.Ticker
	c.Amount = coin.Amount
	return nil
}

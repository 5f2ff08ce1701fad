package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/tokenswap/errors"
)

// Coins represents a set of coins. Most operations on the coin set require
// normalized form: sorted by ticker, one coin per ticker, no zero values.
type Coins []*Coin

// CombineCoins creates a Coins containing all given coins.
// It will sort them and combine duplicates to produce
// a normalized form regardless of input.
func CombineCoins(cs ...Coin) (Coins, error) {
	var err error
	coins := make(Coins, 0, len(cs))
	for _, c := range cs {
		coins, err = coins.Add(c)
		if err != nil {
			return nil, err
		}
	}
	if err := coins.Validate(); err != nil {
		return nil, err
	}
	return coins, nil
}

// Clone returns a copy that can be safely modified.
func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	res := make([]*Coin, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return Coins(res)
}

// Add returns a new collection with the holdings increased by c.
func (cs Coins) Add(c Coin) (Coins, error) {
	// We ignore zero values
	if c.IsZero() {
		return cs, nil
	}

	res := cs.Clone()
	has, i := res.findCoin(c.ID())
	if has != nil {
		sum, err := has.Add(c)
		if err != nil {
			return nil, err
		}
		res[i] = &sum
		return res, nil
	}

	res = append(res, nil)
	copy(res[i+1:], res[i:])
	res[i] = &c
	return res, nil
}

// Subtract returns a new collection with the holdings decreased by c. It
// fails if there are not enough holdings.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}

	res := cs.Clone()
	has, i := res.findCoin(c.ID())
	if has == nil {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Ticker)
	}
	diff, err := has.Subtract(c)
	if err != nil {
		return nil, err
	}
	// if the result is zero, remove this currency
	if diff.IsZero() {
		return append(res[:i], res[i+1:]...), nil
	}
	res[i] = &diff
	return res, nil
}

// Contains returns true if there is at least that much coin in the Coins.
func (cs Coins) Contains(c Coin) bool {
	has, _ := cs.findCoin(c.ID())
	if has == nil {
		return c.IsZero()
	}
	return has.IsGTE(c)
}

// Balance returns the amount of given ticker held.
func (cs Coins) Balance(ticker string) Coin {
	has, _ := cs.findCoin(ticker)
	if has == nil {
		return NewCoin(0, ticker)
	}
	return *has
}

// IsEmpty returns true if there is no coin with a value.
func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

// Equals returns true if both collections hold exactly the same coins.
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Validate requires that all coins are valid, positive and the collection is
// in the normalized form.
func (cs Coins) Validate() error {
	for i, c := range cs {
		if c == nil {
			return errors.Wrapf(errors.ErrEmpty, "coin %d", i)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if !c.IsPositive() {
			return errors.Wrapf(errors.ErrAmount, "coin %d is zero", i)
		}
		if i > 0 && strings.Compare(cs[i-1].Ticker, c.Ticker) >= 0 {
			return errors.Wrap(errors.ErrCurrency, "not sorted or not unique")
		}
	}
	return nil
}

// String returns a human readable representation of all coins.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// findCoin returns a coin and index that have this currency code.
//
// If there was a match, then result is non-nil, and the index is where it
// was. If there was no match, then result is nil, and index is where it
// should be (which may be between 0 and len(cs)).
func (cs Coins) findCoin(ticker string) (*Coin, int) {
	i := sort.Search(len(cs), func(i int) bool {
		return cs[i].Ticker >= ticker
	})
	if i < len(cs) && cs[i].Ticker == ticker {
		return cs[i], i
	}
	return nil, i
}

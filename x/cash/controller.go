package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// Controller is the functionality needed by other extensions to move funds
// between addresses.
type Controller interface {
	// Balance returns all coins held by given address.
	Balance(tokenswap.ReadOnlyKVStore, tokenswap.Address) (coin.Coins, error)

	// MoveCoins moves the given amount from src to dest. If src doesn't
	// exist, or doesn't have sufficient coins, it fails.
	MoveCoins(db tokenswap.KVStore, src, dest tokenswap.Address, amount coin.Coin) error

	// IssueCoins adds the given amount of coins to the destination
	// address. Fails if it overflows the wallet.
	IssueCoins(db tokenswap.KVStore, dest tokenswap.Address, amount coin.Coin) error
}

// BaseController is a simple implementation of the Controller backed by a
// wallet bucket.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller using given bucket as the wallet store.
func NewController(bucket orm.ModelBucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance returns the coins held by given address. An address that never
// received anything holds nothing.
func (c BaseController) Balance(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (coin.Coins, error) {
	w, err := c.load(db, addr)
	if err != nil {
		return nil, err
	}
	return w.Coins, nil
}

func (c BaseController) MoveCoins(db tokenswap.KVStore, src, dest tokenswap.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !amount.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "non-positive amount")
	}
	if err := src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}

	sender, err := c.load(db, src)
	if err != nil {
		return err
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrInsufficientAmount, "%s holds %s", src, sender.Coins.Balance(amount.Ticker))
	}
	if sender.Coins, err = sender.Coins.Subtract(amount); err != nil {
		return err
	}
	if err := c.save(db, src, sender); err != nil {
		return err
	}

	// Load the recipient only after the sender is saved so that moving
	// to yourself is a no-op instead of minting.
	recipient, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if recipient.Coins, err = recipient.Coins.Add(amount); err != nil {
		return err
	}
	return c.save(db, dest, recipient)
}

func (c BaseController) IssueCoins(db tokenswap.KVStore, dest tokenswap.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if err := dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	w, err := c.load(db, dest)
	if err != nil {
		return err
	}
	if w.Coins, err = w.Coins.Add(amount); err != nil {
		return err
	}
	return c.save(db, dest, w)
}

func (c BaseController) load(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (*Set, error) {
	var w Set
	switch err := c.bucket.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Set{}, nil
	default:
		return nil, errors.Wrap(err, "cannot load wallet")
	}
}

// save writes the wallet, removing it from the store once it holds nothing.
func (c BaseController) save(db tokenswap.KVStore, addr tokenswap.Address, w *Set) error {
	if w.Coins.IsEmpty() {
		if err := c.bucket.Delete(db, addr); err != nil && !errors.ErrNotFound.Is(err) {
			return err
		}
		return nil
	}
	_, err := c.bucket.Put(db, addr, w)
	return err
}

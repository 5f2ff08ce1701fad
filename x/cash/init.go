package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

const optKey = "cash"

// GenesisAccount is a wallet declared in the "cash" section of the genesis
// app state. The address is hex encoded.
type GenesisAccount struct {
	Address tokenswap.Address `json:"address"`
	Coins   []coin.Coin       `json:"coins"`
}

// Initializer issues the coins of all genesis accounts.
type Initializer struct{}

var _ tokenswap.Initializer = Initializer{}

func (Initializer) FromGenesis(opts tokenswap.Options, db tokenswap.KVStore) error {
	var accounts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accounts); err != nil {
		return err
	}
	ctrl := NewController(NewBucket())
	for i, a := range accounts {
		if err := issueAll(ctrl, db, a); err != nil {
			return errors.Wrapf(err, "account %d", i)
		}
	}
	return nil
}

func issueAll(ctrl Controller, db tokenswap.KVStore, a GenesisAccount) error {
	if err := a.Address.Validate(); err != nil {
		return err
	}
	for _, c := range a.Coins {
		if err := ctrl.IssueCoins(db, a.Address, c); err != nil {
			return errors.Wrapf(err, "issue %s", c)
		}
	}
	return nil
}

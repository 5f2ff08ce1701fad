package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/cash"
)

// VaultCondition returns the condition owning the funds deposited in the
// escrow with given id. No key exists for it, so only this package can
// spend from its address.
func VaultCondition(escrowID []byte) tokenswap.Condition {
	return tokenswap.NewCondition("swap", "vault", escrowID)
}

// custodian moves funds in and out of the vault of a single escrow. It holds
// no state of its own.
type custodian struct {
	vault tokenswap.Address
	bank  cash.Controller
}

func newCustodian(bank cash.Controller, escrowID []byte) custodian {
	return custodian{
		vault: VaultCondition(escrowID).Address(),
		bank:  bank,
	}
}

// Receive moves amount from given account into the vault.
func (c custodian) Receive(db tokenswap.KVStore, from tokenswap.Address, amount coin.Coin) error {
	if err := c.bank.MoveCoins(db, from, c.vault, amount); err != nil {
		return errors.Append(errors.Wrapf(ErrTransferFailed, "receive %s from %s", amount, from), err)
	}
	return nil
}

// Release moves amount from the vault to given account.
func (c custodian) Release(db tokenswap.KVStore, to tokenswap.Address, amount coin.Coin) error {
	if err := c.bank.MoveCoins(db, c.vault, to, amount); err != nil {
		return errors.Append(errors.Wrapf(ErrTransferFailed, "release %s to %s", amount, to), err)
	}
	return nil
}

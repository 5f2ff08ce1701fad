package swap

import (
	"encoding/hex"
	"encoding/json"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
	"github.com/iov-one/tokenswap/x/cash"
)

const optKey = "swap"

// GenesisEscrow is an escrow imported at chain start, for example when
// migrating state from another chain.
type GenesisEscrow struct {
	ID     hexBytes `json:"id"`
	Escrow Escrow   `json:"escrow"`
}

// Initializer fulfils the Initializer interface to load the configuration and
// escrows from the genesis file. Funds of deposited sides are issued into the
// vault.
type Initializer struct {
	Bank cash.Controller
}

var _ tokenswap.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial escrows from genesis and save them in the
// database.
func (i *Initializer) FromGenesis(opts tokenswap.Options, db tokenswap.KVStore) error {
	switch err := gconf.InitConfig(db, opts, optKey, &Configuration{}); {
	case err == nil, errors.ErrNotFound.Is(err):
		// Without a configuration the defaults apply.
	default:
		return err
	}

	var escrows []GenesisEscrow
	if err := opts.ReadOptions(optKey, &escrows); err != nil {
		return err
	}

	bucket := NewBucket()
	for j, g := range escrows {
		if err := validateEscrowID(g.ID); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		e := g.Escrow
		if err := bucket.Has(db, g.ID); !errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrDuplicate, "escrow %d: %X", j, []byte(g.ID))
		}
		vault := VaultCondition(g.ID).Address()
		if len(e.VaultAuthority) == 0 {
			e.VaultAuthority = vault
		}
		if !e.VaultAuthority.Equals(vault) {
			return errors.Wrapf(errors.ErrInput, "escrow %d: vault authority must be %s", j, vault)
		}
		if e.Status == 0 {
			e.Status = StatusActive
		}
		if _, err := bucket.Put(db, g.ID, &e); err != nil {
			return errors.Wrapf(err, "escrow %d", j)
		}
		if e.Status.Terminal() {
			continue
		}
		for _, role := range []Role{RoleA, RoleB} {
			if !e.Deposited(role) {
				continue
			}
			if err := i.Bank.IssueCoins(db, vault, e.Expected(role)); err != nil {
				return errors.Wrapf(err, "escrow %d: cannot fund vault", j)
			}
		}
	}
	return nil
}

// hexBytes is binary data represented as a hex string in JSON.
type hexBytes []byte

func (h hexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(h))
}

func (h *hexBytes) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "hex string expected")
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "invalid hex: %s", err)
	}
	*h = b
	return nil
}

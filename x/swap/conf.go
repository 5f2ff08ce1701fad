package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/gconf"
	amino "github.com/tendermint/go-amino"
)

// Configuration holds the gas allocated by each escrow operation. Creating an
// escrow pays for the record storage up front.
type Configuration struct {
	InitCost     int64 `json:"init_cost"`
	DepositCost  int64 `json:"deposit_cost"`
	CompleteCost int64 `json:"complete_cost"`
	CancelCost   int64 `json:"cancel_cost"`
}

var _ gconf.Configuration = (*Configuration)(nil)

// DefaultConfiguration is used when the genesis does not configure the
// extension.
func DefaultConfiguration() Configuration {
	return Configuration{
		InitCost:     300,
		DepositCost:  50,
		CompleteCost: 50,
		CancelCost:   50,
	}
}

func (c *Configuration) Validate() error {
	var err error
	if c.InitCost < 0 {
		err = errors.AppendField(err, "InitCost", errors.ErrInput)
	}
	if c.DepositCost < 0 {
		err = errors.AppendField(err, "DepositCost", errors.ErrInput)
	}
	if c.CompleteCost < 0 {
		err = errors.AppendField(err, "CompleteCost", errors.ErrInput)
	}
	if c.CancelCost < 0 {
		err = errors.AppendField(err, "CancelCost", errors.ErrInput)
	}
	return err
}

func (c *Configuration) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(c)
}

func (c *Configuration) Unmarshal(raw []byte) error {
	if err := amino.UnmarshalBinaryBare(raw, c); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	return nil
}

// loadConf returns the stored configuration or the default one if none was
// set.
func loadConf(db tokenswap.ReadOnlyKVStore) (Configuration, error) {
	var conf Configuration
	switch err := gconf.Load(db, optKey, &conf); {
	case err == nil:
		return conf, nil
	case errors.ErrNotFound.Is(err):
		return DefaultConfiguration(), nil
	default:
		return conf, errors.Wrap(err, "load configuration")
	}
}

package swapd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/iov-one/tokenswap/x/swap"
	"github.com/prometheus/client_golang/prometheus"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// initialFunds is the balance of every ticker given to the genesis account.
const initialFunds = 123456789

// GenInitOptions will produce some basic options for one rich
// account, to use for dev mode.
//
// Arguments are the tickers to fund (default ETH and BTC), optionally
// followed by the hex address to fund. When no address is given, a new key
// is generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	tickers := []string{"ETH", "BTC"}
	var addr tokenswap.Address

	if n := len(args); n > 0 {
		if a, err := tokenswap.ParseAddress(args[n-1]); err == nil {
			addr = a
			args = args[:n-1]
		}
	}
	if len(args) > 0 {
		tickers = args
	}
	for _, t := range tickers {
		if !coin.IsCC(t) {
			return nil, errors.Wrapf(errors.ErrCurrency, "invalid ticker %s", t)
		}
	}

	if addr == nil {
		a, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		addr = a
		fmt.Println(keys)
	}

	acct := cash.GenesisAccount{Address: addr}
	for _, t := range tickers {
		acct.Coins = append(acct.Coins, coin.NewCoin(initialFunds, t))
	}
	state := map[string]interface{}{
		"cash": []cash.GenesisAccount{acct},
		"swap": []swap.GenesisEscrow{},
		"conf": map[string]interface{}{
			"swap": swap.DefaultConfiguration(),
		},
	}
	return json.MarshalIndent(state, "", "  ")
}

// GenerateApp is used to create a stub for server/start.go command
func GenerateApp(home string, logger log.Logger, debug bool, reg prometheus.Registerer) (abci.Application, error) {
	// db goes in a subdir, but "" -> "" for memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "swap.db")
	}

	stack, err := Stack(reg)
	if err != nil {
		return nil, err
	}
	application, err := Application("swapd", stack, TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

type output struct {
	Pubkey *crypto.PublicKey  `json:"pub_key"`
	Secret *crypto.PrivateKey `json:"secret"`
}

// GenerateCoinKey returns the address of a public key,
// along with a json representation of the keys.
// You can give coins to this address and
// import the keys in swapcli to use them.
func GenerateCoinKey() (tokenswap.Address, string, error) {
	privKey := crypto.GenPrivKeyEd25519()
	pubKey := privKey.PublicKey()
	addr := pubKey.Address()

	out := output{Pubkey: pubKey, Secret: privKey}
	keys, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	return addr, string(keys), nil
}

package server

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tendermint/tendermint/libs/log"
)

// setupHome creates a home dir holding a genesis file as written by
// tendermint init.
func setupHome(t *testing.T, genesis string) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "swapd-server")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(home, dirConfig), 0755))
	if genesis != "" {
		require.NoError(t, ioutil.WriteFile(GenesisPath(home), []byte(genesis), 0600))
	}
	return home, func() { os.RemoveAll(home) }
}

const tmGenesis = `{"chain_id": "test-chain-LgVOZ0", "validators": [{"power": "10"}]}`

func genOpts(args []string) (json.RawMessage, error) {
	ticker := "ETH"
	if len(args) > 0 {
		ticker = args[0]
	}
	return json.RawMessage(`{"cash": [], "ticker": "` + ticker + `"}`), nil
}

func readDoc(t *testing.T, home string) GenesisDoc {
	t.Helper()
	bz, err := ioutil.ReadFile(GenesisPath(home))
	require.NoError(t, err)
	var doc GenesisDoc
	require.NoError(t, json.Unmarshal(bz, &doc))
	return doc
}

func TestInit(t *testing.T) {
	home, cleanup := setupHome(t, tmGenesis)
	defer cleanup()

	logger := log.NewNopLogger()
	require.NoError(t, InitCmd(genOpts, logger, home, []string{"BTC"}))

	doc := readDoc(t, home)
	// keep old values, and add our values
	assert.EqualValues(t, `"test-chain-LgVOZ0"`, doc["chain_id"])
	assert.NotEmpty(t, doc["validators"])
	assert.JSONEq(t, `{"cash": [], "ticker": "BTC"}`, string(doc[appStateKey]))

	// app state is never silently replaced
	err := InitCmd(genOpts, logger, home, nil)
	assert.True(t, errors.ErrState.Is(err))

	require.NoError(t, InitCmd(genOpts, logger, home, []string{"-f", "USDC"}))
	doc = readDoc(t, home)
	assert.JSONEq(t, `{"cash": [], "ticker": "USDC"}`, string(doc[appStateKey]))
}

func TestInitErrors(t *testing.T) {
	logger := log.NewNopLogger()

	cases := map[string]struct {
		genesis string
		gen     GenOptions
		wantErr *errors.Error
	}{
		"missing genesis file": {
			gen:     genOpts,
			wantErr: errors.ErrNotFound,
		},
		"invalid genesis file": {
			genesis: `[1, 2`,
			gen:     genOpts,
			wantErr: errors.ErrInput,
		},
		"null genesis file": {
			genesis: `null`,
			gen:     genOpts,
			wantErr: errors.ErrEmpty,
		},
		"generator failure": {
			genesis: tmGenesis,
			gen: func([]string) (json.RawMessage, error) {
				return nil, errors.Wrap(errors.ErrCurrency, "ticker")
			},
			wantErr: errors.ErrCurrency,
		},
		"generated invalid JSON": {
			genesis: tmGenesis,
			gen: func([]string) (json.RawMessage, error) {
				return json.RawMessage(`{"cash":`), nil
			},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			home, cleanup := setupHome(t, tc.genesis)
			defer cleanup()
			err := InitCmd(tc.gen, logger, home, nil)
			assert.True(t, tc.wantErr.Is(err), "got %+v", err)
		})
	}
}

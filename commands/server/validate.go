package server

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
)

// ValidateGenesis runs the initializer against the app state of each genesis
// file. Results are written to a memory store and dropped, so only the
// outcome matters. Validation stops at the first failing file.
func ValidateGenesis(ini tokenswap.Initializer, genesisPaths []string) error {
	if len(genesisPaths) == 0 {
		return errors.Wrap(errors.ErrInput, "usage: validate <genesis.json>...")
	}
	for _, path := range genesisPaths {
		state, err := readAppState(path)
		if err == nil {
			err = ini.FromGenesis(state, store.MemStore())
		}
		if err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

// readAppState returns the app_state section of a genesis file.
func readAppState(path string) (tokenswap.Options, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read genesis file")
	}
	var genesis struct {
		State tokenswap.Options `json:"app_state"`
	}
	switch err := json.Unmarshal(raw, &genesis); {
	case err != nil:
		return nil, errors.Wrapf(errors.ErrInput, "cannot JSON deserialize genesis: %s", err)
	case genesis.State == nil:
		return nil, errors.Wrap(errors.ErrEmpty, "app_state")
	}
	return genesis.State, nil
}

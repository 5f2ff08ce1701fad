package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/iov-one/tokenswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

const (
	// appStateKey is the key of the application state in the tendermint
	// genesis file.
	appStateKey = "app_state"
	// dirConfig is the tendermint config directory under home.
	dirConfig   = "config"
	genesisFile = "genesis.json"

	flagForce = "f"
)

// GenOptions can parse command line arguments to generate the app_state
// section of the genesis file.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't
// want to parse, so we just grab it into a raw object format,
// so we can add one line.
type GenesisDoc map[string]json.RawMessage

// InitCmd adds the app_state generated by gen to the genesis file that
// tendermint created under home. Existing app state is replaced only when
// the -f flag is given.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	initFlags := flag.NewFlagSet("init", flag.ContinueOnError)
	force := initFlags.Bool(flagForce, false, "overwrite existing app_state")
	if err := initFlags.Parse(args); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}

	genFile := GenesisPath(home)
	doc, err := readGenesis(genFile)
	if err != nil {
		return err
	}
	if _, ok := doc[appStateKey]; ok && !*force {
		logger.Info("app_state already set, use -f to overwrite", "path", genFile)
		return errors.Wrap(errors.ErrState, "app_state already set")
	}

	options, err := gen(initFlags.Args())
	if err != nil {
		return err
	}
	if !json.Valid(options) {
		return errors.Wrap(errors.ErrInput, "generated app_state is not valid JSON")
	}
	doc[appStateKey] = options
	if err := writeGenesis(genFile, doc); err != nil {
		return err
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

// GenesisPath returns the location of the genesis file for the home dir.
func GenesisPath(home string) string {
	return filepath.Join(home, dirConfig, genesisFile)
}

func readGenesis(filename string) (GenesisDoc, error) {
	bz, err := ioutil.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrNotFound,
				"%s, run tendermint init first", filename)
		}
		return nil, errors.Wrap(err, "cannot read genesis file")
	}
	var doc GenesisDoc
	if err := json.Unmarshal(bz, &doc); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "genesis file: %s", err)
	}
	if doc == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "genesis file")
	}
	return doc, nil
}

func writeGenesis(filename string, doc GenesisDoc) error {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "cannot serialize genesis")
	}
	if err := ioutil.WriteFile(filename, out, 0600); err != nil {
		return errors.Wrap(err, fmt.Sprintf("cannot write %s", filename))
	}
	return nil
}

package app

import (
	"github.com/iov-one/tokenswap"
)

// ChainInitializers returns an initializer that runs all given initializers
// in order. The first failure stops the genesis load.
func ChainInitializers(inits ...tokenswap.Initializer) tokenswap.Initializer {
	return initializers(inits)
}

type initializers []tokenswap.Initializer

func (all initializers) FromGenesis(opts tokenswap.Options, db tokenswap.KVStore) error {
	for _, ini := range all {
		if err := ini.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}

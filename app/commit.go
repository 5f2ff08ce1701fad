package app

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// CommitStore keeps two independent cache layers on top of a committed
// store. Check and deliver phases never see each other writes. Only the
// deliver layer is flushed on commit.
type CommitStore struct {
	committed tokenswap.CommitKVStore
	deliver   tokenswap.KVCacheWrap
	check     tokenswap.KVCacheWrap
}

// NewCommitStore loads the latest committed version of store.
func NewCommitStore(store tokenswap.CommitKVStore) (*CommitStore, error) {
	if err := store.LoadLatestVersion(); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "load latest version: %s", err)
	}
	cs := &CommitStore{committed: store}
	cs.resetCaches()
	return cs, nil
}

func (cs *CommitStore) resetCaches() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (tokenswap.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists all delivered changes and drops whatever was written
// during checks.
func (cs *CommitStore) Commit() (tokenswap.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return tokenswap.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	cs.resetCaches()
	return id, nil
}

// CheckStore is the store for CheckTx.
func (cs *CommitStore) CheckStore() tokenswap.CacheableKVStore { return cs.check }

// DeliverStore is the store for DeliverTx and InitChain.
func (cs *CommitStore) DeliverStore() tokenswap.CacheableKVStore { return cs.deliver }

// Keys starting with "_wv:" are reserved for the application itself.
var chainIDKey = []byte("_wv:chainID")

func loadChainID(kv tokenswap.ReadOnlyKVStore) (string, error) {
	raw, err := kv.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "load chain id")
	}
	return string(raw), nil
}

// saveChainID writes the chain id once. It can never be changed afterwards.
func saveChainID(kv tokenswap.KVStore, chainID string) error {
	if !tokenswap.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch exists, err := kv.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "load chain id")
	case exists:
		return errors.Wrap(errors.ErrUnauthorized, "chain id already set")
	}
	if err := kv.Set(chainIDKey, []byte(chainID)); err != nil {
		return errors.Wrap(err, "save chain id")
	}
	return nil
}

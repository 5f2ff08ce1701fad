package iavl

import (
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of tree nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore manages a iavl committed state.
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = (*CommitStore)(nil)

// NewCommitStore creates a new store with a leveldb backend, stored in the
// given directory.
func NewCommitStore(path, name string) *CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, path)
	return NewCommitStoreFromDB(db)
}

// NewMemCommitStore creates a store that is only kept in memory. Useful for
// tests.
func NewMemCommitStore() *CommitStore {
	return NewCommitStoreFromDB(dbm.NewMemDB())
}

// NewCommitStoreFromDB creates a store on top of any tendermint database.
func NewCommitStoreFromDB(db dbm.DB) *CommitStore {
	return &CommitStore{
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
	}
}

// Get returns the value at last committed state returns nil iff key doesn't
// exist.
func (s *CommitStore) Get(key []byte) ([]byte, error) {
	_, val := s.tree.GetVersioned(key, s.tree.Version())
	return val, nil
}

// Commit the next version to disk, and returns info.
func (s *CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}, nil
}

// LoadLatestVersion loads the latest persisted version. If there was a crash
// during the last commit, it is guaranteed to return a stable state, even if
// older.
func (s *CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// LatestVersion returns info on the latest version saved to disk.
func (s *CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}, nil
}

// CacheWrap gives us a savepoint to perform actions. All writes are applied
// to the working tree when the returned cache is written.
func (s *CommitStore) CacheWrap() store.KVCacheWrap {
	t := treeAdapter{tree: s.tree}
	return store.NewBTreeCacheWrap(t, store.NewNonAtomicBatch(t), nil)
}

// treeAdapter exposes the working (not yet saved) state of the tree as a
// KVStore.
type treeAdapter struct {
	tree *iavl.MutableTree
}

var _ store.ReadOnlyKVStore = treeAdapter{}
var _ store.SetDeleter = treeAdapter{}

func (t treeAdapter) Get(key []byte) ([]byte, error) {
	_, val := t.tree.Get(key)
	return val, nil
}

func (t treeAdapter) Has(key []byte) (bool, error) {
	return t.tree.Has(key), nil
}

func (t treeAdapter) Set(key, value []byte) error {
	// iavl does not accept nil values.
	if value == nil {
		value = []byte{}
	}
	t.tree.Set(key, value)
	return nil
}

func (t treeAdapter) Delete(key []byte) error {
	t.tree.Remove(key)
	return nil
}

func (t treeAdapter) Iterator(start, end []byte) (store.Iterator, error) {
	return t.iterate(start, end, true), nil
}

func (t treeAdapter) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return t.iterate(start, end, false), nil
}

func (t treeAdapter) iterate(start, end []byte, ascending bool) store.Iterator {
	var res []store.Model
	t.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		res = append(res, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(res)
}

package tokenswap

import "github.com/iov-one/tokenswap/store"

// Storage interfaces are declared in the store package. They are aliased here
// for shorter names everywhere.

type (
	ReadOnlyKVStore  = store.ReadOnlyKVStore
	SetDeleter       = store.SetDeleter
	KVStore          = store.KVStore
	Batch            = store.Batch
	Iterator         = store.Iterator
	CacheableKVStore = store.CacheableKVStore
	KVCacheWrap      = store.KVCacheWrap
	CommitKVStore    = store.CommitKVStore
	CommitID         = store.CommitID
	Model            = store.Model
)

// Pair constructs a model from a key-value pair.
func Pair(key, value []byte) Model {
	return store.Pair(key, value)
}

package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/tokenswap/errors"
)

const (
	// DefaultFreeListSize is the size we hold for free node in btree.
	DefaultFreeListSize = btree.DefaultFreeListSize
)

// BTreeCacheable adds a simple btree-based CacheWrap strategy to a KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this store,
// or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, b.NewBatch(), nil)
}

// MemStore returns a simple implementation useful for tests.
// There is no persistence here.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch(), nil)
}

// BTreeCacheWrap places a btree cache over a KVStore.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	free  *btree.FreeList
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a BTree to cache around this kv store. Use
// ReadOnlyKVStore to emphasize that all writes must go through the Batch.
//
// free may be nil, but set to an existing list to reuse it for memory
// savings.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch, free *btree.FreeList) BTreeCacheWrap {
	if free == nil {
		free = btree.NewFreeList(DefaultFreeListSize)
	}
	return BTreeCacheWrap{
		bt:    btree.NewWithFreeList(2, free),
		free:  free,
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another BTree on top of this one.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, b.NewBatch(), b.free)
}

// NewBatch returns a non-atomic batch that eventually may write to our
// cachewrap.
func (b BTreeCacheWrap) NewBatch() Batch {
	return NewNonAtomicBatch(b)
}

// Write syncs with the underlying store and then cleans up.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all data.
func (b BTreeCacheWrap) Discard() {
	for b.bt.DeleteMin() != nil {
	}
}

// Set writes to the BTree and to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(setItem{key: key, value: value})
	return b.batch.Set(key, value)
}

// Delete deletes from the BTree and from the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(deletedItem{key: key})
	return b.batch.Delete(key)
}

// Get reads from the btree if present, otherwise from the parent.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	if res == nil {
		return b.back.Get(key)
	}
	switch t := res.(type) {
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "unknown item in btree: %T", res)
	}
}

// Has returns true if the key exists in the btree or the parent.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	if res == nil {
		return b.back.Has(key)
	}
	_, deleted := res.(deletedItem)
	return !deleted, nil
}

// Iterator over a domain of keys in ascending order. Combines the cached
// writes with the parent content.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.Iterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "parent iterator")
	}
	return newCacheIterator(b.collect(start, end), parent, true), nil
}

// ReverseIterator over a domain of keys in descending order. Combines the
// cached writes with the parent content.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	parent, err := b.back.ReverseIterator(start, end)
	if err != nil {
		return nil, errors.Wrap(err, "parent iterator")
	}
	items := b.collect(start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return newCacheIterator(items, parent, false), nil
}

// collect returns a snapshot of all cached items within the range, in
// ascending order.
func (b BTreeCacheWrap) collect(start, end []byte) []keyer {
	var items []keyer
	insert := func(item btree.Item) bool {
		items = append(items, item.(keyer))
		return true
	}
	switch {
	case start == nil && end == nil:
		b.bt.Ascend(insert)
	case start == nil:
		b.bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		b.bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		b.bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// keyer is anything stored in the btree.
type keyer interface {
	btree.Item
	Key() []byte
}

// bkey is what we use to search the tree.
type bkey struct {
	key []byte
}

var _ keyer = bkey{}

func (k bkey) Key() []byte {
	return k.key
}

// Less returns true iff the key is strictly less than the other key.
func (k bkey) Less(than btree.Item) bool {
	return bytes.Compare(k.key, than.(keyer).Key()) < 0
}

// setItem is a value that was set.
type setItem struct {
	key   []byte
	value []byte
}

var _ keyer = setItem{}

func (s setItem) Key() []byte {
	return s.key
}

func (s setItem) Less(than btree.Item) bool {
	return bytes.Compare(s.key, than.(keyer).Key()) < 0
}

// deletedItem marks a key that was removed in this cache but may still exist
// in the parent.
type deletedItem struct {
	key []byte
}

var _ keyer = deletedItem{}

func (d deletedItem) Key() []byte {
	return d.key
}

func (d deletedItem) Less(than btree.Item) bool {
	return bytes.Compare(d.key, than.(keyer).Key()) < 0
}

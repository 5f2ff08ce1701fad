/*
Package orm maps models onto a key value store.

A bucket is a prefixed section of the store that holds a single type of
object under a primary key. It can maintain secondary indexes, unique or
not, and sequences that hand out ordered primary keys. Buckets and their
indexes can be exposed through the query router.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// SeqID is the name of the sequence used to allocate primary keys.
const SeqID = "id"

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket stores objects cloned from proto under the "<name>:" prefix.
// It is usually wrapped by a ModelBucket that provides a type safe API.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Cloneable
	indexes map[string]Index
}

var _ tokenswap.QueryHandler = Bucket{}

// NewBucket returns a bucket without indexes. It panics if the name is not
// 3 to 10 lower case letters or underscores.
func NewBucket(name string, proto Cloneable) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("invalid bucket name: %q", name))
	}
	return Bucket{
		name:   name,
		prefix: []byte(name + ":"),
		proto:  proto,
	}
}

func (b Bucket) Name() string {
	return b.name
}

// Register exposes the bucket under "/<name>" and each index under
// "/<name>/<index>". An empty name defaults to the bucket name.
func (b Bucket) Register(name string, r tokenswap.QueryRouter) {
	if name == "" {
		name = b.name
	}
	path := "/" + name
	r.Register(path, b)
	for idxName, idx := range b.indexes {
		r.Register(path+"/"+idxName, idx)
	}
}

// Query returns the raw entries stored under a key or under a key prefix.
// A key miss is not an error and returns no models.
func (b Bucket) Query(db tokenswap.ReadOnlyKVStore, mod string, data []byte) ([]tokenswap.Model, error) {
	switch mod {
	case tokenswap.KeyQueryMod:
		key := b.DBKey(data)
		raw, err := db.Get(key)
		if err != nil || raw == nil {
			return nil, err
		}
		return []tokenswap.Model{tokenswap.Pair(key, raw)}, nil
	case tokenswap.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
}

// DBKey returns the absolute store key of an object. The result never shares
// memory with the prefix.
func (b Bucket) DBKey(key []byte) []byte {
	out := make([]byte, 0, len(b.prefix)+len(key))
	out = append(out, b.prefix...)
	return append(out, key...)
}

// Get returns the object stored under key or nil when there is none.
func (b Bucket) Get(db tokenswap.ReadOnlyKVStore, key []byte) (Object, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil || raw == nil {
		return nil, err
	}
	return b.Parse(key, raw)
}

func (b Bucket) Has(db tokenswap.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Parse deserializes a stored value into a new object.
func (b Bucket) Parse(key, raw []byte) (Object, error) {
	obj := b.proto.Clone()
	if err := obj.Value().Unmarshal(raw); err != nil {
		return nil, errors.Wrapf(errors.ErrModel, "cannot parse %s entry: %s", b.name, err)
	}
	obj.SetKey(key)
	return obj, nil
}

// Save validates and writes obj, updating all indexes.
func (b Bucket) Save(db tokenswap.KVStore, obj Object) error {
	if err := obj.Validate(); err != nil {
		return err
	}
	raw, err := obj.Value().Marshal()
	if err != nil {
		return errors.Wrapf(err, "cannot serialize %s entry", b.name)
	}
	if err := b.reindex(db, obj.Key(), obj); err != nil {
		return err
	}
	return db.Set(b.DBKey(obj.Key()), raw)
}

// Delete removes the object stored under key together with its index
// entries.
func (b Bucket) Delete(db tokenswap.KVStore, key []byte) error {
	if err := b.reindex(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

// reindex moves index entries from the currently stored object to next. A
// nil next removes them.
func (b Bucket) reindex(db tokenswap.KVStore, key []byte, next Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && next == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, next); err != nil {
			return errors.Wrapf(err, "index %s", idx.Name())
		}
	}
	return nil
}

// Sequence returns a sequence bound to this bucket.
func (b Bucket) Sequence(name string) Sequence {
	return NewSequence(b.name, name)
}

// WithIndex returns a copy of the bucket that also maintains the named
// index. It panics if the name is already taken.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("index %q registered twice", name))
	}
	indexes := map[string]Index{
		name: NewIndex(b.name+"_"+name, indexer, unique, b.DBKey),
	}
	for n, idx := range b.indexes {
		indexes[n] = idx
	}
	b.indexes = indexes
	return b
}

// GetIndexed returns all objects referenced by the named index under key.
func (b Bucket) GetIndexed(db tokenswap.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return nil, errors.Wrap(ErrInvalidIndex, name)
	}
	refs, err := idx.GetAt(db, key)
	if err != nil {
		return nil, err
	}
	var objs []Object
	for _, ref := range refs {
		obj, err := b.Get(db, ref)
		if err != nil {
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

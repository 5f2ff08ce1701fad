package orm

import (
	"reflect"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// ModelBucket is implemented by buckets that operates on Models rather than
// Objects.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db tokenswap.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db tokenswap.ReadOnlyKVStore, key []byte) error

	// ByIndex returns all keys and models stored under given index value.
	ByIndex(db tokenswap.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, []Model, error)

	// Put saves given model in the database. When the key is nil, a new
	// one is allocated from the bucket id sequence. The key used is
	// returned.
	Put(db tokenswap.KVStore, key []byte, m Model) ([]byte, error)

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db tokenswap.KVStore, key []byte) error

	// Register registers this bucket and its indexes for queries.
	Register(name string, r tokenswap.QueryRouter)
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities stored in the bucket are indexed using value returned by the
// indexer function.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, indexer, unique)
	}
}

// WithIDSequence configures the bucket to use the given sequence when
// allocating keys for models stored without one.
func WithIDSequence(s Sequence) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.idSeq = s
	}
}

// NewModelBucket returns a ModelBucket instance storing models of the same
// type as the given example in a bucket with given name.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, NewSimpleObj(nil, m))
	mb := &modelBucket{
		b:     b,
		idSeq: b.Sequence(SeqID),
		model: reflect.TypeOf(m),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	b     Bucket
	idSeq Sequence
	model reflect.Type
}

func (mb *modelBucket) Register(name string, r tokenswap.QueryRouter) {
	mb.b.Register(name, r)
}

func (mb *modelBucket) One(db tokenswap.ReadOnlyKVStore, key []byte, dest Model) error {
	obj, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if obj == nil || obj.Value() == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	res := obj.Value()

	if !reflect.TypeOf(res).AssignableTo(reflect.TypeOf(dest)) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %T", res, dest)
	}

	reflect.ValueOf(dest).Elem().Set(reflect.ValueOf(res).Elem())
	return nil
}

func (mb *modelBucket) Has(db tokenswap.ReadOnlyKVStore, key []byte) error {
	if key == nil {
		// nil key is a special case that would collide with the
		// prefix query.
		return errors.Wrap(errors.ErrNotFound, "nil key")
	}
	ok, err := mb.b.Has(db, key)
	if err != nil {
		return err
	}
	if !ok {
		return errors.ErrNotFound
	}
	return nil
}

func (mb *modelBucket) ByIndex(db tokenswap.ReadOnlyKVStore, indexName string, value []byte) ([][]byte, []Model, error) {
	objs, err := mb.b.GetIndexed(db, indexName, value)
	if err != nil {
		return nil, nil, err
	}
	keys := make([][]byte, 0, len(objs))
	models := make([]Model, 0, len(objs))
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		keys = append(keys, obj.Key())
		models = append(models, obj.Value().(Model))
	}
	return keys, models, nil
}

func (mb *modelBucket) Put(db tokenswap.KVStore, key []byte, m Model) ([]byte, error) {
	if mt := reflect.TypeOf(m); mt != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.b.Name())
	}
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	if len(key) == 0 {
		var err error
		key, err = mb.idSeq.NextVal(db)
		if err != nil {
			return nil, errors.Wrap(err, "ID sequence")
		}
	}
	obj := NewSimpleObj(key, m)
	if err := mb.b.Save(db, obj); err != nil {
		return nil, errors.Wrap(err, "cannot store in the database")
	}
	return key, nil
}

func (mb *modelBucket) Delete(db tokenswap.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

var _ ModelBucket = (*modelBucket)(nil)

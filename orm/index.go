package orm

import (
	"bytes"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given object. A nil key
// means the object is not indexed.
type Indexer func(Object) ([]byte, error)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
// The value is one primary key (unique),
// Or an array of primary keys (!unique).
type Index struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
	refKey func([]byte) []byte
}

var _ tokenswap.QueryHandler = Index{}

// NewIndex constructs an index
// Indexer calculates the index for an object
// unique enforces a unique constraint on the index
// refKey calculates the absolute dbkey for a ref
func NewIndex(name string, indexer Indexer, unique bool, refKey func([]byte) []byte) Index {
	return Index{
		name:   name,
		id:     append([]byte(compactIdxPrefix), []byte(name+":")...),
		index:  indexer,
		unique: unique,
		refKey: refKey,
	}
}

// Name returns the name of this index.
func (i Index) Name() string {
	return i.name
}

// IndexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i Index) IndexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert
// save == nil means delete
// both == nil is error
// if both != nil and prev.Key() != save.Key() this is an error
//
// Otherwise, it will check indexer(prev) and indexer(save)
// and make sure the key is now stored in the right location
func (i Index) Update(db tokenswap.KVStore, prev Object, save Object) error {
	type s struct{ a, b bool }
	sw := s{prev == nil, save == nil}
	switch sw {
	case s{true, true}:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case s{true, false}:
		key, err := i.index(save)
		if err != nil || key == nil {
			return err
		}
		return i.insert(db, key, save.Key())
	case s{false, true}:
		key, err := i.index(prev)
		if err != nil || key == nil {
			return err
		}
		return i.remove(db, key, prev.Key())
	default:
		return i.move(db, prev, save)
	}
}

// GetAt returns a list of all pk at that index (may be empty), or error
func (i Index) GetAt(db tokenswap.ReadOnlyKVStore, index []byte) ([][]byte, error) {
	val, err := db.Get(i.IndexKey(index))
	if err != nil {
		return nil, err
	}
	if val == nil {
		return nil, nil
	}
	if i.unique {
		return [][]byte{val}, nil
	}
	var data MultiRef
	if err := data.Unmarshal(val); err != nil {
		return nil, errors.Wrap(err, "cannot decode index references")
	}
	return data.Refs, nil
}

// Query handles queries from the QueryRouter. Results are the indexed
// objects, not the index entries.
func (i Index) Query(db tokenswap.ReadOnlyKVStore, mod string, data []byte) ([]tokenswap.Model, error) {
	switch mod {
	case tokenswap.KeyQueryMod:
		refs, err := i.GetAt(db, data)
		if err != nil {
			return nil, err
		}
		return i.loadRefs(db, refs)
	case tokenswap.PrefixQueryMod:
		entries, err := queryPrefix(db, i.IndexKey(data))
		if err != nil {
			return nil, err
		}
		var res []tokenswap.Model
		for _, e := range entries {
			refs, err := i.GetAt(db, e.Key[len(i.id):])
			if err != nil {
				return nil, err
			}
			models, err := i.loadRefs(db, refs)
			if err != nil {
				return nil, err
			}
			res = append(res, models...)
		}
		return res, nil
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown mod: %s", mod)
	}
}

func (i Index) loadRefs(db tokenswap.ReadOnlyKVStore, refs [][]byte) ([]tokenswap.Model, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	res := make([]tokenswap.Model, len(refs))
	for j, ref := range refs {
		key := i.refKey(ref)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		res[j] = tokenswap.Pair(key, value)
	}
	return res, nil
}

func (i Index) move(db tokenswap.KVStore, prev Object, save Object) error {
	if !bytes.Equal(prev.Key(), save.Key()) {
		return errors.Wrap(errors.ErrHuman, "cannot change key during update")
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if oldKey != nil {
		if err := i.remove(db, oldKey, prev.Key()); err != nil {
			return err
		}
	}
	if newKey != nil {
		return i.insert(db, newKey, save.Key())
	}
	return nil
}

func (i Index) remove(db tokenswap.KVStore, index []byte, pk []byte) error {
	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}
	if cur == nil {
		return errors.Wrap(errors.ErrHuman, "cannot remove index from nothing")
	}

	if i.unique {
		if !bytes.Equal(cur, pk) {
			return errors.Wrap(errors.ErrHuman, "cannot remove wrong key")
		}
		return db.Delete(key)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return errors.Wrap(err, "cannot decode index references")
	}
	if err := data.Remove(pk); err != nil {
		return err
	}
	if len(data.Refs) == 0 {
		return db.Delete(key)
	}
	raw, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

func (i Index) insert(db tokenswap.KVStore, index []byte, pk []byte) error {
	key := i.IndexKey(index)
	cur, err := db.Get(key)
	if err != nil {
		return err
	}

	if i.unique {
		if cur != nil {
			return errors.Wrapf(ErrUniqueConstraint, "index %s", i.name)
		}
		return db.Set(key, pk)
	}

	var data MultiRef
	if err := data.Unmarshal(cur); err != nil {
		return errors.Wrap(err, "cannot decode index references")
	}
	if err := data.Add(pk); err != nil {
		return err
	}
	raw, err := data.Marshal()
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/tokenswap/errors"
	amino "github.com/tendermint/go-amino"
)

// MultiRef is a sorted set of references (primary keys) stored under a
// single non unique index key.
type MultiRef struct {
	Refs [][]byte
}

var _ Model = (*MultiRef)(nil)

// NewMultiRef returns a set holding refs. Duplicates are an error.
func NewMultiRef(refs ...[]byte) (*MultiRef, error) {
	var m MultiRef
	for _, r := range refs {
		if err := m.Add(r); err != nil {
			return nil, err
		}
	}
	return &m, nil
}

// Add inserts ref keeping the set sorted. It fails with ErrDuplicate if ref
// is already present.
func (m *MultiRef) Add(ref []byte) error {
	i, found := m.search(ref)
	if found {
		return errors.Wrap(errors.ErrDuplicate, "ref already in set")
	}
	m.Refs = append(m.Refs[:i], append([][]byte{ref}, m.Refs[i:]...)...)
	return nil
}

// Remove deletes ref from the set. It fails with ErrNotFound if ref is not
// present.
func (m *MultiRef) Remove(ref []byte) error {
	i, found := m.search(ref)
	if !found {
		return errors.Wrap(errors.ErrNotFound, "ref not in set")
	}
	m.Refs = append(m.Refs[:i], m.Refs[i+1:]...)
	return nil
}

// search returns the position of ref, or the position where it belongs.
func (m *MultiRef) search(ref []byte) (int, bool) {
	i := sort.Search(len(m.Refs), func(i int) bool {
		return bytes.Compare(m.Refs[i], ref) >= 0
	})
	return i, i < len(m.Refs) && bytes.Equal(m.Refs[i], ref)
}

// Validate requires all references to be present and sorted.
func (m *MultiRef) Validate() error {
	for i, r := range m.Refs {
		if len(r) == 0 {
			return errors.Wrapf(errors.ErrEmpty, "ref %d", i)
		}
		if i > 0 && bytes.Compare(m.Refs[i-1], r) >= 0 {
			return errors.Wrap(errors.ErrState, "refs not sorted")
		}
	}
	return nil
}

// Marshal serializes the set with go-amino.
func (m *MultiRef) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(m)
}

// Unmarshal loads a set serialized with Marshal.
func (m *MultiRef) Unmarshal(raw []byte) error {
	// amino refuses empty input, which is the encoding of an empty set.
	if len(raw) == 0 {
		*m = MultiRef{}
		return nil
	}
	return amino.UnmarshalBinaryBare(raw, m)
}

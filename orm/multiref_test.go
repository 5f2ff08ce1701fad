package orm

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/weavetest/assert"
)

func TestMultiRef(t *testing.T) {
	m, err := NewMultiRef([]byte("b"), []byte("a"), []byte("c"))
	assert.Nil(t, err)
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, m.Refs)
	assert.Nil(t, m.Validate())

	assert.IsErr(t, errors.ErrDuplicate, m.Add([]byte("b")))
	assert.Nil(t, m.Remove([]byte("b")))
	assert.IsErr(t, errors.ErrNotFound, m.Remove([]byte("b")))

	raw, err := m.Marshal()
	assert.Nil(t, err)
	var loaded MultiRef
	assert.Nil(t, loaded.Unmarshal(raw))
	assert.Equal(t, m.Refs, loaded.Refs)

	var empty MultiRef
	assert.Nil(t, empty.Unmarshal(nil))
	assert.Equal(t, 0, len(empty.Refs))
}

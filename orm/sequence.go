package orm

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Sequence is a persistent counter. Every value it returns is greater than
// the previous one, both as a number and when comparing the encoded bytes,
// which makes sequence values good keys for ordered records.
type Sequence struct {
	id []byte
}

// NewSequence returns a counter stored under "_s.<bucket>:<name>".
func NewSequence(bucket, name string) Sequence {
	return Sequence{id: []byte("_s." + bucket + ":" + name)}
}

// NextVal increments the counter and returns the new value encoded.
func (s *Sequence) NextVal(db tokenswap.KVStore) ([]byte, error) {
	val, err := s.NextInt(db)
	if err != nil {
		return nil, err
	}
	return EncodeSequence(val), nil
}

// NextInt increments the counter and returns the new value.
func (s *Sequence) NextInt(db tokenswap.KVStore) (int64, error) {
	val, _, err := s.Latest(db)
	if err != nil {
		return 0, err
	}
	val++
	if err := db.Set(s.id, EncodeSequence(val)); err != nil {
		return 0, errors.Wrap(err, "cannot save sequence")
	}
	return val, nil
}

// Latest returns the last value handed out, without modifying the counter.
// Zero means no value was handed out yet.
func (s *Sequence) Latest(db tokenswap.ReadOnlyKVStore) (int64, []byte, error) {
	raw, err := db.Get(s.id)
	if err != nil {
		return 0, nil, errors.Wrap(err, "cannot load sequence")
	}
	val := DecodeSequence(raw)
	return val, EncodeSequence(val), nil
}

// DecodeSequence reads an 8 byte big endian value. Anything else decodes to
// zero.
func DecodeSequence(raw []byte) int64 {
	if len(raw) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(raw))
}

// EncodeSequence returns val as 8 bytes in big endian order.
func EncodeSequence(val int64) []byte {
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, uint64(val))
	return raw
}

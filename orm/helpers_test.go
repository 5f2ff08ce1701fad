package orm

import (
	"github.com/iov-one/tokenswap/errors"
	amino "github.com/tendermint/go-amino"
)

// note is a minimal model used to exercise buckets.
type note struct {
	Owner []byte
	Text  string
}

var _ Model = (*note)(nil)

func (n *note) Validate() error {
	if n.Text == "" {
		return errors.Field("Text", errors.ErrEmpty, "required")
	}
	return nil
}

func (n *note) Marshal() ([]byte, error) {
	return amino.MarshalBinaryBare(n)
}

func (n *note) Unmarshal(raw []byte) error {
	return amino.UnmarshalBinaryBare(raw, n)
}

func noteOwner(obj Object) ([]byte, error) {
	n, ok := obj.Value().(*note)
	if !ok {
		return nil, errors.WithType(errors.ErrModel, obj.Value())
	}
	if len(n.Owner) == 0 {
		return nil, nil
	}
	return n.Owner, nil
}

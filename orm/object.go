package orm

import (
	"reflect"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Model is implemented by any entity that can be stored in a bucket.
type Model interface {
	tokenswap.Persistent
	Validate() error
}

// Object is a model together with the key it is stored under. The key is
// joined with the bucket prefix to build the database key.
type Object interface {
	Key() []byte
	SetKey([]byte)
	Value() tokenswap.Persistent
	// Validate fails if the object must not be written.
	Validate() error
	Cloneable
}

// Cloneable creates an empty object that data can be loaded into.
type Cloneable interface {
	Clone() Object
}

// SimpleObj is the default Object implementation.
type SimpleObj struct {
	key   []byte
	value Model
}

var _ Object = (*SimpleObj)(nil)

// NewSimpleObj binds a model to a key.
func NewSimpleObj(key []byte, value Model) *SimpleObj {
	return &SimpleObj{key: key, value: value}
}

func (o SimpleObj) Key() []byte { return o.key }

func (o *SimpleObj) SetKey(key []byte) { o.key = key }

func (o SimpleObj) Value() tokenswap.Persistent { return o.value }

// Validate requires both key and value and delegates to the model
// validation.
func (o SimpleObj) Validate() error {
	switch {
	case len(o.key) == 0:
		return errors.Field("Key", errors.ErrEmpty, "missing key")
	case o.value == nil:
		return errors.Field("Value", errors.ErrEmpty, "missing value")
	}
	return o.value.Validate()
}

// Clone returns an object with a copy of the key and a zero value of the
// same model type.
func (o *SimpleObj) Clone() Object {
	empty := reflect.New(reflect.TypeOf(o.value).Elem()).Interface().(Model)
	var key []byte
	if len(o.key) != 0 {
		key = append(key, o.key...)
	}
	return &SimpleObj{key: key, value: empty}
}

package tokenswap

import (
	"reflect"

	"github.com/iov-one/tokenswap/errors"
)

// Msg is message for the ledger to take an action (make a state
// transition). It is just the request, and must be validated by the
// Handlers. All authentication information is in the wrapping Tx.
type Msg interface {
	// Path returns the message path.
	// This is used by the Router to locate the proper Handler.
	// Msg should be created alongside the Handler that corresponds to them.
	//
	// Must be alphanumeric [0-9A-Za-z_\-/]+
	Path() string

	// Validate performs a sanity check of the message shape. It must not
	// access any external state.
	Validate() error
}

// Marshaller is anything that can be represented in binary.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent supports Marshal and Unmarshal
//
// This is separated from Marshal, as this almost always requires
// a pointer, and functions that only need to marshal bytes can
// use the Marshaller interface to access non-pointers.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx represent the data sent from the user to the chain.
// It includes the actual message, along with information needed
// to authenticate the sender (cryptographic signatures),
// and anything else needed to pass through middleware.
//
// Each Application must define their own tx type, which
// embeds all the middlewares that we wish to use.
type Tx interface {
	// GetMsg returns the action we wish to communicate
	GetMsg() (Msg, error)
}

// TxDecoder can parse bytes into a Tx.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath returns the path of the message, or (missing) if no message.
func GetPath(tx Tx) string {
	msg, err := tx.GetMsg()
	if err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg extracts the message represented by given transaction into given
// destination. Before returning message validation method is called.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}

	// Reflection is needed to assign the message to the destination,
	// because the destination must be a pointer to a concrete type.
	msgVal := reflect.ValueOf(msg)
	msgType := msgVal.Type()
	destVal := reflect.ValueOf(destination)
	if destVal.Kind() != reflect.Ptr || destVal.IsNil() {
		return errors.Wrapf(errors.ErrHuman, "destination must be a non nil pointer, got %T", destination)
	}
	destElem := destVal.Elem()
	switch {
	case msgType.AssignableTo(destElem.Type()):
		destElem.Set(msgVal)
	case msgType.Kind() == reflect.Ptr && msgType.Elem().AssignableTo(destElem.Type()):
		destElem.Set(msgVal.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}

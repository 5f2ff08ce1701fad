package errors

import (
	"fmt"
	"strings"
)

// Append clubs together all provided errors. Nil values are ignored.
//
// If no error or only nil values were provided, nil is returned.
//
// If only a single non nil error was provided, it is returned unchanged.
//
// The ABCI code of the returned collection is the code of the first error
// that provides one.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		if isNilErr(e) {
			continue
		}
		if m, ok := e.(multiErr); ok {
			res = append(res, m...)
		} else {
			res = append(res, e)
		}
	}

	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	default:
		return res
	}
}

// multiErr represents a collection of errors. It is always flat.
type multiErr []error

func (errs multiErr) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, "* "+e.Error())
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(errs), strings.Join(msgs, "\n\t"))
}

// Unpack returns all errors that this collection contains.
func (errs multiErr) Unpack() []error {
	return errs
}

// ABCICode returns the code of the first error in the collection that
// provides one.
func (errs multiErr) ABCICode() uint32 {
	for _, e := range errs {
		if c := abciCode(e); c != internalABCICode {
			return c
		}
	}
	return internalABCICode
}

type unpacker interface {
	Unpack() []error
}

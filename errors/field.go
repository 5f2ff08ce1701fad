package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field returns an error bound to the named field of a validated structure,
// for example "AmountA". Nested fields use the dot notation, for example
// "Escrow.PartyB". It returns nil if err is nil.
//
// A stack trace is attached unless err already carries one.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{field: fieldName, desc: description, parent: err}
}

// AppendField adds a field error to errorsOrNil. A nil fieldErrOrNil is
// ignored, which allows validation code to collect results unconditionally.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

// FieldErrors returns all errors bound to given field name. Multi errors are
// searched recursively and wrapped errors are unwrapped until a field error
// is found.
func FieldErrors(err error, fieldName string) []error {
	var found []error
	for !isNilErr(err) {
		switch e := err.(type) {
		case fielder:
			if e.Field() == fieldName {
				return append(found, err)
			}
		case unpacker:
			for _, inner := range e.Unpack() {
				found = append(found, FieldErrors(inner, fieldName)...)
			}
			return found
		}

		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return found
}

type fielder interface {
	// Field returns the name of the field this error was created for.
	Field() string
}

type fieldError struct {
	field  string
	desc   string
	parent error
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error { return e.parent }

func (e *fieldError) Field() string { return e.field }

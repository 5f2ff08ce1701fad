/*
Package assert provides the minimal set of test assertions used across the
swap packages. Each assertion stops the test on failure.
*/
package assert

import (
	"reflect"

	"github.com/iov-one/tokenswap/errors"
)

// Tester is the subset of testing.TB used by the assertions.
type Tester interface {
	Helper()
	Fatal(...interface{})
	Fatalf(string, ...interface{})
	Logf(string, ...interface{})
}

// Nil fails the test if given value is not nil. Typed nil values (for
// example a nil *Escrow stored in an interface) are considered nil as well.
func Nil(t Tester, value interface{}) {
	t.Helper()
	if !isNil(value) {
		// %+v prints the stack trace of errors that carry one.
		t.Fatalf("want a nil value, got %+v", value)
	}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Ptr, reflect.Slice:
		return v.IsNil()
	default:
		return false
	}
}

// Equal fails the test if two values are not deeply equal.
func Equal(t Tester, want, got interface{}) {
	t.Helper()
	if reflect.DeepEqual(want, got) {
		return
	}
	t.Logf("want %T %v", want, want)
	t.Logf(" got %T %v", got, got)
	t.Fatal("values not equal")
}

// Panics fails the test if calling fn does not panic.
func Panics(t Tester, fn func()) {
	t.Helper()
	if !panics(fn) {
		t.Fatal("panic expected")
	}
}

func panics(fn func()) (panicked bool) {
	defer func() {
		if recover() != nil {
			panicked = true
		}
	}()
	fn()
	return false
}

// IsErr fails the test unless got is matching want. Matching is done using
// the Is method of want when available, otherwise errors must be the same
// instance.
func IsErr(t Tester, want, got error) {
	t.Helper()
	if want == got {
		return
	}
	if w, ok := want.(interface{ Is(error) bool }); ok && w.Is(got) {
		return
	}
	t.Fatalf("want %q, got %+v", want, got)
}

// FieldError ensures that err carries exactly one error for given field and
// that this error matches want. Use nil as want to assert that the field has
// no error.
func FieldError(t Tester, err error, fieldName string, want *errors.Error) {
	t.Helper()

	errs := errors.FieldErrors(err, fieldName)
	for i, e := range errs {
		t.Logf("field %q error %d: %s", fieldName, i+1, e)
	}

	if want == nil {
		if len(errs) != 0 {
			t.Fatalf("want no %q field error, got %d", fieldName, len(errs))
		}
		return
	}
	if len(errs) != 1 {
		t.Fatalf("want one %q field error, got %d", fieldName, len(errs))
		return
	}
	if !want.Is(errs[0]) {
		t.Fatalf("want %q field error to be %q, got %q", fieldName, want, errs[0])
	}
}

package assert

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
)

func TestNil(t *testing.T) {
	var nilPtr *struct{}
	var nilErr error

	cases := map[string]struct {
		value    interface{}
		wantFail bool
	}{
		"nil":            {value: nil},
		"nil error":      {value: nilErr},
		"typed nil":      {value: nilPtr},
		"nil slice":      {value: []byte(nil)},
		"zero int":       {value: 0, wantFail: true},
		"empty string":   {value: "", wantFail: true},
		"an error":       {value: errors.ErrEmpty, wantFail: true},
		"an empty slice": {value: []byte{}, wantFail: true},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Nil(mock, tc.value)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	cases := map[string]struct {
		want, got interface{}
		wantFail  bool
	}{
		"same bytes":         {want: []byte("a"), got: []byte("a")},
		"different bytes":    {want: []byte("a"), got: []byte("b"), wantFail: true},
		"different types":    {want: int64(1), got: 1, wantFail: true},
		"nil and empty":      {want: []byte(nil), got: []byte{}, wantFail: true},
		"same struct values": {want: struct{ A int }{1}, got: struct{ A int }{1}},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			Equal(mock, tc.want, tc.got)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestPanics(t *testing.T) {
	mock := &tmock{TB: t}
	Panics(mock, func() { panic("boom") })
	if mock.failcalls != 0 {
		t.Fatal("panic not detected")
	}

	Panics(mock, func() {})
	if mock.failcalls != 1 {
		t.Fatal("missing panic not reported")
	}
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"same error": {
			want: errors.ErrEmpty,
			got:  errors.ErrEmpty,
		},
		"compared to nil": {
			want:     nil,
			got:      errors.ErrEmpty,
			wantFail: true,
		},
		"both nil": {
			want: nil,
			got:  nil,
		},
		"wrapped": {
			want: errors.ErrEmpty,
			got:  errors.Wrap(errors.ErrEmpty, "test"),
		},
		"different error": {
			want:     errors.ErrEmpty,
			got:      errors.ErrState,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.want, tc.got)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	cases := map[string]struct {
		err      error
		name     string
		want     *errors.Error
		wantFail bool
	}{
		"single error found": {
			err:  errors.Field("AmountA", errors.ErrAmount, "must be positive"),
			name: "AmountA",
			want: errors.ErrAmount,
		},
		"nil ensures no error was found": {
			err:  errors.Field("AmountA", errors.ErrAmount, "must be positive"),
			name: "AmountB",
		},
		"nil fails when an error was found": {
			err:      errors.Field("AmountA", errors.ErrAmount, "must be positive"),
			name:     "AmountA",
			wantFail: true,
		},
		"different error type": {
			err:      errors.Field("AmountA", errors.ErrAmount, "must be positive"),
			name:     "AmountA",
			want:     errors.ErrCurrency,
			wantFail: true,
		},
		"missing error": {
			err:      nil,
			name:     "AmountA",
			want:     errors.ErrAmount,
			wantFail: true,
		},
		"two errors for a single field": {
			err: errors.Append(
				errors.Field("AmountA", errors.ErrAmount, "first"),
				errors.Field("AmountA", errors.ErrAmount, "second"),
			),
			name:     "AmountA",
			want:     errors.ErrAmount,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.err, tc.name, tc.want)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

// tmock counts failure calls instead of stopping the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}

/*
Package errors implements error handling shared by all packages of this
repository.

The idea is to reuse as many errors from this package as possible and define
custom package errors when absolutely necessary. Extensions such as x/swap
declare their own root errors using Register(code, description). Each code
must be unique, registering the same code twice panics.

Root errors should never be returned directly. Use ErrXyz.New,
ErrXyz.Newf or Wrap(err, "...") at the point of creation to attach a stack
trace. If you wrap multiple times, only the first wrap records the stack
trace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
for the error

	%s is just the error message
	%+v is the full stack trace

ABCIInfo translates any error into a code and a log message that can be
returned to the client.
*/
package errors

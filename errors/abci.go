package errors

import (
	"fmt"
)

const (
	// SuccessABCICode is the ABCI code of a successful response.
	SuccessABCICode = 0

	// Errors without a registered code are reported as internal. Their
	// message is hidden outside of debug mode.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log of an ABCI response for err. Errors that
// do not carry a code in their chain get code 1 and, unless debug is set, a
// generic log so implementation details do not leak to clients. In debug
// mode the log includes the stack trace.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

type coder interface {
	ABCICode() uint32
}

// abciCode walks the cause chain and returns the first code found.
func abciCode(err error) uint32 {
	for !isNilErr(err) {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
	return SuccessABCICode
}

// ABCIError returns an error that carries the given ABCI code and log. It
// is the inverse of ABCIInfo and lets clients test a remote result with Is.
// Codes that are not registered are reported as internal errors.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if e, ok := usedCodes[code]; ok {
		return Wrap(e, log)
	}
	return Wrapf(usedCodes[internalABCICode], "code %d: %s", code, log)
}

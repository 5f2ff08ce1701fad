package swap

import (
	"github.com/iov-one/tokenswap/errors"
)

// Codes are part of the public interface and must not change.
var (
	ErrAlreadyDeposited     = errors.Register(1000, "already deposited")
	ErrEscrowNotReady       = errors.Register(1001, "escrow not ready")
	ErrInvalidAmount        = errors.Register(1002, "invalid amount")
	ErrUnauthorizedCancel   = errors.Register(1003, "cancel not allowed")
	ErrUnauthorized         = errors.Register(1004, "unauthorized")
	ErrMalformedInstruction = errors.Register(1005, "malformed instruction")
	ErrTransferFailed       = errors.Register(1006, "transfer failed")
)

package tokenswap

import (
	"github.com/iov-one/tokenswap/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

// DeliverResult is the outcome of a successfully delivered transaction.
// Failures are always returned as errors instead.
type DeliverResult struct {
	// Data is the machine readable result. Swap handlers return the ID
	// of the escrow they operated on.
	Data []byte
	// Log is a human readable message.
	Log string
	// Tags are indexed by tendermint and allow searching the transaction
	// history.
	Tags    []common.KVPair
	GasUsed int64
}

// ToABCI converts the result into a DeliverTx response.
func (d DeliverResult) ToABCI() abci.ResponseDeliverTx {
	return abci.ResponseDeliverTx{
		Data:    d.Data,
		Log:     d.Log,
		Tags:    d.Tags,
		GasUsed: d.GasUsed,
	}
}

// CheckResult is the outcome of a successfully checked transaction.
type CheckResult struct {
	Data []byte
	Log  string
	// GasAllocated is the maximum units of work the transaction may
	// perform when delivered.
	GasAllocated int64
}

// ToABCI converts the result into a CheckTx response.
func (c CheckResult) ToABCI() abci.ResponseCheckTx {
	return abci.ResponseCheckTx{
		Data:      c.Data,
		Log:       c.Log,
		GasWanted: c.GasAllocated,
	}
}

// DeliverOrError returns the DeliverTx response for the handler outcome. A non
// nil error always takes precedence over the result.
func DeliverOrError(result *DeliverResult, err error, debug bool) abci.ResponseDeliverTx {
	if err != nil {
		return DeliverTxError(err, debug)
	}
	return result.ToABCI()
}

// CheckOrError returns the CheckTx response for the handler outcome.
func CheckOrError(result *CheckResult, err error, debug bool) abci.ResponseCheckTx {
	if err != nil {
		return CheckTxError(err, debug)
	}
	return result.ToABCI()
}

// DeliverTxError converts an error into a DeliverTx response carrying the
// registered error code. Internal error details are only exposed in debug
// mode.
func DeliverTxError(err error, debug bool) abci.ResponseDeliverTx {
	code, log := txErrorInfo("deliver", err, debug)
	return abci.ResponseDeliverTx{Code: code, Log: log}
}

// CheckTxError converts an error into a CheckTx response. See DeliverTxError.
func CheckTxError(err error, debug bool) abci.ResponseCheckTx {
	code, log := txErrorInfo("check", err, debug)
	return abci.ResponseCheckTx{Code: code, Log: log}
}

func txErrorInfo(phase string, err error, debug bool) (uint32, string) {
	code, log := errors.ABCIInfo(err, debug)
	if code == errors.SuccessABCICode {
		return code, log
	}
	return code, "cannot " + phase + " tx: " + log
}

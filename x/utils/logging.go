package utils

import (
	"time"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Logging writes a log entry for every processed transaction, with the
// message path, the processing time and the result.
//
// Failures are logged as errors. Successful deliveries are logged at info
// level and successful checks at debug level.
type Logging struct{}

var _ tokenswap.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	l := txLogger(ctx, tx, start, err)
	switch {
	case err != nil:
		l.Error("check failed")
	default:
		l.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	l := txLogger(ctx, tx, start, err)
	switch {
	case err != nil:
		l.Error("deliver failed")
	default:
		// An empty log is still worth an entry for the path and duration.
		l.Info(res.Log)
	}
	return res, err
}

func txLogger(ctx tokenswap.Context, tx tokenswap.Tx, start time.Time, err error) log.Logger {
	l := tokenswap.GetLogger(ctx).With(
		"path", tokenswap.GetPath(tx),
		"duration", time.Since(start)/time.Microsecond,
	)
	if err != nil {
		code, _ := errors.ABCIInfo(err, false)
		l = l.With("err", err, "code", code)
	}
	return l
}

package utils

import (
	"strconv"
	"time"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is a decorator that counts processed transactions and measures how
// long their processing took. Results are labeled with the message path, the
// processing phase and the ABCI code of the result.
type Metrics struct {
	txs      *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ tokenswap.Decorator = Metrics{}

// NewMetrics creates a Metrics decorator and registers its collectors with
// given registerer.
func NewMetrics(reg prometheus.Registerer) (Metrics, error) {
	m := Metrics{
		txs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tokenswap",
			Name:      "transactions_total",
			Help:      "Number of processed transactions.",
		}, []string{"path", "phase", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tokenswap",
			Name:      "transaction_duration_seconds",
			Help:      "Time spent processing a transaction.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"path", "phase"}),
	}
	if err := reg.Register(m.txs); err != nil {
		return m, errors.Wrap(errors.ErrHuman, err.Error())
	}
	if err := reg.Register(m.duration); err != nil {
		return m, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return m, nil
}

// Check measures the check phase.
func (m Metrics) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	m.observe(tokenswap.GetPath(tx), "check", start, err)
	return res, err
}

// Deliver measures the deliver phase.
func (m Metrics) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	m.observe(tokenswap.GetPath(tx), "deliver", start, err)
	return res, err
}

func (m Metrics) observe(path, phase string, start time.Time, err error) {
	code, _ := errors.ABCIInfo(err, false)
	m.txs.WithLabelValues(path, phase, strconv.FormatUint(uint64(code), 10)).Inc()
	m.duration.WithLabelValues(path, phase).Observe(time.Since(start).Seconds())
}

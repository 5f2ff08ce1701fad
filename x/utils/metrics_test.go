package utils

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/weavetest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	require.NoError(t, err)

	ctx := context.Background()
	db := store.MemStore()
	tx := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "swap/deposit"}}

	_, err = m.Check(ctx, db, tx, &weavetest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &weavetest.Handler{})
	require.NoError(t, err)
	_, err = m.Deliver(ctx, db, tx, &weavetest.Handler{DeliverErr: errors.ErrUnauthorized})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	families, err := reg.Gather()
	require.NoError(t, err)

	counts := make(map[string]float64)
	for _, f := range families {
		if f.GetName() != "tokenswap_transactions_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			labels := make(map[string]string)
			for _, l := range metric.GetLabel() {
				labels[l.GetName()] = l.GetValue()
			}
			assert.Equal(t, "swap/deposit", labels["path"])
			counts[labels["phase"]+"/"+labels["code"]] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{
		"check/0":   1,
		"deliver/0": 1,
		"deliver/2": 1,
	}, counts)

	// registering twice in the same registry fails
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}

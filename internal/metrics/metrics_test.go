package metrics_test

import (
	"testing"
	"time"

	"github.com/YousifAbuzuhaira/campus-connect/marketplace/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordPurchase(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.RecordPurchase("saga", "success", 20*time.Millisecond)
	m.RecordPurchase("saga", "success", 30*time.Millisecond)
	m.RecordPurchase("transactional", "INSUFFICIENT_FUNDS", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.PurchasesTotal.WithLabelValues("saga", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PurchasesTotal.WithLabelValues("transactional", "INSUFFICIENT_FUNDS")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.PurchaseDuration))
}

func TestMetrics_RecordCompensation(t *testing.T) {
	m := metrics.NewMetrics(prometheus.NewRegistry())

	m.RecordCompensation("listing_update")
	m.RecordCompensationFailure("buyer")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompensationsTotal.WithLabelValues("listing_update")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CompensationFailures.WithLabelValues("buyer")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.CompensationFailures.WithLabelValues("seller")))
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.NewMetrics(prometheus.NewRegistry())
		metrics.NewMetrics(prometheus.NewRegistry())
	})
}


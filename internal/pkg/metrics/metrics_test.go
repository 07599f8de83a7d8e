//go:build unit

package metrics_test

import (
	"testing"

	"learnhub-checkout/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := metrics.NewPipeline(reg)

	p.OrderCreated("gateway")
	p.OrderCreated("gateway")
	p.OrderCreated("demo")
	p.Verification("rejected")
	p.OrdersExpired(3)
	p.OrdersExpired(0)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, f := range families {
		for _, m := range f.GetMetric() {
			values[f.GetName()] += m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, float64(3), values["checkout_orders_created_total"])
	assert.Equal(t, float64(1), values["checkout_verifications_total"])
	assert.Equal(t, float64(3), values["checkout_orders_expired_total"])
}

func TestPipeline_NilIsNoop(t *testing.T) {
	var p *metrics.Pipeline
	assert.NotPanics(t, func() {
		p.OrderCreated("gateway")
		p.Provisioned("granted")
		p.OrdersExpired(1)
	})
}

func TestHTTPMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewHTTPMetrics(reg)

	m.Requests.WithLabelValues("GET", "/api/cart", "200").Inc()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Requests.WithLabelValues("GET", "/api/cart", "200")))
}

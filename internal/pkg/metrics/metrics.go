package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "checkout"

// Pipeline counts checkout outcomes. A nil *Pipeline is a valid no-op.
type Pipeline struct {
	ordersCreated   *prometheus.CounterVec
	paymentOutcomes *prometheus.CounterVec
	verifications   *prometheus.CounterVec
	provisioned     *prometheus.CounterVec
	ordersExpired   prometheus.Counter
	outboxPublished *prometheus.CounterVec
}

func NewPipeline(reg prometheus.Registerer) *Pipeline {
	p := &Pipeline{
		ordersCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_created_total",
			Help:      "Orders persisted by checkout, by payment mode.",
		}, []string{"payment_mode"}),
		paymentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "payment_outcomes_total",
			Help:      "Processor widget outcomes delivered by clients.",
		}, []string{"outcome"}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verifications_total",
			Help:      "Payment verification results.",
		}, []string{"result"}),
		provisioned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrollments_provisioned_total",
			Help:      "Per-course provisioning outcomes.",
		}, []string{"outcome"}),
		ordersExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_expired_total",
			Help:      "Abandoned orders moved to EXPIRED by reconciliation.",
		}),
		outboxPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_published_total",
			Help:      "Outbox events handed to the broker.",
		}, []string{"result"}),
	}
	reg.MustRegister(p.ordersCreated, p.paymentOutcomes, p.verifications, p.provisioned, p.ordersExpired, p.outboxPublished)
	return p
}

func (p *Pipeline) OrderCreated(mode string) {
	if p == nil {
		return
	}
	p.ordersCreated.WithLabelValues(mode).Inc()
}

func (p *Pipeline) PaymentOutcome(outcome string) {
	if p == nil {
		return
	}
	p.paymentOutcomes.WithLabelValues(outcome).Inc()
}

func (p *Pipeline) Verification(result string) {
	if p == nil {
		return
	}
	p.verifications.WithLabelValues(result).Inc()
}

func (p *Pipeline) Provisioned(outcome string) {
	if p == nil {
		return
	}
	p.provisioned.WithLabelValues(outcome).Inc()
}

func (p *Pipeline) OrdersExpired(n int64) {
	if p == nil || n <= 0 {
		return
	}
	p.ordersExpired.Add(float64(n))
}

func (p *Pipeline) OutboxPublished(result string) {
	if p == nil {
		return
	}
	p.outboxPublished.WithLabelValues(result).Inc()
}

type HTTPMetrics struct {
	Requests  *prometheus.CounterVec
	LatencyMS *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"method", "route"})

	reg.MustRegister(requests, latency)
	return &HTTPMetrics{Requests: requests, LatencyMS: latency}
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

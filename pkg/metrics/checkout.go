package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records checkout flow outcomes.
type CheckoutMetrics struct {
	attempts   prometheus.Counter
	settled    prometheus.Counter
	emptyCart  prometheus.Counter
	processing prometheus.Histogram
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout initiations, including empty-cart rejections.",
	})
	settled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_settled_total",
		Help: "Checkouts that completed simulated payment.",
	})
	emptyCart := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_empty_cart_total",
		Help: "Checkout initiations rejected because the cart was empty.",
	})
	processing := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_processing_seconds",
		Help:    "Duration of simulated payment processing in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(attempts, settled, emptyCart, processing)
	return &CheckoutMetrics{
		attempts:   attempts,
		settled:    settled,
		emptyCart:  emptyCart,
		processing: processing,
	}
}

// IncAttempt increments the attempt counter.
func (c *CheckoutMetrics) IncAttempt() {
	if c == nil || c.attempts == nil {
		return
	}
	c.attempts.Inc()
}

// IncSettled increments the settled counter.
func (c *CheckoutMetrics) IncSettled() {
	if c == nil || c.settled == nil {
		return
	}
	c.settled.Inc()
}

// IncEmptyCart increments the empty-cart rejection counter.
func (c *CheckoutMetrics) IncEmptyCart() {
	if c == nil || c.emptyCart == nil {
		return
	}
	c.emptyCart.Inc()
}

// ObserveProcessing records how long simulated payment processing took.
func (c *CheckoutMetrics) ObserveProcessing(duration time.Duration) {
	if c == nil || c.processing == nil {
		return
	}
	c.processing.Observe(duration.Seconds())
}

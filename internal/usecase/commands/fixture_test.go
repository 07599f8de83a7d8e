//go:build unit

package commands_test

import (
	"time"

	"learnhub-checkout/internal/domain/enrollment"
	"learnhub-checkout/internal/domain/payment"
	"learnhub-checkout/internal/pkg/clock"
	"learnhub-checkout/internal/pkg/metrics"
	"learnhub-checkout/internal/usecase/commands"
	"learnhub-checkout/internal/usecase/shared"
	"learnhub-checkout/tests/common/builder"
	"learnhub-checkout/tests/common/memstore"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	testKeyID     = "rzp_test_key"
	testKeySecret = "rzp_test_secret"
	testTerm      = 365 * 24 * time.Hour
)

func gatewaySettings() commands.PaymentSettings {
	return commands.PaymentSettings{KeyID: testKeyID, KeySecret: testKeySecret, Currency: "INR"}
}

func demoSettings() commands.PaymentSettings {
	return commands.PaymentSettings{Currency: "INR", DemoMode: true}
}

// pipeline wires the real verifier and provisioner over an in-memory store.
type pipeline struct {
	store       *memstore.Store
	clock       *clock.MockClock
	metrics     *metrics.Pipeline
	policy      enrollment.ExpiryPolicy
	provisioner commands.ProvisioningCommands
	verifier    commands.VerificationCommands
}

func newPipeline(payments commands.PaymentSettings, cache commands.CartCacheInvalidator) *pipeline {
	p := &pipeline{
		store:   memstore.New(),
		clock:   clock.NewMockClock(time.Now().UTC().Truncate(time.Microsecond)),
		metrics: metrics.NewPipeline(prometheus.NewRegistry()),
		policy:  enrollment.ExpiryPolicy{Term: testTerm},
	}
	p.provisioner = commands.NewProvisioningUseCase(p.store, cache, p.policy, p.metrics, p.clock)
	p.verifier = commands.NewVerificationUseCase(p.store, p.provisioner, payments, p.metrics, p.clock)
	return p
}

// seedCart publishes the builder's courses and puts all of them in the learner's cart.
func (p *pipeline) seedCart(b *builder.OrderBuilder) {
	for _, it := range b.Items {
		p.store.AddCourse(shared.CourseSnapshot{
			ID:          it.CourseID,
			Title:       it.CourseName,
			PriceMinor:  it.Price.Int64(),
			IsPublished: true,
		})
	}
	p.store.AddCartItems(b.CartItems()...)
}

func sign(gatewayOrderID, paymentID string) string {
	signer, err := payment.NewSigner(testKeySecret)
	if err != nil {
		panic(err)
	}
	return signer.Sign(gatewayOrderID, paymentID)
}

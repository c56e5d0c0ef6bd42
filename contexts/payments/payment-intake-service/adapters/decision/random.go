package decision

import (
	"context"
	"math/rand"
	"sync"

	"intake/contexts/payments/payment-intake-service/domain/entities"
)

// RandomProvider is the placeholder decision capability: a uniform random
// verdict with no persisted seed. It stands in for a real authorization
// call and must never ship as the production decision path.
//
// The randomness source is an explicit per-instance dependency rather
// than package-global state, so tests can seed it deterministically.
type RandomProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomProvider(source rand.Source) *RandomProvider {
	return &RandomProvider{rng: rand.New(source)}
}

func (p *RandomProvider) Decide(_ context.Context, _ entities.PaymentRequest) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.Intn(2) == 1, nil
}

// FixedProvider always returns the configured verdict. Test fixture.
type FixedProvider struct {
	Approved bool
	Err      error
}

func (p FixedProvider) Decide(_ context.Context, _ entities.PaymentRequest) (bool, error) {
	return p.Approved, p.Err
}

package feed

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"papertrade/internal/domain"
)

// Random walk parameters: each step perturbs the base by a uniform value in
// [-stepRange, +stepRange] and clamps into [floor, ceil].
var (
	mockStepRange = decimal.NewFromInt(10)
	mockFloor     = decimal.NewFromInt(3000)
	mockCeil      = decimal.NewFromInt(4500)
)

// Mock is the alternate price source: a bounded random walk that stands in
// for the oracle when mock mode is active. Deterministic under a fixed seed.
type Mock struct {
	feed *Feed

	mu   sync.Mutex
	base decimal.Decimal
	rng  *rand.Rand
	now  func() time.Time
}

func NewMock(f *Feed, seed int64) *Mock {
	return &Mock{
		feed: f,
		base: DefaultPrice,
		rng:  rand.New(rand.NewSource(seed)),
		now:  time.Now,
	}
}

// Step advances the walk one tick and publishes the result as the new
// reference price.
func (m *Mock) Step(ctx context.Context) domain.PricePoint {
	m.mu.Lock()
	delta := decimal.NewFromFloat(m.rng.Float64()*2 - 1).Mul(mockStepRange)
	next := m.base.Add(delta)
	if next.LessThan(mockFloor) {
		next = mockFloor
	}
	if next.GreaterThan(mockCeil) {
		next = mockCeil
	}
	m.base = next
	point := domain.PricePoint{Price: next, Timestamp: m.now()}
	m.mu.Unlock()

	m.feed.Publish(ctx, point)
	return point
}

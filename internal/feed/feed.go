package feed

import (
	"context"
	"sync"

	"papertrade/internal/domain"
	"papertrade/internal/port"
)

// Feed owns the reference price shared by the price sources and the matching
// engine. Whichever source is active publishes through it; readers get the
// last published point. The external cache is mirrored best-effort and never
// blocks a publish.
type Feed struct {
	mu      sync.Mutex
	current *domain.PricePoint
	history *History
	cache   port.PriceCache
}

func New(cache port.PriceCache) *Feed {
	return &Feed{
		history: NewHistory(HistoryCapacity),
		cache:   cache,
	}
}

func (f *Feed) Publish(ctx context.Context, p domain.PricePoint) {
	f.mu.Lock()
	copy := p
	f.current = &copy
	f.history.Push(p)
	f.mu.Unlock()

	if f.cache != nil {
		_ = f.cache.SetLatest(ctx, p)
	}
}

// Current returns the last published reference point, if any.
func (f *Feed) Current() (domain.PricePoint, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == nil {
		return domain.PricePoint{}, false
	}
	return *f.current, true
}

func (f *Feed) History() []domain.PricePoint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.history.Points()
}

// LastCached consults the external cache for a previously mirrored point.
// Used as a cold-start fallback only; errors degrade to a miss.
func (f *Feed) LastCached(ctx context.Context) *domain.PricePoint {
	if f.cache == nil {
		return nil
	}
	p, err := f.cache.GetLatest(ctx)
	if err != nil {
		return nil
	}
	return p
}

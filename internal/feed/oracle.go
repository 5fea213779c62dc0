package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"papertrade/internal/domain"
)

var (
	// ErrUpstreamUnavailable marks a failed quote fetch. It never escapes the
	// oracle; callers always receive a usable price from the fallback chain.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamThrottled is the rate-limited flavour of an unavailable
	// upstream, kept separate for logging.
	ErrUpstreamThrottled = fmt.Errorf("%w: rate limited", ErrUpstreamUnavailable)
)

// Resolution tags which branch produced the price returned by Resolve.
type Resolution string

const (
	ResolvedFresh     Resolution = "fresh"     // fetched from upstream this call
	ResolvedCached    Resolution = "cached"    // cache window still open
	ResolvedThrottled Resolution = "throttled" // min request interval suppressed the call
	ResolvedStale     Resolution = "stale"     // fetch failed, older value served
	ResolvedDefault   Resolution = "default"   // nothing known, fixed default
	ResolvedMock      Resolution = "mock"      // mock generator is the active source
)

const (
	DefaultUpstreamURL  = "https://api.coingecko.com/api/v3/simple/price?ids=ethereum&vs_currencies=usd"
	DefaultCacheWindow  = 10 * time.Second
	DefaultMinInterval  = 15 * time.Second
	DefaultFetchTimeout = 10 * time.Second
)

// DefaultPrice is served when no price has ever been observed.
var DefaultPrice = decimal.NewFromInt(3500)

type OracleConfig struct {
	URL          string
	CacheWindow  time.Duration
	MinInterval  time.Duration
	FetchTimeout time.Duration
	DefaultPrice decimal.Decimal
}

// Oracle fetches the spot price from one upstream source and paces its own
// network egress: a short cache window absorbs frequent reads, and a longer
// minimum interval between requests keeps the upstream happy even after the
// cache expires.
type Oracle struct {
	feed         *Feed
	client       *http.Client
	url          string
	cacheWindow  time.Duration
	minInterval  time.Duration
	defaultPrice decimal.Decimal

	mu        sync.Mutex
	cached    *domain.PricePoint
	lastFetch time.Time
	now       func() time.Time
}

func NewOracle(f *Feed, cfg OracleConfig) *Oracle {
	if cfg.URL == "" {
		cfg.URL = DefaultUpstreamURL
	}
	if cfg.CacheWindow <= 0 {
		cfg.CacheWindow = DefaultCacheWindow
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = DefaultMinInterval
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.DefaultPrice.IsZero() {
		cfg.DefaultPrice = DefaultPrice
	}
	return &Oracle{
		feed:         f,
		client:       &http.Client{Timeout: cfg.FetchTimeout},
		url:          cfg.URL,
		cacheWindow:  cfg.CacheWindow,
		minInterval:  cfg.MinInterval,
		defaultPrice: cfg.DefaultPrice,
		now:          time.Now,
	}
}

// Resolve returns a best-effort current price and the branch that produced
// it. It never returns an error: fetch failures degrade to the cached value,
// then the last published reference price, then the mirrored cache, then the
// fixed default.
func (o *Oracle) Resolve(ctx context.Context) (domain.PricePoint, Resolution) {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	if o.cached != nil && now.Sub(o.lastFetch) < o.cacheWindow {
		return *o.cached, ResolvedCached
	}
	if !o.lastFetch.IsZero() && now.Sub(o.lastFetch) < o.minInterval {
		return o.fallback(ctx, ResolvedThrottled)
	}

	price, err := o.fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrUpstreamThrottled) {
			log.Warn().Err(err).Msg("oracle: upstream rate limited")
		} else {
			log.Warn().Err(err).Msg("oracle: price fetch failed")
		}
		return o.fallback(ctx, ResolvedStale)
	}

	point := domain.PricePoint{Price: price, Timestamp: now}
	o.cached = &point
	o.lastFetch = now
	o.feed.Publish(ctx, point)
	log.Debug().Str("price", price.String()).Msg("oracle: fresh quote")
	return point, ResolvedFresh
}

// CurrentPrice is the plain-number contract: Resolve with the tag dropped.
func (o *Oracle) CurrentPrice(ctx context.Context) decimal.Decimal {
	p, _ := o.Resolve(ctx)
	return p.Price
}

func (o *Oracle) fallback(ctx context.Context, tag Resolution) (domain.PricePoint, Resolution) {
	if o.cached != nil {
		return *o.cached, tag
	}
	if cur, ok := o.feed.Current(); ok {
		return cur, tag
	}
	if p := o.feed.LastCached(ctx); p != nil {
		return *p, tag
	}
	return domain.PricePoint{Price: o.defaultPrice, Timestamp: o.now()}, ResolvedDefault
}

// fetch performs one bounded upstream request.
// Quote shape: {"ethereum":{"usd":3512.42}}.
func (o *Oracle) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return decimal.Zero, ErrUpstreamThrottled
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: status %d", ErrUpstreamUnavailable, resp.StatusCode)
	}

	var quote map[string]map[string]decimal.Decimal
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	for _, currencies := range quote {
		for _, price := range currencies {
			if price.IsPositive() {
				return price, nil
			}
		}
	}
	return decimal.Zero, fmt.Errorf("%w: malformed quote", ErrUpstreamUnavailable)
}

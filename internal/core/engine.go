package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"papertrade/internal/domain"
	"papertrade/internal/feed"
)

// Engine owns the sandbox state: wallet, order book and the active price
// source. Every state-mutating operation (submit, cancel, tick, mock switch)
// is serialized under one mutex; the oracle's network fetch runs outside it
// so wallet and order operations never wait on the upstream.
type Engine struct {
	mu       sync.Mutex
	wallet   *Wallet
	book     *Book
	feed     *feed.Feed
	oracle   *feed.Oracle
	mock     *feed.Mock
	mockMode bool
	now      func() time.Time
}

func NewEngine(w *Wallet, f *feed.Feed, o *feed.Oracle, m *feed.Mock) *Engine {
	return &Engine{
		wallet: w,
		book:   NewBook(),
		feed:   f,
		oracle: o,
		mock:   m,
		now:    time.Now,
	}
}

// SubmitOrder admits a new PENDING limit order. The solvency check here is a
// point-in-time admission gate only: admitted funds are not reserved, so a
// later order can spend them before this one fills (see Tick).
func (e *Engine) SubmitOrder(ctx context.Context, side domain.Side, limitPrice, amount decimal.Decimal) (*domain.Order, error) {
	if side != domain.Buy && side != domain.Sell {
		return nil, fmt.Errorf("%w: side %q", ErrInvalidInput, side)
	}
	if !limitPrice.IsPositive() {
		return nil, fmt.Errorf("%w: price must be > 0", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be > 0", ErrInvalidInput)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	switch side {
	case domain.Buy:
		cost := limitPrice.Mul(amount)
		if e.wallet.Fiat().LessThan(cost) {
			return nil, fmt.Errorf("%w: need %s fiat, have %s", ErrInsufficientFunds, cost, e.wallet.Fiat())
		}
	case domain.Sell:
		if e.wallet.Asset().LessThan(amount) {
			return nil, fmt.Errorf("%w: need %s asset, have %s", ErrInsufficientFunds, amount, e.wallet.Asset())
		}
	}

	o := &domain.Order{
		ID:         uuid.NewString(),
		Side:       side,
		LimitPrice: limitPrice,
		Amount:     amount,
		Status:     domain.Pending,
		CreatedAt:  e.now(),
	}
	e.book.Append(o)

	log.Info().
		Str("order", o.ID).
		Str("side", string(side)).
		Str("price", limitPrice.String()).
		Str("amount", amount.String()).
		Msg("order submitted")

	copy := *o
	return &copy, nil
}

// CancelOrder moves a PENDING order to CANCELLED. Terminal orders are never
// touched again.
func (e *Engine) CancelOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o, ok := e.book.Get(orderID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, orderID)
	}
	if o.Status != domain.Pending {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidState, orderID, o.Status)
	}
	o.Status = domain.Cancelled

	log.Info().Str("order", o.ID).Msg("order cancelled")

	copy := *o
	return &copy, nil
}

// Tick evaluates every PENDING order against the current reference price, in
// submission order. An order whose price condition is met but whose required
// balance is missing stays PENDING and is retried next tick; starvation is
// policy here, not an error.
func (e *Engine) Tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	ref, ok := e.feed.Current()
	if !ok {
		return
	}

	for _, o := range e.book.All() {
		if o.Status != domain.Pending {
			continue
		}
		switch o.Side {
		case domain.Buy:
			if ref.Price.GreaterThan(o.LimitPrice) {
				continue
			}
			cost := o.LimitPrice.Mul(o.Amount)
			if err := e.wallet.DebitFiat(cost); err != nil {
				continue
			}
			e.wallet.CreditAsset(o.Amount)
			e.fill(o, ref.Price)
		case domain.Sell:
			if ref.Price.LessThan(o.LimitPrice) {
				continue
			}
			if err := e.wallet.DebitAsset(o.Amount); err != nil {
				continue
			}
			e.wallet.CreditFiat(o.LimitPrice.Mul(o.Amount))
			e.fill(o, ref.Price)
		}
	}
}

// fill records the terminal transition. filledPrice is the observed reference
// price at fill time, not the limit.
func (e *Engine) fill(o *domain.Order, refPrice decimal.Decimal) {
	ts := e.now()
	price := refPrice
	o.Status = domain.Filled
	o.FilledAt = &ts
	o.FilledPrice = &price

	log.Info().
		Str("order", o.ID).
		Str("side", string(o.Side)).
		Str("filled_price", price.String()).
		Str("amount", o.Amount.String()).
		Msg("order filled")
}

// CurrentPrice resolves the reference price for readers. In mock mode the
// oracle is bypassed entirely; otherwise the read may trigger a paced
// upstream fetch, outside the engine mutex.
func (e *Engine) CurrentPrice(ctx context.Context) (domain.PricePoint, feed.Resolution) {
	e.mu.Lock()
	mock := e.mockMode
	e.mu.Unlock()

	if mock {
		if cur, ok := e.feed.Current(); ok {
			return cur, feed.ResolvedMock
		}
		return e.mock.Step(ctx), feed.ResolvedMock
	}
	return e.oracle.Resolve(ctx)
}

// EnableMockMode is a one-way switch to the mock source. The first call
// steps the generator once so a reference price exists immediately; repeat
// calls just report the current one.
func (e *Engine) EnableMockMode(ctx context.Context) domain.PricePoint {
	e.mu.Lock()
	already := e.mockMode
	e.mockMode = true
	e.mu.Unlock()

	if !already {
		log.Info().Msg("mock price mode enabled")
		return e.mock.Step(ctx)
	}
	if cur, ok := e.feed.Current(); ok {
		return cur
	}
	return e.mock.Step(ctx)
}

func (e *Engine) MockMode() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mockMode
}

func (e *Engine) Balances() domain.Balances {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.wallet.Balances()
}

// Orders returns copies of every order, in submission order.
func (e *Engine) Orders() []domain.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]domain.Order, 0, e.book.Len())
	for _, o := range e.book.All() {
		out = append(out, *o)
	}
	return out
}

// PriceHistory returns the bounded chronological observation window.
func (e *Engine) PriceHistory() []domain.PricePoint {
	return e.feed.History()
}

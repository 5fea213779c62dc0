package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"papertrade/internal/core"
	"papertrade/internal/feed"
)

const (
	DefaultPriceRefresh = 20 * time.Second
	DefaultMatchEvery   = 5 * time.Second
	DefaultMockEvery    = 3 * time.Second
)

// Scheduler drives the three periodic activities: oracle refresh, order
// matching and the mock walk. Exactly one price source runs per cycle,
// selected by the engine's mock flag. Tests bypass the scheduler and call
// the engine directly.
type Scheduler struct {
	engine *core.Engine
	oracle *feed.Oracle
	mock   *feed.Mock

	refreshEvery time.Duration
	matchEvery   time.Duration
	mockEvery    time.Duration
}

func New(e *core.Engine, o *feed.Oracle, m *feed.Mock, refreshEvery, matchEvery, mockEvery time.Duration) *Scheduler {
	if refreshEvery <= 0 {
		refreshEvery = DefaultPriceRefresh
	}
	if matchEvery <= 0 {
		matchEvery = DefaultMatchEvery
	}
	if mockEvery <= 0 {
		mockEvery = DefaultMockEvery
	}
	return &Scheduler{
		engine:       e,
		oracle:       o,
		mock:         m,
		refreshEvery: refreshEvery,
		matchEvery:   matchEvery,
		mockEvery:    mockEvery,
	}
}

// Run blocks until ctx is cancelled, then stops all cycles.
func (s *Scheduler) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	t.Go(s.loop(t, ctx, s.refreshEvery, s.refreshPrice))
	t.Go(s.loop(t, ctx, s.matchEvery, s.match))
	t.Go(s.loop(t, ctx, s.mockEvery, s.stepMock))

	log.Info().Msg("scheduler running")
	return t.Wait()
}

func (s *Scheduler) loop(t *tomb.Tomb, ctx context.Context, every time.Duration, task func(context.Context)) func() error {
	return func() error {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-t.Dying():
				return nil
			case <-ticker.C:
				task(ctx)
			}
		}
	}
}

func (s *Scheduler) refreshPrice(ctx context.Context) {
	if s.engine.MockMode() {
		return
	}
	point, res := s.oracle.Resolve(ctx)
	log.Debug().
		Str("price", point.Price.String()).
		Str("resolution", string(res)).
		Msg("price refresh")
}

func (s *Scheduler) match(ctx context.Context) {
	s.engine.Tick(ctx)
}

func (s *Scheduler) stepMock(ctx context.Context) {
	if !s.engine.MockMode() {
		return
	}
	s.mock.Step(ctx)
}

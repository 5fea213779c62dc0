package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"papertrade/internal/adapter/cache"
	"papertrade/internal/adapter/in_memory"
	httpapi "papertrade/internal/api/http"
	"papertrade/internal/config"
	"papertrade/internal/core"
	"papertrade/internal/feed"
	"papertrade/internal/port"
	"papertrade/internal/sched"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	cfg := config.LoadFromEnv("")

	var priceCache port.PriceCache
	if cfg.RedisAddr != "" {
		priceCache = cache.NewRedisCache(cfg.RedisAddr, "", 0, cfg.Oracle.CacheWindow)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis price cache")
	} else {
		priceCache = in_memory.NewCache()
	}

	priceFeed := feed.New(priceCache)
	oracle := feed.NewOracle(priceFeed, feed.OracleConfig{
		URL:          cfg.Oracle.URL,
		CacheWindow:  cfg.Oracle.CacheWindow,
		MinInterval:  cfg.Oracle.MinInterval,
		FetchTimeout: cfg.Oracle.FetchTimeout,
	})
	mock := feed.NewMock(priceFeed, cfg.MockSeed)

	wallet := core.NewWallet(cfg.Wallet.SeedFiat, cfg.Wallet.SeedAsset)
	engine := core.NewEngine(wallet, priceFeed, oracle, mock)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.MockMode {
		engine.EnableMockMode(ctx)
	}

	scheduler := sched.New(engine, oracle, mock,
		cfg.Sched.PriceRefresh, cfg.Sched.MatchEvery, cfg.Sched.MockEvery)
	go func() {
		if err := scheduler.Run(ctx); err != nil {
			log.Error().Err(err).Msg("scheduler stopped")
		}
	}()

	server := httpapi.NewHTTPServer(engine)
	log.Info().Str("addr", cfg.Server.Addr).Msg("starting HTTP server")
	if err := server.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("HTTP server failed")
	}
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"papertrade/internal/feed"
	"papertrade/internal/sched"
)

type Server struct {
	Addr string
}

type Wallet struct {
	SeedFiat  decimal.Decimal
	SeedAsset decimal.Decimal
}

type Oracle struct {
	URL          string
	CacheWindow  time.Duration
	MinInterval  time.Duration
	FetchTimeout time.Duration
}

type Sched struct {
	PriceRefresh time.Duration
	MatchEvery   time.Duration
	MockEvery    time.Duration
}

type Config struct {
	Server Server
	Wallet Wallet
	Oracle Oracle
	Sched  Sched

	// RedisAddr enables the external price cache when non-empty.
	RedisAddr string
	MockMode  bool
	MockSeed  int64
}

func Default() Config {
	return Config{
		Server: Server{Addr: ":8080"},
		Wallet: Wallet{
			SeedFiat:  decimal.NewFromInt(10000),
			SeedAsset: decimal.NewFromInt(5000),
		},
		Oracle: Oracle{
			URL:          feed.DefaultUpstreamURL,
			CacheWindow:  feed.DefaultCacheWindow,
			MinInterval:  feed.DefaultMinInterval,
			FetchTimeout: feed.DefaultFetchTimeout,
		},
		Sched: Sched{
			PriceRefresh: sched.DefaultPriceRefresh,
			MatchEvery:   sched.DefaultMatchEvery,
			MockEvery:    sched.DefaultMockEvery,
		},
		MockSeed: time.Now().UnixNano(),
	}
}

// LoadFromEnv loads configuration from a .env file (if present) and
// environment variables. Priority: ENV > .env > defaults.
func LoadFromEnv(envPath string) Config {
	cfg := Default()

	if envPath != "" {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.Server.Addr = addr
	}
	if v := os.Getenv("SEED_FIAT"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			cfg.Wallet.SeedFiat = d
		}
	}
	if v := os.Getenv("SEED_ASSET"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil && !d.IsNegative() {
			cfg.Wallet.SeedAsset = d
		}
	}
	if url := os.Getenv("ORACLE_URL"); url != "" {
		cfg.Oracle.URL = url
	}
	cfg.Oracle.CacheWindow = durationMS("ORACLE_CACHE_MS", cfg.Oracle.CacheWindow)
	cfg.Oracle.MinInterval = durationMS("ORACLE_MIN_INTERVAL_MS", cfg.Oracle.MinInterval)
	cfg.Oracle.FetchTimeout = durationMS("ORACLE_TIMEOUT_MS", cfg.Oracle.FetchTimeout)
	cfg.Sched.PriceRefresh = durationMS("PRICE_REFRESH_MS", cfg.Sched.PriceRefresh)
	cfg.Sched.MatchEvery = durationMS("MATCH_INTERVAL_MS", cfg.Sched.MatchEvery)
	cfg.Sched.MockEvery = durationMS("MOCK_INTERVAL_MS", cfg.Sched.MockEvery)

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	if v := os.Getenv("MOCK_MODE"); v != "" {
		cfg.MockMode = v == "true" || v == "1"
	}
	if v := os.Getenv("MOCK_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MockSeed = seed
		}
	}

	return cfg
}

func durationMS(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	ms, err := strconv.Atoi(v)
	if err != nil || ms <= 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}

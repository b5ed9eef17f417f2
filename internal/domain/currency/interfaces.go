package currency

import (
	"context"
	"time"
)

// RateClient talks to the upstream exchange-rate API.
type RateClient interface {
	Live(ctx context.Context, source string, symbols []string) (Quote, error)
	Convert(ctx context.Context, from, to string, amount float64) (float64, error)
	List(ctx context.Context) (map[string]string, error)
	Timeframe(ctx context.Context, start, end, source string, symbols []string) (Timeframe, error)
}

// Store caches serialized upstream responses.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// HistoryRepository archives daily rates that have been fetched once.
type HistoryRepository interface {
	SaveDailyRates(ctx context.Context, base, target string, points []RatePoint) error
	ListDailyRates(ctx context.Context, base, target, start, end string) ([]RatePoint, error)
}

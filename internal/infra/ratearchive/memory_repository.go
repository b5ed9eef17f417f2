package ratearchive

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/exchanger/internal/domain/currency"
)

// MemoryRepository keeps archived daily rates in process memory.
type MemoryRepository struct {
	mu    sync.RWMutex
	pairs map[string]map[string]float64
}

// NewMemoryRepository constructs an empty archive.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{pairs: make(map[string]map[string]float64)}
}

// SaveDailyRates upserts one rate per day.
func (r *MemoryRepository) SaveDailyRates(_ context.Context, base, target string, points []currency.RatePoint) error {
	if len(points) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(base, target)
	days, ok := r.pairs[key]
	if !ok {
		days = make(map[string]float64, len(points))
		r.pairs[key] = days
	}
	for _, p := range points {
		days[p.Date] = p.Rate
	}
	return nil
}

// ListDailyRates returns archived points within [start, end] ordered by date.
func (r *MemoryRepository) ListDailyRates(_ context.Context, base, target, start, end string) ([]currency.RatePoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	days := r.pairs[pairKey(base, target)]
	out := make([]currency.RatePoint, 0, len(days))
	for date, rate := range days {
		if date < start || date > end {
			continue
		}
		out = append(out, currency.RatePoint{Date: date, Rate: rate})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})
	return out, nil
}

func pairKey(base, target string) string {
	return base + "/" + target
}

var _ currency.HistoryRepository = (*MemoryRepository)(nil)

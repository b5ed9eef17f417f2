package ratearchive

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/exchanger/internal/domain/currency"
)

func TestMemoryRepositoryUpsertAndRange(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	require.NoError(t, repo.SaveDailyRates(ctx, "USD", "EUR", []currency.RatePoint{
		{Date: "2024-01-03", Rate: 0.93},
		{Date: "2024-01-01", Rate: 0.91},
	}))
	require.NoError(t, repo.SaveDailyRates(ctx, "USD", "EUR", []currency.RatePoint{
		{Date: "2024-01-01", Rate: 0.90},
		{Date: "2024-01-02", Rate: 0.92},
	}))
	require.NoError(t, repo.SaveDailyRates(ctx, "USD", "GBP", []currency.RatePoint{
		{Date: "2024-01-02", Rate: 0.79},
	}))

	points, err := repo.ListDailyRates(ctx, "USD", "EUR", "2024-01-01", "2024-01-02")
	require.NoError(t, err)
	require.Equal(t, []currency.RatePoint{
		{Date: "2024-01-01", Rate: 0.90},
		{Date: "2024-01-02", Rate: 0.92},
	}, points)

	points, err = repo.ListDailyRates(ctx, "EUR", "USD", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	require.Empty(t, points)
}

package ratearchive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/exchanger/internal/domain/currency"
	"github.com/yanqian/exchanger/pkg/util"
)

// Schema creates the archive table when missing.
const Schema = `
CREATE TABLE IF NOT EXISTS daily_rates (
	base   CHAR(3)          NOT NULL,
	target CHAR(3)          NOT NULL,
	day    DATE             NOT NULL,
	rate   DOUBLE PRECISION NOT NULL,
	PRIMARY KEY (base, target, day)
)`

// PostgresRepository implements currency.HistoryRepository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the daily_rates table.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, Schema)
	return err
}

// SaveDailyRates upserts the points in a single batch.
func (r *PostgresRepository) SaveDailyRates(ctx context.Context, base, target string, points []currency.RatePoint) error {
	if len(points) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, p := range points {
		day, err := util.ParseDate(p.Date)
		if err != nil {
			return fmt.Errorf("archive point %q: %w", p.Date, err)
		}
		batch.Queue(`
			INSERT INTO daily_rates (base, target, day, rate)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (base, target, day) DO UPDATE SET rate = EXCLUDED.rate
		`, base, target, day, p.Rate)
	}
	return r.pool.SendBatch(ctx, batch).Close()
}

// ListDailyRates returns archived points within [start, end] ordered by day.
func (r *PostgresRepository) ListDailyRates(ctx context.Context, base, target, start, end string) ([]currency.RatePoint, error) {
	from, err := util.ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := util.ParseDate(end)
	if err != nil {
		return nil, err
	}
	rows, err := r.pool.Query(ctx, `
		SELECT day, rate
		FROM daily_rates
		WHERE base = $1 AND target = $2 AND day BETWEEN $3 AND $4
		ORDER BY day
	`, base, target, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]currency.RatePoint, 0)
	for rows.Next() {
		var (
			day  time.Time
			rate float64
		)
		if err := rows.Scan(&day, &rate); err != nil {
			return nil, err
		}
		points = append(points, currency.RatePoint{Date: day.Format(util.DateLayout), Rate: rate})
	}
	return points, rows.Err()
}

var _ currency.HistoryRepository = (*PostgresRepository)(nil)

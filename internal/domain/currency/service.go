package currency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/yanqian/exchanger/pkg/errors"
	"github.com/yanqian/exchanger/pkg/util"
)

const (
	sourceAPI     = "api"
	sourceCache   = "cache"
	sourceArchive = "archive"
)

// Service proxies the upstream exchange-rate API.
type Service interface {
	Rates(ctx context.Context, req RatesRequest) (RatesResponse, error)
	Convert(ctx context.Context, req ConvertRequest) (ConvertResponse, error)
	Currencies(ctx context.Context) (map[string]string, error)
	Historical(ctx context.Context, req HistoricalRequest) (HistoricalResponse, error)
	CheckUpstream(ctx context.Context) UpstreamStatus
}

type service struct {
	cfg     Config
	client  RateClient
	store   Store
	archive HistoryRepository
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires up the currency domain.
func NewService(cfg Config, client RateClient, store Store, archive HistoryRepository, logger *slog.Logger) Service {
	return &service{
		cfg:     cfg,
		client:  client,
		store:   store,
		archive: archive,
		logger:  logger.With("component", "currency.service"),
		now:     util.NowUTC,
	}
}

func (s *service) Rates(ctx context.Context, req RatesRequest) (RatesResponse, error) {
	base := strings.TrimSpace(req.Base)
	if base == "" {
		base = s.cfg.DefaultBase
	}
	base, err := normalizeCode(base)
	if err != nil {
		return RatesResponse{}, apperrors.Wrap(CodeInvalidInput, "base must be a 3-letter currency code", err)
	}
	symbols, err := parseSymbols(req.Symbols)
	if err != nil {
		return RatesResponse{}, apperrors.Wrap(CodeInvalidInput, "symbols must be 3-letter currency codes", err)
	}

	key := "rates:" + base
	if len(symbols) > 0 {
		key += ":" + strings.Join(symbols, ",")
	}
	var cached RatesResponse
	if s.loadCached(ctx, key, &cached) {
		return cached, nil
	}

	quote, err := s.client.Live(ctx, base, symbols)
	if err != nil {
		return RatesResponse{}, s.upstreamError(err, CodeUpstreamError, "failed to fetch latest rates")
	}
	ts := quote.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	resp := RatesResponse{
		Base:      base,
		Timestamp: ts.Unix(),
		Rates:     quote.Rates,
	}
	s.storeCached(ctx, key, resp, s.cfg.RatesTTL)
	s.logger.Info("latest rates fetched", "base", base, "rates", len(resp.Rates))
	return resp, nil
}

func (s *service) Convert(ctx context.Context, req ConvertRequest) (ConvertResponse, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return ConvertResponse{}, apperrors.Wrap(CodeInvalidInput, "amount must be a positive number", nil)
	}
	from, err := normalizeCode(req.From)
	if err != nil {
		return ConvertResponse{}, apperrors.Wrap(CodeInvalidInput, "from must be a 3-letter currency code", err)
	}
	to, err := normalizeCode(req.To)
	if err != nil {
		return ConvertResponse{}, apperrors.Wrap(CodeInvalidInput, "to must be a 3-letter currency code", err)
	}

	result, err := s.client.Convert(ctx, from, to, amount)
	if err != nil {
		return ConvertResponse{}, s.upstreamError(err, CodeUpstreamUnavailable, "failed to convert currency")
	}
	s.logger.Info("currency converted", "from", from, "to", to, "amount", amount)
	return ConvertResponse{
		From:   from,
		To:     to,
		Amount: amount,
		Result: result,
		Rate:   result / amount,
	}, nil
}

func (s *service) Currencies(ctx context.Context) (map[string]string, error) {
	const key = "currencies"
	var cached map[string]string
	if s.loadCached(ctx, key, &cached) {
		return cached, nil
	}
	list, err := s.client.List(ctx)
	if err != nil {
		return nil, s.upstreamError(err, CodeUpstreamError, "failed to fetch supported currencies")
	}
	s.storeCached(ctx, key, list, s.cfg.RatesTTL)
	return list, nil
}

func (s *service) Historical(ctx context.Context, req HistoricalRequest) (HistoricalResponse, error) {
	start, end, err := s.resolveRange(req.StartDate, req.EndDate)
	if err != nil {
		return HistoricalResponse{}, err
	}
	base, err := normalizeCode(req.Base)
	if err != nil {
		return HistoricalResponse{}, apperrors.Wrap(CodeInvalidInput, "base must be a 3-letter currency code", err)
	}
	target, err := normalizeCode(req.Target)
	if err != nil {
		return HistoricalResponse{}, apperrors.Wrap(CodeInvalidInput, "target must be a 3-letter currency code", err)
	}
	startDate, endDate := start.Format(util.DateLayout), end.Format(util.DateLayout)

	key := fmt.Sprintf("historical:%s:%s:%s:%s", base, target, startDate, endDate)
	var cached HistoricalResponse
	if s.loadCached(ctx, key, &cached) {
		cached.Source = sourceCache
		return cached, nil
	}

	frame, err := s.client.Timeframe(ctx, startDate, endDate, base, []string{target})
	if err != nil {
		if archived, ok := s.fromArchive(ctx, base, target, start, end); ok {
			s.logger.Warn("historical rates served from archive", "base", base, "target", target, "error", err)
			return archived, nil
		}
		return HistoricalResponse{}, s.upstreamError(err, CodeUpstreamError, "failed to fetch historical rates")
	}

	resp := HistoricalResponse{
		Base:   base,
		Target: target,
		Rates:  pickSeries(frame, target),
		Source: sourceAPI,
	}
	if err := s.archive.SaveDailyRates(ctx, base, target, resp.Rates); err != nil {
		s.logger.Error("archive historical rates failed", "base", base, "target", target, "error", err)
	}
	s.storeCached(ctx, key, resp, s.cfg.HistoricalTTL)
	return resp, nil
}

func (s *service) CheckUpstream(ctx context.Context) UpstreamStatus {
	result, err := s.client.Convert(ctx, "USD", "EUR", 1)
	if err != nil {
		s.logger.Warn("upstream check failed", "error", err)
		return UpstreamStatus{OK: false, Message: "API key test failed", Error: err.Error()}
	}
	return UpstreamStatus{OK: true, Message: "API key is working", Result: result}
}

func (s *service) resolveRange(rawStart, rawEnd string) (time.Time, time.Time, error) {
	start, err := util.ParseDate(rawStart)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Wrap(CodeInvalidInput, "startDate must be formatted as YYYY-MM-DD", err)
	}
	end, err := util.ParseDate(rawEnd)
	if err != nil {
		return time.Time{}, time.Time{}, apperrors.Wrap(CodeInvalidInput, "endDate must be formatted as YYYY-MM-DD", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.Wrap(CodeInvalidInput, "endDate must not be before startDate", nil)
	}
	if s.cfg.MaxHistoricalDays > 0 && util.DaysInclusive(start, end)-1 > s.cfg.MaxHistoricalDays {
		return time.Time{}, time.Time{}, apperrors.Wrap(CodeInvalidInput, fmt.Sprintf("date range cannot exceed %d days", s.cfg.MaxHistoricalDays), nil)
	}
	return start, end, nil
}

func (s *service) fromArchive(ctx context.Context, base, target string, start, end time.Time) (HistoricalResponse, bool) {
	points, err := s.archive.ListDailyRates(ctx, base, target, start.Format(util.DateLayout), end.Format(util.DateLayout))
	if err != nil {
		s.logger.Error("archive lookup failed", "base", base, "target", target, "error", err)
		return HistoricalResponse{}, false
	}
	if len(points) < util.DaysInclusive(start, end) {
		return HistoricalResponse{}, false
	}
	return HistoricalResponse{
		Base:   base,
		Target: target,
		Rates:  points,
		Source: sourceArchive,
	}, true
}

func (s *service) loadCached(ctx context.Context, key string, dst any) bool {
	payload, ok, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		s.logger.Warn("cache entry corrupt, dropping", "key", key, "error", err)
		if err := s.store.Delete(ctx, key); err != nil {
			s.logger.Warn("cache delete failed", "key", key, "error", err)
		}
		return false
	}
	return true
}

func (s *service) storeCached(ctx context.Context, key string, value any, ttl time.Duration) {
	payload, err := json.Marshal(value)
	if err != nil {
		s.logger.Error("cache encode failed", "key", key, "error", err)
		return
	}
	if err := s.store.Set(ctx, key, payload, ttl); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (s *service) upstreamError(err error, code, message string) error {
	if errors.Is(err, ErrMissingAPIKey) {
		return apperrors.Wrap(CodeConfigError, "exchange rate api key is not configured", err)
	}
	return apperrors.Wrap(code, message, err)
}

func pickSeries(frame Timeframe, target string) []RatePoint {
	dates := make([]string, 0, len(frame.Days))
	for date := range frame.Days {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]RatePoint, 0, len(dates))
	for _, date := range dates {
		rate, ok := frame.Days[date][target]
		if !ok {
			continue
		}
		points = append(points, RatePoint{Date: date, Rate: rate})
	}
	return points
}

func normalizeCode(raw string) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return "", fmt.Errorf("invalid currency code %q", raw)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("invalid currency code %q", raw)
		}
	}
	return code, nil
}

func parseSymbols(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		code, err := normalizeCode(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	sort.Strings(out)
	return out, nil
}

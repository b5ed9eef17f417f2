package currency

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/exchanger/pkg/errors"
)

func TestServiceRatesCachesUpstreamResponse(t *testing.T) {
	client := &stubRateClient{
		quote: Quote{
			Source:    "USD",
			Timestamp: time.Unix(1700000000, 0),
			Rates:     map[string]float64{"EUR": 0.92, "VND": 24500},
		},
	}
	svc, store := newServiceUnderTest(client, newStubArchive())

	resp, err := svc.Rates(context.Background(), RatesRequest{})
	require.NoError(t, err)
	require.Equal(t, "USD", resp.Base)
	require.Equal(t, int64(1700000000), resp.Timestamp)
	require.Equal(t, 0.92, resp.Rates["EUR"])
	require.Equal(t, 1, client.liveCalls)
	require.Contains(t, store.ttls, "rates:USD")
	require.Equal(t, time.Hour, store.ttls["rates:USD"])

	again, err := svc.Rates(context.Background(), RatesRequest{Base: "usd"})
	require.NoError(t, err)
	require.Equal(t, resp, again)
	require.Equal(t, 1, client.liveCalls)
}

func TestServiceRatesSymbolsAreNormalized(t *testing.T) {
	client := &stubRateClient{quote: Quote{Rates: map[string]float64{"EUR": 0.9}}}
	svc, store := newServiceUnderTest(client, newStubArchive())

	_, err := svc.Rates(context.Background(), RatesRequest{Base: "usd", Symbols: "vnd, eur,EUR"})
	require.NoError(t, err)
	require.Equal(t, []string{"EUR", "VND"}, client.lastSymbols)
	require.Contains(t, store.ttls, "rates:USD:EUR,VND")
}

func TestServiceRatesInvalidBase(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{}, newStubArchive())

	_, err := svc.Rates(context.Background(), RatesRequest{Base: "US1"})
	require.True(t, apperrors.IsCode(err, CodeInvalidInput))
}

func TestServiceRatesUpstreamFailure(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{err: errors.New("boom")}, newStubArchive())

	_, err := svc.Rates(context.Background(), RatesRequest{Base: "EUR"})
	require.True(t, apperrors.IsCode(err, CodeUpstreamError))
}

func TestServiceMissingAPIKeyIsConfigError(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{err: ErrMissingAPIKey}, newStubArchive())

	_, err := svc.Currencies(context.Background())
	require.True(t, apperrors.IsCode(err, CodeConfigError))
}

func TestServiceConvert(t *testing.T) {
	client := &stubRateClient{convertResult: 92}
	svc, _ := newServiceUnderTest(client, newStubArchive())

	resp, err := svc.Convert(context.Background(), ConvertRequest{Amount: "100", From: "usd", To: "eur"})
	require.NoError(t, err)
	require.Equal(t, ConvertResponse{From: "USD", To: "EUR", Amount: 100, Result: 92, Rate: 0.92}, resp)
}

func TestServiceConvertRejectsBadInput(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{}, newStubArchive())
	cases := []ConvertRequest{
		{Amount: "0", From: "USD", To: "EUR"},
		{Amount: "-5", From: "USD", To: "EUR"},
		{Amount: "abc", From: "USD", To: "EUR"},
		{Amount: "NaN", From: "USD", To: "EUR"},
		{Amount: "10", From: "US", To: "EUR"},
		{Amount: "10", From: "USD", To: ""},
	}
	for _, req := range cases {
		_, err := svc.Convert(context.Background(), req)
		require.True(t, apperrors.IsCode(err, CodeInvalidInput), "%+v", req)
	}
}

func TestServiceConvertUpstreamUnavailable(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{err: errors.New("timeout")}, newStubArchive())

	_, err := svc.Convert(context.Background(), ConvertRequest{Amount: "1", From: "USD", To: "EUR"})
	require.True(t, apperrors.IsCode(err, CodeUpstreamUnavailable))
}

func TestServiceCurrenciesCached(t *testing.T) {
	client := &stubRateClient{list: map[string]string{"USD": "United States Dollar"}}
	svc, _ := newServiceUnderTest(client, newStubArchive())

	for i := 0; i < 2; i++ {
		list, err := svc.Currencies(context.Background())
		require.NoError(t, err)
		require.Equal(t, "United States Dollar", list["USD"])
	}
	require.Equal(t, 1, client.listCalls)
}

func TestServiceHistoricalSortsAndFilters(t *testing.T) {
	client := &stubRateClient{
		frame: Timeframe{Days: map[string]map[string]float64{
			"2024-01-03": {"EUR": 0.93},
			"2024-01-01": {"EUR": 0.91},
			"2024-01-02": {"GBP": 0.79},
		}},
	}
	archive := newStubArchive()
	svc, store := newServiceUnderTest(client, archive)

	resp, err := svc.Historical(context.Background(), HistoricalRequest{StartDate: "2024-01-01", EndDate: "2024-01-03", Base: "usd", Target: "eur"})
	require.NoError(t, err)
	require.Equal(t, "USD", resp.Base)
	require.Equal(t, "EUR", resp.Target)
	require.Equal(t, sourceAPI, resp.Source)
	require.Equal(t, []RatePoint{{Date: "2024-01-01", Rate: 0.91}, {Date: "2024-01-03", Rate: 0.93}}, resp.Rates)
	require.Equal(t, resp.Rates, archive.saved["USD/EUR"])
	require.Equal(t, 24*time.Hour, store.ttls["historical:USD:EUR:2024-01-01:2024-01-03"])

	cached, err := svc.Historical(context.Background(), HistoricalRequest{StartDate: "2024-01-01", EndDate: "2024-01-03", Base: "USD", Target: "EUR"})
	require.NoError(t, err)
	require.Equal(t, sourceCache, cached.Source)
	require.Equal(t, resp.Rates, cached.Rates)
	require.Equal(t, 1, client.timeframeCalls)
}

func TestServiceHistoricalValidatesRange(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{}, newStubArchive())
	cases := []HistoricalRequest{
		{StartDate: "2024/01/01", EndDate: "2024-01-02", Base: "USD", Target: "EUR"},
		{StartDate: "2024-01-05", EndDate: "2024-01-02", Base: "USD", Target: "EUR"},
		{StartDate: "2024-01-01", EndDate: "2024-03-01", Base: "USD", Target: "EUR"},
		{StartDate: "2024-01-01", EndDate: "2024-01-02", Base: "USD"},
	}
	for _, req := range cases {
		_, err := svc.Historical(context.Background(), req)
		require.True(t, apperrors.IsCode(err, CodeInvalidInput), "%+v", req)
	}

	_, err := svc.Historical(context.Background(), HistoricalRequest{StartDate: "2024-01-01", EndDate: "2024-01-31", Base: "USD", Target: "EUR"})
	require.NoError(t, err)
}

func TestServiceHistoricalFallsBackToArchive(t *testing.T) {
	archive := newStubArchive()
	archive.saved["USD/EUR"] = []RatePoint{{Date: "2024-01-01", Rate: 0.91}, {Date: "2024-01-02", Rate: 0.92}}
	svc, _ := newServiceUnderTest(&stubRateClient{err: errors.New("down")}, archive)

	resp, err := svc.Historical(context.Background(), HistoricalRequest{StartDate: "2024-01-01", EndDate: "2024-01-02", Base: "USD", Target: "EUR"})
	require.NoError(t, err)
	require.Equal(t, sourceArchive, resp.Source)
	require.Len(t, resp.Rates, 2)

	_, err = svc.Historical(context.Background(), HistoricalRequest{StartDate: "2024-01-01", EndDate: "2024-01-03", Base: "USD", Target: "EUR"})
	require.True(t, apperrors.IsCode(err, CodeUpstreamError))
}

func TestServiceCheckUpstream(t *testing.T) {
	svc, _ := newServiceUnderTest(&stubRateClient{convertResult: 0.92}, newStubArchive())
	status := svc.CheckUpstream(context.Background())
	require.True(t, status.OK)
	require.Equal(t, 0.92, status.Result)

	svc, _ = newServiceUnderTest(&stubRateClient{err: errors.New("invalid key")}, newStubArchive())
	status = svc.CheckUpstream(context.Background())
	require.False(t, status.OK)
	require.Equal(t, "invalid key", status.Error)
}

func TestServiceCacheFailureIsNotFatal(t *testing.T) {
	client := &stubRateClient{list: map[string]string{"EUR": "Euro"}}
	svc, store := newServiceUnderTest(client, newStubArchive())
	store.err = errors.New("cache down")

	list, err := svc.Currencies(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Euro", list["EUR"])
}

func newServiceUnderTest(client RateClient, archive HistoryRepository) (*service, *stubStore) {
	store := newStubStore()
	svc := NewService(Config{
		DefaultBase:       "USD",
		RatesTTL:          time.Hour,
		HistoricalTTL:     24 * time.Hour,
		MaxHistoricalDays: 30,
	}, client, store, archive, slog.New(slog.NewTextHandler(io.Discard, nil))).(*service)
	svc.now = func() time.Time { return time.Unix(1700000000, 0) }
	return svc, store
}

type stubRateClient struct {
	quote         Quote
	convertResult float64
	list          map[string]string
	frame         Timeframe
	err           error

	lastSymbols    []string
	liveCalls      int
	listCalls      int
	timeframeCalls int
}

func (s *stubRateClient) Live(_ context.Context, _ string, symbols []string) (Quote, error) {
	s.liveCalls++
	s.lastSymbols = symbols
	if s.err != nil {
		return Quote{}, s.err
	}
	return s.quote, nil
}

func (s *stubRateClient) Convert(_ context.Context, _, _ string, _ float64) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.convertResult, nil
}

func (s *stubRateClient) List(context.Context) (map[string]string, error) {
	s.listCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.list, nil
}

func (s *stubRateClient) Timeframe(_ context.Context, _, _, _ string, _ []string) (Timeframe, error) {
	s.timeframeCalls++
	if s.err != nil {
		return Timeframe{}, s.err
	}
	return s.frame, nil
}

type stubStore struct {
	data map[string][]byte
	ttls map[string]time.Duration
	err  error
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte), ttls: make(map[string]time.Duration)}
}

func (s *stubStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	payload, ok := s.data[key]
	return payload, ok, nil
}

func (s *stubStore) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.data[key] = payload
	s.ttls[key] = ttl
	return nil
}

func (s *stubStore) Delete(_ context.Context, key string) error {
	delete(s.data, key)
	return nil
}

type stubArchive struct {
	saved map[string][]RatePoint
}

func newStubArchive() *stubArchive {
	return &stubArchive{saved: make(map[string][]RatePoint)}
}

func (s *stubArchive) SaveDailyRates(_ context.Context, base, target string, points []RatePoint) error {
	s.saved[base+"/"+target] = points
	return nil
}

func (s *stubArchive) ListDailyRates(_ context.Context, base, target, start, end string) ([]RatePoint, error) {
	out := make([]RatePoint, 0)
	for _, p := range s.saved[base+"/"+target] {
		if p.Date >= start && p.Date <= end {
			out = append(out, p)
		}
	}
	return out, nil
}

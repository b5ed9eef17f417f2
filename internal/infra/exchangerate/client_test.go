package exchangerate

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/exchanger/internal/domain/currency"
)

func TestClientLive(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/live", r.URL.Path)
		require.Equal(t, "secret", r.URL.Query().Get("access_key"))
		require.Equal(t, "USD", r.URL.Query().Get("source"))
		require.Equal(t, "EUR,VND", r.URL.Query().Get("currencies"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"timestamp":1700000000,"source":"USD","quotes":{"USDEUR":0.92,"USDVND":24500}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "secret", time.Second)
	quote, err := client.Live(context.Background(), "USD", []string{"EUR", "VND"})
	require.NoError(t, err)
	require.Equal(t, "USD", quote.Source)
	require.Equal(t, time.Unix(1700000000, 0).UTC(), quote.Timestamp)
	require.Equal(t, map[string]float64{"EUR": 0.92, "VND": 24500}, quote.Rates)
}

func TestClientConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/convert", r.URL.Path)
		require.Equal(t, "12.5", r.URL.Query().Get("amount"))
		_, _ = w.Write([]byte(`{"success":true,"query":{"from":"USD","to":"EUR","amount":12.5},"result":11.5}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL, "secret", time.Second).Convert(context.Background(), "USD", "EUR", 12.5)
	require.NoError(t, err)
	require.Equal(t, 11.5, result)
}

func TestClientTimeframe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/timeframe", r.URL.Path)
		require.Equal(t, "2024-01-01", r.URL.Query().Get("start_date"))
		require.Equal(t, "2024-01-02", r.URL.Query().Get("end_date"))
		_, _ = w.Write([]byte(`{"success":true,"source":"USD","quotes":{"2024-01-01":{"USDEUR":0.91},"2024-01-02":{"USDEUR":0.92}}}`))
	}))
	defer server.Close()

	frame, err := NewClient(server.URL, "secret", time.Second).Timeframe(context.Background(), "2024-01-01", "2024-01-02", "USD", []string{"EUR"})
	require.NoError(t, err)
	require.Equal(t, 0.91, frame.Days["2024-01-01"]["EUR"])
	require.Equal(t, 0.92, frame.Days["2024-01-02"]["EUR"])
}

func TestClientAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":101,"type":"invalid_access_key","info":"You have not supplied a valid API Access Key."}}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "bad", time.Second).List(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 101, apiErr.Code)
	require.Contains(t, err.Error(), "valid API Access Key")
}

func TestClientHTTPStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "secret", time.Second).List(context.Background())
	require.ErrorContains(t, err, "status=502")
}

func TestClientMissingAPIKey(t *testing.T) {
	_, err := NewClient("http://127.0.0.1:0", "  ", time.Second).Convert(context.Background(), "USD", "EUR", 1)
	require.True(t, errors.Is(err, currency.ErrMissingAPIKey))
}

func TestStripPairPrefix(t *testing.T) {
	got := stripPairPrefix("EUR", map[string]float64{"EURUSD": 1.08, "EUREUR": 1})
	require.Equal(t, map[string]float64{"USD": 1.08, "EUR": 1}, got)
}

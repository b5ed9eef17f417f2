package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/exchanger/internal/domain/currency"
)

const defaultBaseURL = "https://api.exchangerate.host"

// Client fetches quotes from exchangerate.host.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	u := strings.TrimSpace(baseURL)
	if u == "" {
		u = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(u, "/"),
		apiKey:  strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Live retrieves the latest quotes for source, keyed by target code.
func (c *Client) Live(ctx context.Context, source string, symbols []string) (currency.Quote, error) {
	params := url.Values{}
	params.Set("source", source)
	if len(symbols) > 0 {
		params.Set("currencies", strings.Join(symbols, ","))
	}
	var raw liveResponse
	if err := c.get(ctx, "live", params, &raw); err != nil {
		return currency.Quote{}, err
	}
	src := firstNonEmpty(raw.Source, source)
	quote := currency.Quote{
		Source: src,
		Rates:  stripPairPrefix(src, raw.Quotes),
	}
	if raw.Timestamp > 0 {
		quote.Timestamp = time.Unix(raw.Timestamp, 0).UTC()
	}
	return quote, nil
}

// Convert asks the upstream to convert amount from one currency to another.
func (c *Client) Convert(ctx context.Context, from, to string, amount float64) (float64, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	params.Set("amount", strconv.FormatFloat(amount, 'f', -1, 64))
	var raw convertResponse
	if err := c.get(ctx, "convert", params, &raw); err != nil {
		return 0, err
	}
	if raw.Result == nil {
		return 0, fmt.Errorf("exchangerate convert: missing result")
	}
	return *raw.Result, nil
}

// List returns the supported currency codes and names.
func (c *Client) List(ctx context.Context) (map[string]string, error) {
	var raw listResponse
	if err := c.get(ctx, "list", url.Values{}, &raw); err != nil {
		return nil, err
	}
	return raw.Currencies, nil
}

// Timeframe retrieves daily quotes between start and end inclusive.
func (c *Client) Timeframe(ctx context.Context, start, end, source string, symbols []string) (currency.Timeframe, error) {
	params := url.Values{}
	params.Set("start_date", start)
	params.Set("end_date", end)
	params.Set("source", source)
	if len(symbols) > 0 {
		params.Set("currencies", strings.Join(symbols, ","))
	}
	var raw timeframeResponse
	if err := c.get(ctx, "timeframe", params, &raw); err != nil {
		return currency.Timeframe{}, err
	}
	if raw.Quotes == nil {
		return currency.Timeframe{}, fmt.Errorf("exchangerate timeframe: missing quotes")
	}
	src := firstNonEmpty(raw.Source, source)
	days := make(map[string]map[string]float64, len(raw.Quotes))
	for date, quotes := range raw.Quotes {
		days[date] = stripPairPrefix(src, quotes)
	}
	return currency.Timeframe{Source: src, Days: days}, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst envelope) error {
	if c.apiKey == "" {
		return currency.ErrMissingAPIKey
	}
	params.Set("access_key", c.apiKey)
	target := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build %s request: %w", endpoint, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("%s request error: status=%d body=%s", endpoint, resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", endpoint, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	if status := dst.status(); !status.Success {
		return &APIError{Endpoint: endpoint, Code: status.Error.Code, Type: status.Error.Type, Info: status.Error.Info}
	}
	return nil
}

// APIError is returned when the upstream answers with success=false.
type APIError struct {
	Endpoint string
	Code     int
	Type     string
	Info     string
}

func (e *APIError) Error() string {
	msg := e.Info
	if msg == "" {
		msg = e.Type
	}
	if msg == "" {
		msg = "unknown error"
	}
	return fmt.Sprintf("exchangerate %s error %d: %s", e.Endpoint, e.Code, msg)
}

type envelope interface {
	status() *apiStatus
}

type apiStatus struct {
	Success bool `json:"success"`
	Error   struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
}

func (s *apiStatus) status() *apiStatus { return s }

type liveResponse struct {
	apiStatus
	Timestamp int64              `json:"timestamp"`
	Source    string             `json:"source"`
	Quotes    map[string]float64 `json:"quotes"`
}

type convertResponse struct {
	apiStatus
	Result *float64 `json:"result"`
}

type listResponse struct {
	apiStatus
	Currencies map[string]string `json:"currencies"`
}

type timeframeResponse struct {
	apiStatus
	Source string                        `json:"source"`
	Quotes map[string]map[string]float64 `json:"quotes"`
}

// stripPairPrefix turns {"USDEUR": 0.9} into {"EUR": 0.9}.
func stripPairPrefix(source string, quotes map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(quotes))
	for pair, rate := range quotes {
		code := strings.TrimPrefix(pair, source)
		if code == "" {
			code = source
		}
		out[code] = rate
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

var _ currency.RateClient = (*Client)(nil)

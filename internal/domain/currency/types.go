package currency

import "time"

// Config holds runtime knobs for the currency service.
type Config struct {
	DefaultBase       string
	RatesTTL          time.Duration
	HistoricalTTL     time.Duration
	MaxHistoricalDays int
}

// RatesRequest selects the quotes to fetch.
type RatesRequest struct {
	Base    string `form:"base"`
	Symbols string `form:"symbols"`
}

// RatesResponse carries the latest quotes for one base currency.
type RatesResponse struct {
	Base      string             `json:"base"`
	Timestamp int64              `json:"timestamp"`
	Rates     map[string]float64 `json:"rates"`
}

// ConvertRequest is the payload for an amount conversion.
type ConvertRequest struct {
	Amount string `form:"amount"`
	From   string `form:"from"`
	To     string `form:"to"`
}

// ConvertResponse is serialized back to API consumers.
type ConvertResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Result float64 `json:"result"`
	Rate   float64 `json:"rate"`
}

// HistoricalRequest selects a daily rate series.
type HistoricalRequest struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
	Base      string `form:"base"`
	Target    string `form:"target"`
}

// RatePoint is one day of a historical series.
type RatePoint struct {
	Date string  `json:"date"`
	Rate float64 `json:"rate"`
}

// HistoricalResponse contains the rates ordered by date.
type HistoricalResponse struct {
	Base   string      `json:"base"`
	Target string      `json:"target"`
	Rates  []RatePoint `json:"rates"`
	Source string      `json:"source"`
}

// UpstreamStatus reports whether the exchange-rate API accepts our key.
type UpstreamStatus struct {
	OK      bool    `json:"success"`
	Message string  `json:"message"`
	Result  float64 `json:"testResult,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// Quote is the normalized result of an upstream live call.
type Quote struct {
	Source    string
	Timestamp time.Time
	Rates     map[string]float64
}

// Timeframe is the normalized result of an upstream timeframe call.
type Timeframe struct {
	Source string
	Days   map[string]map[string]float64
}

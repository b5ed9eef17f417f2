package currency

import "errors"

// ErrMissingAPIKey indicates the upstream API key was never configured.
var ErrMissingAPIKey = errors.New("missing exchange rate api key")

// Error codes surfaced through apperrors.
const (
	CodeInvalidInput        = "invalid_input"
	CodeUpstreamError       = "upstream_error"
	CodeUpstreamUnavailable = "upstream_unavailable"
	CodeConfigError         = "config_error"
)

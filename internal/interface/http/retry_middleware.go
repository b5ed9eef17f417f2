package http

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/yanqian/exchanger/internal/infra/config"
)

const (
	retryAttemptsHeader = "X-Retry-Attempts"
	maxRetryBackoff     = 2 * time.Second
)

// withRetry replays GET and HEAD requests that ended in a 5xx. Only the
// final attempt reaches the client.
func withRetry(next http.Handler, cfg config.RetryConfig, logger *slog.Logger) http.Handler {
	if !cfg.Enabled || cfg.MaxAttempts <= 1 {
		return next
	}
	skip := make(map[string]bool, len(cfg.Exclude))
	for _, path := range cfg.Exclude {
		skip[path] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if skip[r.URL.Path] || (r.Method != http.MethodGet && r.Method != http.MethodHead) {
			next.ServeHTTP(w, r)
			return
		}

		var buf *bufferedResponse
		attempt := 1
		for ; attempt <= cfg.MaxAttempts; attempt++ {
			if attempt > 1 {
				timer := time.NewTimer(retryBackoff(cfg.BaseBackoff, attempt-1))
				select {
				case <-r.Context().Done():
					timer.Stop()
					buf.flushTo(w, attempt-1)
					return
				case <-timer.C:
				}
			}
			buf = newBufferedResponse()
			next.ServeHTTP(buf, r.Clone(r.Context()))
			if buf.status < http.StatusInternalServerError {
				break
			}
			if attempt < cfg.MaxAttempts {
				logger.Warn("retrying failed read", "path", r.URL.Path, "status", buf.status, "attempt", attempt)
			}
		}
		buf.flushTo(w, min(attempt, cfg.MaxAttempts))
	})
}

// retryBackoff doubles base for every retry already made, capped.
func retryBackoff(base time.Duration, retries int) time.Duration {
	if base <= 0 {
		return 0
	}
	d := base << (retries - 1)
	if d <= 0 || d > maxRetryBackoff {
		return maxRetryBackoff
	}
	return d
}

// bufferedResponse holds one attempt's response until we know whether it
// is the one to send.
type bufferedResponse struct {
	header http.Header
	body   bytes.Buffer
	status int
	wrote  bool
}

func newBufferedResponse() *bufferedResponse {
	return &bufferedResponse{header: make(http.Header), status: http.StatusOK}
}

func (b *bufferedResponse) Header() http.Header { return b.header }

func (b *bufferedResponse) WriteHeader(status int) {
	if b.wrote {
		return
	}
	b.status = status
	b.wrote = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.wrote = true
	return b.body.Write(p)
}

func (b *bufferedResponse) Flush() {}

func (b *bufferedResponse) flushTo(w http.ResponseWriter, attempts int) {
	dst := w.Header()
	for key, values := range b.header {
		dst[key] = append([]string(nil), values...)
	}
	if attempts > 1 {
		dst.Set(retryAttemptsHeader, strconv.Itoa(attempts))
	}
	w.WriteHeader(b.status)
	if b.body.Len() > 0 {
		_, _ = w.Write(b.body.Bytes())
	}
}

package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"
)

// RateLimitHeader carries the number of calls left in the current window
const RateLimitHeader = "X-RateLimit-Remaining"

// DefaultRateLimitThreshold is the remaining-call count below which
// responses are rejected
const DefaultRateLimitThreshold = 1

// RateLimitGuard inspects responses for quota exhaustion. It is advisory:
// it never delays, queues or retries a request.
type RateLimitGuard struct {
	Threshold int

	// OnExhausted is invoked when a response reports remaining quota under
	// the threshold. The UI uses it to raise a blocking warning.
	OnExhausted func(remaining int)

	// last seen remaining count, -1 when no response carried the header
	remaining atomic.Int64
}

// NewRateLimitGuard creates a guard with the given threshold
func NewRateLimitGuard(threshold int) *RateLimitGuard {
	g := &RateLimitGuard{Threshold: threshold}
	g.remaining.Store(-1)
	return g
}

// Check reports whether the response may be parsed. When the header is
// present and below threshold it returns false along with the remaining
// count.
func (g *RateLimitGuard) Check(resp *http.Response) (remaining int, ok bool) {
	raw := strings.TrimSpace(resp.Header.Get(RateLimitHeader))
	if raw == "" {
		return -1, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return -1, true
	}
	g.remaining.Store(int64(n))

	if n < g.Threshold {
		if g.OnExhausted != nil {
			g.OnExhausted(n)
		}
		return n, false
	}
	return n, true
}

// Remaining returns the last remaining count seen, or -1 if unknown
func (g *RateLimitGuard) Remaining() int {
	return int(g.remaining.Load())
}

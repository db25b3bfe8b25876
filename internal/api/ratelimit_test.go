package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func responseWith(remaining string) *http.Response {
	h := http.Header{}
	if remaining != "" {
		h.Set(RateLimitHeader, remaining)
	}
	return &http.Response{Header: h}
}

func TestRateLimitGuard_Check(t *testing.T) {
	tests := []struct {
		name          string
		header        string
		wantOK        bool
		wantRemaining int
		wantWarned    bool
	}{
		{name: "header absent", header: "", wantOK: true, wantRemaining: -1},
		{name: "unparsable header", header: "lots", wantOK: true, wantRemaining: -1},
		{name: "at threshold", header: "1", wantOK: true, wantRemaining: 1},
		{name: "plenty left", header: "57", wantOK: true, wantRemaining: 57},
		{name: "exhausted", header: "0", wantOK: false, wantRemaining: 0, wantWarned: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			warned := false
			g := NewRateLimitGuard(DefaultRateLimitThreshold)
			g.OnExhausted = func(int) { warned = true }

			remaining, ok := g.Check(responseWith(tc.header))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantRemaining, remaining)
			assert.Equal(t, tc.wantWarned, warned)
		})
	}
}

func TestRateLimitGuard_RemembersLastSeen(t *testing.T) {
	g := NewRateLimitGuard(DefaultRateLimitThreshold)
	assert.Equal(t, -1, g.Remaining())

	g.Check(responseWith("12"))
	assert.Equal(t, 12, g.Remaining())

	// a response without the header keeps the last known value
	g.Check(responseWith(""))
	assert.Equal(t, 12, g.Remaining())
}

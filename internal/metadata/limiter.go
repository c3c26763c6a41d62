package metadata

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const userAgent = "Library/1.0 (https://github.com/mrlokans/library)"

// newLimiter allows rps requests per second with a burst of one.
// A non-positive rps disables limiting.
func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

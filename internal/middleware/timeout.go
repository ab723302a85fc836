package middleware

import (
	"net/http"
	"time"
)

const defaultRequestTimeout = 30 * time.Second

// Timeout cuts off handlers that run past the deadline. The canned body
// matches the envelope writeError produces so clients see one error shape.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = defaultRequestTimeout
	}

	body := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"Request took too long to process"}}`

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, limit, body)
	}
}

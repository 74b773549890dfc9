// Package middleware holds the net/http middleware wrapped around the
// lookup API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/myenglish-progress/internal/config"
)

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that the first one runs outermost.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}

// Default is the stack every request goes through. The logger sits outside
// Recovery so recovered panics are still logged as 500s with their request ID.
func Default(log *slog.Logger, cors config.CORSConfig) Middleware {
	return Chain(
		RequestID(),
		Logger(log),
		Recovery(log),
		CORS(cors),
	)
}

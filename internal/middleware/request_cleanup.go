package middleware

import (
	"io"
	"net/http"
)

// maxDrainBytes bounds the unread body drained after a handler. Workout log
// payloads are a few hundred bytes; anything past this closes the connection
// instead of reading on.
const maxDrainBytes = 64 << 10

// DrainAndCloseRequest reads what the handler left of the request body and
// closes it, so keep-alive connections can be reused.
func DrainAndCloseRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Body == nil || r.Body == http.NoBody {
				return
			}
			_, _ = io.Copy(io.Discard, io.LimitReader(r.Body, maxDrainBytes))
			_ = r.Body.Close()
		})
	}
}

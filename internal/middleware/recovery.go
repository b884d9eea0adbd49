package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/pkg/apierror"
	"emoticon-rest-api/pkg/response"
)

// Recovery returns a middleware that turns panics into 500 responses.
func Recovery(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error(r.Context(), "panic recovered",
						"panic", fmt.Sprint(rec),
						"stack", string(debug.Stack()),
						"request_id", GetRequestID(r.Context()),
					)
					response.Error(w, apierror.InternalError(""))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/model"
	"emoticon-rest-api/pkg/apierror"
	"emoticon-rest-api/pkg/response"
)

// IdentityKey is the key for storing the authenticated identity in request context.
const IdentityKey contextKey = "identity"

const (
	msgNotAuthenticated = "Not authenticated"
	msgInvalidToken     = "Could not validate token"
)

// Authenticator turns a bearer token into the identity it was issued for.
type Authenticator interface {
	Authenticate(token string) (*model.Identity, error)
}

// NewAuthMiddleware creates a bearer-token middleware with injected dependencies.
// Requests without a usable Authorization header never reach next.
func NewAuthMiddleware(auth Authenticator, log logging.Logger) func(http.Handler) http.Handler {
	log = log.With("component", "auth_middleware")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				response.Error(w, apierror.Unauthorized(msgNotAuthenticated).WithChallenge())
				return
			}

			identity, err := auth.Authenticate(token)
			if err != nil {
				log.Info(r.Context(), "token rejected",
					"error", err,
					"request_id", GetRequestID(r.Context()),
				)
				response.Error(w, apierror.Unauthorized(msgInvalidToken).WithChallenge())
				return
			}

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extracts the credentials of a "Bearer <token>" header.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// IdentityFromContext retrieves the authenticated identity from request context.
func IdentityFromContext(ctx context.Context) (*model.Identity, bool) {
	identity, ok := ctx.Value(IdentityKey).(*model.Identity)
	return identity, ok && identity != nil
}

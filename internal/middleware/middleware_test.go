package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"emoticon-rest-api/internal/logging"
	"emoticon-rest-api/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	tokens map[string]*model.Identity
}

func (f fakeAuthenticator) Authenticate(token string) (*model.Identity, error) {
	if id, ok := f.tokens[token]; ok {
		return id, nil
	}
	return nil, errors.New("invalid token")
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message
}

func TestAuthMiddleware(t *testing.T) {
	auth := fakeAuthenticator{tokens: map[string]*model.Identity{
		"good": {ID: 7, Username: "user"},
	}}

	var seen *model.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := NewAuthMiddleware(auth, logging.Nop())(next)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{name: "valid", header: "Bearer good", wantStatus: http.StatusNoContent},
		{name: "lowercase scheme", header: "bearer good", wantStatus: http.StatusNoContent},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "basic scheme", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "empty token", header: "Bearer ", wantStatus: http.StatusUnauthorized, wantMsg: "Not authenticated"},
		{name: "bad token", header: "Bearer fake_token", wantStatus: http.StatusUnauthorized, wantMsg: "Could not validate token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/auth/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantMsg == "" {
				require.NotNil(t, seen)
				assert.Equal(t, "user", seen.Username)
				return
			}
			assert.Nil(t, seen)
			assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

func TestIdentityFromContext_Missing(t *testing.T) {
	_, ok := IdentityFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, got)
	assert.Equal(t, got, rec.Header().Get(RequestIDHeader))

	const incoming = "6f1c0c3e-3a4b-4d4e-9b1a-2f3c4d5e6f70"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.NotEqual(t, "abc", got)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	h := RequestID(Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/emoticon", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "GET", line["method"])
	assert.Equal(t, "/emoticon", line["path"])
	assert.EqualValues(t, http.StatusTeapot, line["status"])
	assert.EqualValues(t, len("short and stout"), line["bytes"])
	assert.Equal(t, rec.Header().Get(RequestIDHeader), line["request_id"])
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

	h := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	require.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An unexpected error occurred", errorMessage(t, rec))
	assert.Contains(t, buf.String(), "kaboom")
}

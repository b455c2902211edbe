package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/messagely/messagely/internal/common"
	"github.com/messagely/messagely/internal/server/auth"
)

type ctxKey string

const callerKey ctxKey = "caller"

// maxTokenProbeBytes bounds how much of a request body the identify stage
// will buffer while looking for a _token field.
const maxTokenProbeBytes = 1 << 20

// CallerFromContext returns the verified session claims for the request, or
// nil when no valid token was presented. A missing token and a token that
// failed verification look identical here.
func CallerFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(callerKey).(*auth.Claims)
	return claims
}

// identify reads a session token from the request and, when it verifies,
// attaches the claims to the request context. It never rejects a request:
// routes that demand a caller say so with requireLoggedIn / requireSelf,
// public routes simply see an absent caller.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := tokenFromRequest(r); token != "" {
			if claims, err := s.tokens.Verify(token); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), callerKey, claims))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// tokenFromRequest pulls the token from the Authorization header or from a
// _token field in a JSON body. The body is buffered and restored so the
// handler can still decode it.
func tokenFromRequest(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if token, ok := strings.CutPrefix(h, "Bearer "); ok {
			return token
		}
		return ""
	}

	if r.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTokenProbeBytes))
	r.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var probe struct {
		Token string `json:"_token"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return ""
	}
	return probe.Token
}

// requireLoggedIn rejects requests with no identified caller.
func (s *Server) requireLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if CallerFromContext(r.Context()) == nil {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireSelf rejects requests whose caller is not the user named in the
// route. An absent caller and a mismatched caller get the same answer.
func (s *Server) requireSelf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := CallerFromContext(r.Context())
		if caller == nil || caller.Username != mux.Vars(r)["username"] {
			s.writeError(w, r, common.ErrorUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests tags each request with an id and logs its outcome.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.Info(r.Context(), "request",
			"request_id", uuid.NewString(),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}

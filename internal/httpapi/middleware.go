package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/bistro-boss/backend/internal/auth"
	"github.com/bistro-boss/backend/pkg/logger"
)

type contextKey string

const ctxClaimsKey contextKey = "claims"

// claimsFrom extracts the authenticated claims attached by the auth gate.
func claimsFrom(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxClaimsKey).(*auth.Claims)
	return claims, ok
}

// authenticate requires a valid bearer token. On success the decoded claims
// are attached to the request context; on any failure the chain halts with
// 401.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			jsonError(w, "unauthorized access", http.StatusUnauthorized)
			return
		}

		claims, err := h.tokens.Verify(authHeader[7:])
		if err != nil {
			jsonError(w, "unauthorized access", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ctxClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin resolves the authenticated email against the user store and
// halts with 403 unless it belongs to an admin. Always chained after
// authenticate.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok {
			jsonError(w, "unauthorized access", http.StatusUnauthorized)
			return
		}

		isAdmin, err := h.users.IsAdmin(r.Context(), claims.Email)
		if err != nil {
			jsonError(w, "internal error", http.StatusInternalServerError)
			return
		}
		if !isAdmin {
			jsonError(w, "forbidden access", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// requireSelf compares the authenticated email to the {email} path variable.
// A mismatch is forbidden no matter how valid the token is.
func (h *Handler) requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	email := mux.Vars(r)["email"]
	claims, ok := claimsFrom(r.Context())
	if !ok || claims.Email != email {
		jsonError(w, "forbidden access", http.StatusForbidden)
		return "", false
	}
	return email, true
}

// corsMiddleware answers preflights and sets the CORS headers for the
// configured origins.
func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	allowed := map[string]struct{}{}
	for _, origin := range strings.Split(allowedOrigins, ",") {
		if o := strings.TrimSpace(origin); o != "" {
			allowed[o] = struct{}{}
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Set("Vary", "Origin")
					w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
					w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				} else {
					if r.Method == http.MethodOptions {
						w.WriteHeader(http.StatusForbidden)
						return
					}
					http.Error(w, "CORS origin not allowed", http.StatusForbidden)
					return
				}
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get("X-Request-ID")
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", requestID)

			rec := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			log.WithField("request_id", requestID).
				WithField("method", r.Method).
				WithField("path", r.URL.Path).
				WithField("status", rec.status).
				WithField("duration", time.Since(start).String()).
				Info("request handled")
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

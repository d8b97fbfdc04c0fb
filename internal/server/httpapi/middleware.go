package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/netx"
	"github.com/gorilla/mux"
)

type ctxKey int

const userIDKey ctxKey = iota

const requestIDHeader = "X-Request-ID"

func withUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserIDFrom returns the owner id placed in ctx by the auth middleware.
func UserIDFrom(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// requireAuth resolves the bearer token. A missing token is 401, an
// invalid or expired one is 403.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := netx.ExtractBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			if errors.Is(err, netx.ErrNoToken) {
				writeMessage(w, http.StatusUnauthorized, msgNoToken)
				return
			}
			writeMessage(w, http.StatusForbidden, msgBadToken)
			return
		}

		userID, err := s.tokens.Resolve(token)
		if err != nil {
			if !errors.Is(err, common.ErrTokenExpired) && !errors.Is(err, common.ErrInvalidToken) {
				s.logger.Warn(r.Context(), "token resolve failed", "error", err)
			}
			writeMessage(w, http.StatusForbidden, msgBadToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if tpl, err := route.GetPathTemplate(); err == nil {
			return tpl
		}
	}
	return "unmatched"
}

// observe logs every request and feeds the request metrics. The route
// template is used as label so ids do not explode cardinality.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID, _ = common.MakeRandHexString(8)
		}
		w.Header().Set(requestIDHeader, reqID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := routeName(r)
		if s.metrics != nil {
			s.metrics.ObserveRequest("http", route, rec.status, elapsed)
		}
		s.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration", elapsed,
			"remote", netx.ClientIP(r),
			"request_id", reqID,
		)
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if p := recover(); p != nil {
				s.logger.Error(r.Context(), "panic in handler", "panic", p, "route", routeName(r))
				writeMessage(w, http.StatusInternalServerError, msgServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

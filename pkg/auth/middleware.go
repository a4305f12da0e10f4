package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/ghuser/webapp/pkg/apperr"
	"github.com/ghuser/webapp/pkg/errhttp"
	"github.com/ghuser/webapp/pkg/logger"
	"github.com/ghuser/webapp/pkg/telemetry"
)

// Resolver turns a presented credential pair into a verified Identity.
// Implementations return an error matching apperr.ErrUnauthenticated on
// rejection; any other error is treated as an internal failure.
type Resolver interface {
	Resolve(ctx context.Context, email, password string) (Identity, error)
}

// RequireAuth is a chi middleware that enforces HTTP Basic authentication.
// The credential is verified through resolver on every request and the
// resulting Identity is injected into the request context.
// Responds 401 with WWW-Authenticate when the credential is missing or wrong.
//
// After this middleware, handlers can safely call auth.IdentityFromCtx(r.Context()).
func RequireAuth(resolver Resolver, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, password, ok := r.BasicAuth()
			if !ok || email == "" {
				telemetry.RecordAuthFailure(r.Context(), "missing")
				log.WarnContext(r.Context(), "missing credential", "path", r.URL.Path)
				errhttp.WriteError(w, r, ErrMissingCredential)
				return
			}

			id, err := resolver.Resolve(r.Context(), email, password)
			if err != nil {
				if errors.Is(err, apperr.ErrUnauthenticated) {
					telemetry.RecordAuthFailure(r.Context(), "invalid")
					log.WarnContext(r.Context(), "credential rejected", "path", r.URL.Path)
				} else {
					log.ErrorContext(r.Context(), "resolve identity failed", "error", err)
				}
				errhttp.WriteError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

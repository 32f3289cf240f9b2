package auth

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"bizledger/internal/commons"
	apperrors "bizledger/internal/errors"
)

// Authenticate resolves the bearer token into an Actor stored on the
// request context. Requests without a valid token are rejected with 401.
func Authenticate(tokens *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, found := strings.CutPrefix(header, "Bearer ")
			if !found || raw == "" {
				commons.WriteError(w, commons.TraceID(r), apperrors.NewUnauthorizedError("Not authorized, no token"), logger)
				return
			}

			actor, err := tokens.Verify(raw)
			if err != nil {
				commons.WriteError(w, commons.TraceID(r), apperrors.NewUnauthorizedError("Not authorized, token failed"), logger)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// Require is the capability check run before a workflow: the actor must
// hold one of roles.
func Require(logger *zap.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				commons.WriteError(w, commons.TraceID(r), apperrors.NewUnauthorizedError("Not authorized, no token"), logger)
				return
			}

			if !actor.HasRole(roles...) {
				msg := fmt.Sprintf("User role %s is not authorized to access this route", actor.Role)
				commons.WriteError(w, commons.TraceID(r), apperrors.NewForbiddenError(msg), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"gtfunds/internal/domain"
	"gtfunds/internal/ports"
)

type contextKey string

const userContextKey contextKey = "authenticatedUser"

// requireAuth resolves the bearer token into a user and stores it in the
// request context. Requests without a valid token never reach the handler.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, fmt.Errorf("%w: missing bearer token", ports.ErrUnauthorized))
			return
		}
		user, err := s.auth.CurrentUser(r.Context(), token)
		if err != nil {
			writeError(w, err)
			return
		}
		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userFrom(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

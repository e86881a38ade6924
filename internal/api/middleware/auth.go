package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/inkfield/inkfield/internal/api/apierr"
	"github.com/inkfield/inkfield/internal/model"
	"github.com/inkfield/inkfield/internal/services/auth"
)

type contextKey string

const (
	profileContextKey contextKey = "profile"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware
func Auth(authService auth.ServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and profile to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, profileContextKey, &session.Profile)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetProfile returns the authenticated profile from the request context
func GetProfile(ctx context.Context) *model.PlayerProfile {
	profile, _ := ctx.Value(profileContextKey).(*model.PlayerProfile)
	return profile
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetProfile returns the authenticated profile or panics
func MustGetProfile(ctx context.Context) *model.PlayerProfile {
	profile := GetProfile(ctx)
	if profile == nil {
		panic("no profile in context - auth middleware not applied?")
	}
	return profile
}

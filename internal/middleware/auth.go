package middleware

import (
	"net/http"
	"strings"

	"github.com/templui/nocturne/internal/ctxkeys"
	"github.com/templui/nocturne/internal/render"
	"github.com/templui/nocturne/internal/service"
)

// AuthMiddleware resolves the session token and adds the user to context if valid.
// Bearer tokens take precedence over the auth cookie.
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, source := sessionToken(r)
			if source == ctxkeys.AuthSourceNone {
				next.ServeHTTP(w, r)
				return
			}

			user, err := authService.Authenticate(r.Context(), token)
			if err != nil {
				// Invalid cookie is cleared, the request continues unauthenticated
				if source == ctxkeys.AuthSourceCookie {
					authService.ClearJWTCookie(w)
				}
				next.ServeHTTP(w, r)
				return
			}

			// Security: Remove password hash from context
			user.PasswordHash = nil

			ctx := ctxkeys.WithUser(r.Context(), user)
			ctx = ctxkeys.WithAuth(ctx, source)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionToken(r *http.Request) (string, ctxkeys.AuthSource) {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok && strings.TrimSpace(token) != "" {
		return strings.TrimSpace(token), ctxkeys.AuthSourceBearer
	}

	cookie, err := r.Cookie(service.AuthCookieName)
	if err == nil && cookie.Value != "" {
		return cookie.Value, ctxkeys.AuthSourceCookie
	}

	return "", ctxkeys.AuthSourceNone
}

// RequireAuth answers 401 when no user is in context
func RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ctxkeys.User(r.Context()) == nil {
			render.Error(w, http.StatusUnauthorized, "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	}
}

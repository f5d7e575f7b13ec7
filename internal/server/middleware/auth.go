package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/xXRex45Xx/MyPortfolio/internal/service"
)

type contextKeyAuth string

// AuthPrincipalKey is the context key for the authenticated principal.
const AuthPrincipalKey contextKeyAuth = "auth_principal"

// Authenticate validates the Bearer token on the Authorization header and
// attaches the resulting principal to the request context. Any failure,
// missing header included, is answered with the 401 envelope before the
// handler runs; the response never says why the token was rejected.
func Authenticate(authSvc *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, "authentication required")
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			principal, err := authSvc.ValidateToken(r.Context(), token)
			if err != nil {
				writeAuthError(w, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), AuthPrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal extracts the authenticated principal from the context.
// Returns nil for unauthenticated requests.
func GetPrincipal(ctx context.Context) *service.Principal {
	if p, ok := ctx.Value(AuthPrincipalKey).(*service.Principal); ok {
		return p
	}
	return nil
}

func writeAuthError(w http.ResponseWriter, message string) {
	// JSON built by hand to avoid an import cycle with the handler package.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":` + strconv.Itoa(http.StatusUnauthorized) +
		`,"message":"` + message + `"}}`))
}

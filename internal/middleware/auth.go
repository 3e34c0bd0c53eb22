package middleware

import (
	"context"
	"net/http"
	"strings"

	apperrors "github.com/aditya/go-ridepool/internal/errors"
	"github.com/aditya/go-ridepool/internal/models"
	"github.com/aditya/go-ridepool/internal/service"
	"github.com/aditya/go-ridepool/pkg/utils"
)

type contextKey string

const userContextKey contextKey = "current_user"

// Authenticator resolves bearer tokens into the acting user for the request.
type Authenticator struct {
	authService service.AuthService
}

func NewAuthenticator(authService service.AuthService) *Authenticator {
	return &Authenticator{authService: authService}
}

// RequireAuth accepts the token either as "Bearer <token>" or raw in the
// Authorization header.
func (a *Authenticator) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(r.Header.Get("Authorization"))
		token = strings.TrimPrefix(token, "Bearer ")

		user, err := a.authService.Authenticate(r.Context(), token)
		if err != nil {
			if apiErr, ok := err.(*apperrors.APIError); ok {
				utils.Error(w, apiErr)
				return
			}
			utils.Unauthorized(w, "authentication failed")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFromContext returns the authenticated user, or nil outside RequireAuth.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

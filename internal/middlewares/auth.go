package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/pocket-wallet/internal/jwt"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
)

//go:generate mockgen -source=auth.go -destination=auth_mock_test.go -package=middlewares

// Tokener extracts and parses bearer tokens.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware resolves the principal from the bearer token and stores its
// claims in the request context. Requests without valid claims get a 401.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				unauthorized(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(jwt.WithClaims(ctx, claims)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	logger.Log.Warnw("authorization failed",
		"request_id", RequestIDFromContext(r.Context()),
		"uri", r.RequestURI,
		"error", err,
	)
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"Unauthorized"}` + "\n"))
}

package credentials

import (
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

// ClaimContextKey is where the middleware parks the verified email
// claim for downstream handlers.
const ClaimContextKey = "credentials:email"

// ProtectedRoute verifies the bearer token on the Authorization header
// and checks the claimed email still maps to an active record, then
// stores the claim in the request locals. Requests with a missing,
// malformed, expired, or orphaned token never reach the handler.
func ProtectedRoute(tokens *TokenService, users UserStore, errorHandler func(router.Context, error) error) router.MiddlewareFunc {
	if errorHandler == nil {
		errorHandler = defaultErrHandler
	}

	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			authorization := ctx.GetString(router.HeaderAuthorization, "")
			if strings.TrimSpace(authorization) == "" {
				return errorHandler(ctx, ErrUnauthorized)
			}

			if !strings.HasPrefix(authorization, bearerScheme) {
				return errorHandler(ctx, ErrTokenMalformed)
			}

			claims, err := tokens.Validate(authorization[len(bearerScheme):])
			if err != nil {
				return errorHandler(ctx, err)
			}

			user, err := users.FindOne(ctx.Context(), strings.ToLower(claims.Email))
			if err != nil {
				return errorHandler(ctx, errors.Wrap(err, errors.CategoryInternal, "failed to look up user"))
			}
			if user == nil {
				// The token outlived the account.
				return errorHandler(ctx, ErrUnauthorized)
			}

			ctx.Locals(ClaimContextKey, claims.Email)

			return next(ctx)
		}
	}
}

// ClaimFromContext returns the verified email claim stored by
// ProtectedRoute, or "" for anonymous requests.
func ClaimFromContext(ctx router.Context) string {
	if v := ctx.Locals(ClaimContextKey); v != nil {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

package middleware

import (
	"context"
	"net/http"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// AuthRequired rejects requests without a valid access token and stores the
// token's identity as a user.Actor on the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != jwt.TokenTypeAccess || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			actor, ok := actorFromClaims(claims)
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), actorKey{}, actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

func actorFromClaims(claims map[string]interface{}) (user.Actor, bool) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.Actor{}, false
	}
	roleStr, _ := claims["role"].(string)
	role := user.Role(roleStr)
	if !role.IsValid() {
		return user.Actor{}, false
	}
	// employee_id is null for admin accounts without an employee record
	employeeID, _ := claims["employee_id"].(string)

	return user.Actor{UserID: userID, EmployeeID: employeeID, Role: role}, true
}

// ActorFromContext returns the identity stored by AuthRequired.
func ActorFromContext(ctx context.Context) (user.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(user.Actor)
	return actor, ok
}

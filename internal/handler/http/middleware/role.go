package middleware

import (
	"net/http"

	"github.com/attendancepro/attendance-backend-go/internal/domain/company"
	"github.com/attendancepro/attendance-backend-go/internal/domain/user"
	"github.com/attendancepro/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func roleFromContext(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// AdminOnly requires the company admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role != user.RoleAdmin {
			response.HandleError(w, company.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SuperAdminOnly requires the platform owner role.
func SuperAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromContext(r)
		if !ok || role != user.RoleSuperAdmin {
			response.HandleError(w, company.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

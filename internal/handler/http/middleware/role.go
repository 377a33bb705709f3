package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/domain/employee"
	"github.com/peopleops-hr/attendance-backend-go/internal/handler/http/response"
)

func roleFromContext(r *http.Request) employee.Role {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	roleStr, _ := claims["role"].(string)
	return employee.Role(roleStr)
}

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if roleFromContext(r) != employee.RoleAdmin {
			response.Forbidden(w, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireManager requires the manager or admin role
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := roleFromContext(r)
		if role != employee.RoleManager && role != employee.RoleAdmin {
			response.Forbidden(w, "Manager access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/peopleops-hr/attendance-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a valid access token. Token
// verification itself happens in jwtauth.Verifier; this enforces the
// result and the claims the engine relies on.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Missing access token")
				return
			}

			if employeeID, ok := claims["employee_id"].(string); !ok || employeeID == "" {
				response.Unauthorized(w, "Token is missing the employee_id claim")
				return
			}
			if companyID, ok := claims["company_id"].(string); !ok || companyID == "" {
				response.Unauthorized(w, "Token is missing the company_id claim")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

package http

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
)

// tokenClaims are the identity claims the engine reads from access
// tokens. Tokens are minted by the external identity service.
type tokenClaims struct {
	EmployeeID string
	CompanyID  string
	UserID     string
	Role       string
}

func claimsFromRequest(r *http.Request) (tokenClaims, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return tokenClaims{}, err
	}

	tc := tokenClaims{}
	tc.EmployeeID, _ = claims["employee_id"].(string)
	tc.CompanyID, _ = claims["company_id"].(string)
	tc.UserID, _ = claims["user_id"].(string)
	tc.Role, _ = claims["role"].(string)
	return tc, nil
}

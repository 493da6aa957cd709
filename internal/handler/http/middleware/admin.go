package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/auth"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/user"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/handler/http/response"
)

// AdminOnly gates the admin surface on the role claim. A missing or
// unknown role never passes; it degrades to employee, not admin.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || user.Role(role) != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

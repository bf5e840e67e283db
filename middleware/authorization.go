package middleware

import (
	"net/http"

	"p9e.in/obstacle/utils"
)

// RequireAction gates a handler on the role/action table. The check runs
// before any handler code, so a denied caller learns nothing about whether
// the target resource exists.
func RequireAction(action utils.Action, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetClaims(r)
		if claims == nil {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if !utils.RoleAllowed(claims.Role, action) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireActionMW is the mux middleware form of RequireAction, for gating a
// whole subrouter.
func RequireActionMW(action utils.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r)
			if claims == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if !utils.RoleAllowed(claims.Role, action) {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

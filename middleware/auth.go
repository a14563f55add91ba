package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"go-storefront/models"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// ClaimsFrom returns the claims attached by AuthMiddleware
func ClaimsFrom(ctx context.Context) (*utils.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*utils.Claims)
	return claims, ok
}

func deny(w http.ResponseWriter, r *http.Request, status int, msg string) {
	log.Printf("[%s] %s %s: %s", utils.RequestIDFrom(r.Context()), r.Method, r.URL.Path, msg)
	utils.WriteJSON(w, status, map[string]string{"message": msg})
}

// AuthMiddleware verifies JWT tokens and attaches user information to the context
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			deny(w, r, http.StatusUnauthorized, "Invalid or missing Authorization header")
			return
		}

		claims, err := utils.ParseJWT(parts[1])
		if errors.Is(err, utils.ErrTokenExpired) {
			deny(w, r, http.StatusUnauthorized, "Token has expired")
			return
		}
		if err != nil {
			deny(w, r, http.StatusUnauthorized, "Invalid token")
			return
		}

		// Attach user information to the request context
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || claims.Role != models.RoleAdmin {
			deny(w, r, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SelfOrAdminMiddleware lets a request through when the {userId} route
// variable names the authenticated user, or the user is an admin.
func SelfOrAdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok || (claims.ID != mux.Vars(r)["userId"] && claims.Role != models.RoleAdmin) {
			deny(w, r, http.StatusForbidden, "Forbidden: not your account")
			return
		}
		next.ServeHTTP(w, r)
	})
}

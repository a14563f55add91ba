package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go-storefront/models"
	"go-storefront/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	utils.JwtKey = []byte("middleware-test-secret")
}

func okHandler(w http.ResponseWriter, r *http.Request) {
	claims, _ := ClaimsFrom(r.Context())
	w.WriteHeader(http.StatusOK)
	if claims != nil {
		_, _ = w.Write([]byte(claims.ID))
	}
}

func token(t *testing.T, id, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := utils.GenerateJWT(id, id+"@x.com", role, ttl)
	require.NoError(t, err)
	return tok
}

func serve(h http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	h := AuthMiddleware(http.HandlerFunc(okHandler))

	otherKey := jwt.NewWithClaims(jwt.SigningMethodHS256, &utils.Claims{
		ID:             "u1",
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()},
	})
	forged, err := otherKey.SignedString([]byte("not-the-secret"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, `{"message":"Invalid or missing Authorization header"}`},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, `{"message":"Invalid or missing Authorization header"}`},
		{"empty token", "Bearer ", http.StatusUnauthorized, `{"message":"Invalid or missing Authorization header"}`},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized, `{"message":"Invalid token"}`},
		{"wrong key", "Bearer " + forged, http.StatusUnauthorized, `{"message":"Invalid token"}`},
		{"expired", "Bearer " + token(t, "u1", "", -time.Minute), http.StatusUnauthorized, `{"message":"Token has expired"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.header)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}

	rec := serve(h, "Bearer "+token(t, "u1", "", time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestAdminMiddleware(t *testing.T) {
	h := AuthMiddleware(AdminMiddleware(http.HandlerFunc(okHandler)))

	rec := serve(h, "Bearer "+token(t, "u1", models.RoleUser, time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"message":"Forbidden: Admins only"}`, rec.Body.String())

	rec = serve(h, "Bearer "+token(t, "u1", "", time.Hour))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(h, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, "Bearer "+token(t, "a1", models.RoleAdmin, time.Hour))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSelfOrAdminMiddleware(t *testing.T) {
	router := mux.NewRouter()
	router.Handle("/users/{userId}", AuthMiddleware(SelfOrAdminMiddleware(http.HandlerFunc(okHandler))))

	do := func(path, tok string) int {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, do("/users/u1", token(t, "u1", "", time.Hour)))
	assert.Equal(t, http.StatusForbidden, do("/users/u2", token(t, "u1", "", time.Hour)))
	assert.Equal(t, http.StatusOK, do("/users/u2", token(t, "a1", models.RoleAdmin, time.Hour)))
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = utils.RequestIDFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	const given = "0b6f1c36-9a4e-4a43-9f43-6a4a1b0f2f10"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, given, seen)
	assert.Equal(t, given, rec.Header().Get(RequestIDHeader))
}

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shop-assistant-api/internal/apperror"
	jwtinfra "github.com/shop-assistant-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestRequireRole_NoClaimsInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	claims := &jwtinfra.Claims{Role: "user"}
	ctx := context.WithValue(context.Background(), claimsKey, claims)
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_CorrectRole(t *testing.T) {
	claims := &jwtinfra.Claims{Role: "admin"}
	ctx := context.WithValue(context.Background(), claimsKey, claims)
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole_MultipleAllowedRoles(t *testing.T) {
	claims := &jwtinfra.Claims{Role: "user"}
	ctx := context.WithValue(context.Background(), claimsKey, claims)
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rr := httptest.NewRecorder()
	RequireRole("admin", "user")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole_ForbiddenBody(t *testing.T) {
	ctx := WithClaims(context.Background(), &jwtinfra.Claims{Role: "user"})
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	req = req.WithContext(apperror.WithLocale(req.Context(), language.English))
	rr := httptest.NewRecorder()
	RequireRole("admin")(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.JSONEq(t, `{"error":"forbidden","message":"You are not allowed to do this"}`, rr.Body.String())
}

func TestLocale_FallsBackToDefault(t *testing.T) {
	var got apperror.Messages
	h := Locale(language.English)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = apperror.ContextMessages(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "fr-FR")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, apperror.MessagesFor(language.English), got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9")
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, apperror.MessagesFor(language.Vietnamese), got)
}

package http

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shop-assistant-api/internal/apperror"
	"github.com/shop-assistant-api/internal/config"
	"github.com/shop-assistant-api/internal/domain"
	jwtinfra "github.com/shop-assistant-api/internal/infrastructure/jwt"
	"github.com/shop-assistant-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestRouter(t *testing.T) (http.Handler, *jwtinfra.Provider) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	p := jwtinfra.NewProviderFromKeys(key, &key.PublicKey, time.Hour, time.Hour)

	cfg := &config.Config{Locale: language.Vietnamese, AllowedOrigins: []string{"*"}}
	return NewRouter(cfg, &Deps{
		Tokens:     p,
		Classifier: apperror.NewClassifier(nil, cfg.Locale),
		Mapper:     mapper.New(),
	}), p
}

func serve(h http.Handler, method, path, token, acceptLanguage string) *httptest.ResponseRecorder {
	return serveBody(h, method, path, "", token, acceptLanguage)
}

func serveBody(h http.Handler, method, path, body, token, acceptLanguage string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if acceptLanguage != "" {
		req.Header.Set("Accept-Language", acceptLanguage)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := serve(r, http.MethodGet, "/v1/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "ok"}`, rec.Body.String())
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := serve(r, http.MethodGet, "/v1/nope", "", "en")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body apperror.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeNotFound, body.Error)
	assert.Equal(t, apperror.MessagesFor(language.English).RouteNotFound, body.Message)
}

func TestRouter_AuthenticatedRouteNeedsToken(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := serve(r, http.MethodGet, "/v1/shops", "", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var body apperror.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeUnauthorized, body.Error)
	assert.Equal(t, apperror.MessagesFor(language.Vietnamese).Unauthorized, body.Message)
}

func TestRouter_CreditIsAdminOnly(t *testing.T) {
	r, p := newTestRouter(t)
	token, err := p.Sign(3, domain.RoleUser)
	require.NoError(t, err)

	rec := serve(r, http.MethodPost, "/v1/payments", token, "")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var body apperror.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeForbidden, body.Error)
}

func TestRouter_PanicIsServerError(t *testing.T) {
	// No user service is wired, so the register handler panics on a nil interface.
	r, _ := newTestRouter(t)
	rec := serveBody(r, http.MethodPost, "/v1/auth/register", `{"email":"a@b.com","password":"secret"}`, "", "en")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var body apperror.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeServerError, body.Error)
	assert.Equal(t, apperror.MessagesFor(language.English).ServerError, body.Message)
	assert.NotContains(t, rec.Body.String(), "nil pointer")
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := serve(r, http.MethodPatch, "/v1/health", "", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	var body apperror.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperror.CodeMethodNotAllowed, body.Error)
	assert.Equal(t, apperror.MessagesFor(language.Vietnamese).MethodNotAllowed, body.Message)
}

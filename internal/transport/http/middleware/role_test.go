package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-notify-api/internal/domain"
	jwtinfra "github.com/go-notify-api/internal/infrastructure/jwt"
	"github.com/stretchr/testify/assert"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func withClaims(r *http.Request, claims *jwtinfra.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsKey, claims)
	return r.WithContext(ctx)
}

func TestRequireRole_NoClaimsInContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleSystem)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestRequireRole_WrongRole(t *testing.T) {
	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{Role: domain.RoleSales})
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleSystem)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRequireRole_CorrectRole(t *testing.T) {
	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{Role: domain.RoleSystem})
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleSystem)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRequireRole_MultipleAllowedRoles(t *testing.T) {
	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), &jwtinfra.Claims{Role: domain.RoleStockist})
	rr := httptest.NewRecorder()
	RequireRole(domain.RoleSystem, domain.RoleStockist)(http.HandlerFunc(okHandler)).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestReaderFromContext(t *testing.T) {
	claims := &jwtinfra.Claims{Identity: "supplier-7", Role: domain.RoleSupplier, Tenant: "Supplier X"}
	req := withClaims(httptest.NewRequest(http.MethodGet, "/", nil), claims)

	reader, ok := ReaderFromContext(req.Context())

	assert.True(t, ok)
	assert.Equal(t, domain.Reader{Identity: "supplier-7", Role: domain.RoleSupplier, Tenant: "Supplier X"}, reader)
}

func TestReaderFromContext_Missing(t *testing.T) {
	_, ok := ReaderFromContext(context.Background())
	assert.False(t, ok)
}

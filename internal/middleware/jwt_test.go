package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/padelgestionado/padel-club-api/internal/utils"
)

const testSecret = "unit-test-secret"

func runProtected(t *testing.T, authHeader string, roles ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	wrapped := JWTAuth(testSecret)(h)
	if len(roles) > 0 {
		wrapped = JWTAuth(testSecret)(RequireRole(roles...)(h))
	}
	if err := wrapped(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec := runProtected(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec := runProtected(t, "Bearer not-a-jwt")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthWrongSecret(t *testing.T) {
	tok, err := utils.NewAccessToken("another-secret", 1, "ADMIN", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := runProtected(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, "ADMIN", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := runProtected(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestRequireRoleRejectsPlayer(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 2, "JUGADOR", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := runProtected(t, "Bearer "+tok.Token, "ADMIN")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestRequireRoleAcceptsAdmin(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 1, "ADMIN", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec := runProtected(t, "Bearer "+tok.Token, "ADMIN")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

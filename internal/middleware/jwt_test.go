package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/table-reservation/internal/utils"
)

const testSecret = "mw-test-secret"

func invoke(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := JWTAuth(testSecret)(next)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec, c
}

func TestJWTAuth_ValidTokenSetsIdentity(t *testing.T) {
	tok, err := utils.NewAccessToken(testSecret, 7, "ann@example.com", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	rec, c := invoke(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if email, _ := c.Get("email").(string); email != "ann@example.com" {
		t.Fatalf("email in context = %q", email)
	}
	if c.Get("user_id") == nil {
		t.Fatalf("user_id missing from context")
	}
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, _ := invoke(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	rec, _ := invoke(t, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestJWTAuth_WrongSecretRejected(t *testing.T) {
	tok, err := utils.NewAccessToken("another-secret", 7, "ann@example.com", 5)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := invoke(t, "Bearer "+tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

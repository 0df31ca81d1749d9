package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
)

const testSecret = "negotiation-test-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims accessClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	return token
}

func validClaims(subject uuid.UUID, role string) accessClaims {
	return accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: role,
		Name: "Harbor Fresh Ltd",
	}
}

func callWithToken(t *testing.T, token string) (*httptest.ResponseRecorder, entity.Principal) {
	t.Helper()

	var got entity.Principal
	handler := jwtAuth(testSecret)(func(c echo.Context) error {
		got = principalFrom(c)

		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := handler(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	return rec, got
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	subject := uuid.New()
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(subject, common.RoleBuyer))

	rec, principal := callWithToken(t, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if principal.Id != subject || principal.Role != common.RoleBuyer || principal.Name != "Harbor Fresh Ltd" {
		t.Fatalf("principal not propagated: %+v", principal)
	}
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	rec, _ := callWithToken(t, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	token := signToken(t, "some-other-secret", jwt.SigningMethodHS256, validClaims(uuid.New(), common.RoleBuyer))

	rec, _ := callWithToken(t, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsWrongAlgorithm(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS512, validClaims(uuid.New(), common.RoleBuyer))

	rec, _ := callWithToken(t, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsExpiredToken(t *testing.T) {
	claims := validClaims(uuid.New(), common.RoleBuyer)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	rec, _ := callWithToken(t, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsUnknownRole(t *testing.T) {
	token := signToken(t, testSecret, jwt.SigningMethodHS256, validClaims(uuid.New(), "admin"))

	rec, _ := callWithToken(t, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthRejectsNonUuidSubject(t *testing.T) {
	claims := validClaims(uuid.New(), common.RoleBuyer)
	claims.Subject = "not-a-uuid"
	token := signToken(t, testSecret, jwt.SigningMethodHS256, claims)

	rec, _ := callWithToken(t, token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

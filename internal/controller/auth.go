package controller

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo"

	"github.com/sigasystems/digital-negotiation-book-api/internal/common"
	"github.com/sigasystems/digital-negotiation-book-api/internal/entity"
)

const principalContextKey = "principal"

type accessClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
	Name string `json:"name"`
}

// jwtAuth parses the bearer token and stashes the authenticated principal
// in the request context. Tokens must be HS256; the subject claim carries
// the owner or buyer id.
func jwtAuth(secret string) echo.MiddlewareFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Authentication required"})
			}

			claims := &accessClaims{}
			parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !parsed.Valid {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Invalid or expired token"})
			}

			if claims.Role != common.RoleBusinessOwner && claims.Role != common.RoleBuyer {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Token carries an unknown role"})
			}

			id, err := uuid.Parse(claims.Subject)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{"Token subject is not a valid id"})
			}

			c.Set(principalContextKey, entity.Principal{Id: id, Role: claims.Role, Name: claims.Name})

			return next(c)
		}
	}
}

func principalFrom(c echo.Context) entity.Principal {
	p, _ := c.Get(principalContextKey).(entity.Principal)

	return p
}

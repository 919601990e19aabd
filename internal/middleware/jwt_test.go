package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retailpulse/internal/common"
	"retailpulse/internal/services"
)

const secret = "middleware-secret"

func signed(t *testing.T, claims services.TokenClaims, key string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return token
}

func newServer() *echo.Echo {
	e := echo.New()
	g := e.Group("/api", JWTMiddleware(secret), RequireUser)
	g.GET("/whoami", func(c echo.Context) error {
		userID, _ := common.GetUserIDFromContext(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]string{"user_id": userID.String()})
	})
	return e
}

func TestJWTMiddleware_PopulatesContext(t *testing.T) {
	userID := uuid.New()
	token := signed(t, services.TokenClaims{
		UserID: userID.String(),
		Role:   "user",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, secret)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	newServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), userID.String())
}

func TestJWTMiddleware_Rejects(t *testing.T) {
	valid := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))}
	expired := jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))}

	cases := map[string]string{
		"missing":      "",
		"wrong secret": "Bearer " + signed(t, services.TokenClaims{UserID: uuid.NewString(), RegisteredClaims: valid}, "other"),
		"expired":      "Bearer " + signed(t, services.TokenClaims{UserID: uuid.NewString(), RegisteredClaims: expired}, secret),
		"bad user id":  "Bearer " + signed(t, services.TokenClaims{UserID: "nope", RegisteredClaims: valid}, secret),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if header != "" {
				req.Header.Set(echo.HeaderAuthorization, header)
			}
			rec := httptest.NewRecorder()
			newServer().ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

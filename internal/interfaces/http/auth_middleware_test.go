package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/snowva/business-hub/internal/interfaces/http"
	pkgjwt "github.com/snowva/business-hub/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "business-hub-test"
	testExpMin    = 60
)

// buildProtectedApp wires AuthMiddleware plus RequireRole in front of a
// dummy handler that reports the resolved role.
func buildProtectedApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"user_id": apphttp.GetUserID(c),
				"role":    apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doProtectedRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddlewareAllowsMatchingRole(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, tokenForRole(t, "admin"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsWrongRole(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAuthMiddlewareAllowsAnyListedRole(t *testing.T) {
	app := buildProtectedApp("admin", "staff")
	resp := doProtectedRequest(t, app, tokenForRole(t, "staff"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, "Token abc123")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareBadSignature(t *testing.T) {
	tok, err := pkgjwt.Generate("some-other-secret", testUserID, "admin", testIssuer, testExpMin)
	require.NoError(t, err)
	app := buildProtectedApp("admin")
	resp := doProtectedRequest(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

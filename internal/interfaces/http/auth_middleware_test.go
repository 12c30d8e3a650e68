package http_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/flota-pro/internal/domain/authz"
	apphttp "github.com/tu-usuario/flota-pro/internal/interfaces/http"
	"github.com/tu-usuario/flota-pro/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func buildTestApp() *fiber.App {
	app := fiber.New()
	protected := app.Group("/protegido", apphttp.AuthMiddleware(testSecret))
	protected.Get("/recurso", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	protected.Get("/solo-admin",
		apphttp.RequireRole(string(authz.RoleTriumphAdmin)),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func tokenForRole(t *testing.T, role authz.Role) string {
	t.Helper()
	token, err := jwt.Generate(testSecret, jwt.Identity{
		UserID:       "u-1",
		Role:         string(role),
		DealershipID: "d-1",
	}, "flota-pro-test", 10)
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("GET", "/protegido/recurso", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_HeaderMalformado(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("GET", "/protegido/recurso", nil)
	req.Header.Set("Authorization", "Basic abc123")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenConOtroSecreto(t *testing.T) {
	app := buildTestApp()

	token, err := jwt.Generate("otro-secreto", jwt.Identity{UserID: "u-1", Role: "TRIUMPH_ADMIN"}, "x", 10)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protegido/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenValido(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest("GET", "/protegido/recurso", nil)
	req.Header.Set("Authorization", "Bearer "+tokenForRole(t, authz.RoleDealershipManager))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRole_PorRol(t *testing.T) {
	app := buildTestApp()

	cases := []struct {
		name   string
		role   authz.Role
		status int
	}{
		{"admin accede", authz.RoleTriumphAdmin, fiber.StatusOK},
		{"manager de concesionario rechazado", authz.RoleDealershipManager, fiber.StatusForbidden},
		{"cliente rechazado", authz.RoleClient, fiber.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protegido/solo-admin", nil)
			req.Header.Set("Authorization", "Bearer "+tokenForRole(t, tc.role))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

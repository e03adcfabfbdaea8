package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/Inventario-epi/internal/interfaces/http"
	"github.com/jhoicas/Inventario-epi/pkg/jwt"
)

const (
	testJWTSecret = "secret-de-prueba-http"
	testUserID    = "U-7"
	testCompanyID = "EMP-3"
)

func signToken(t *testing.T, role string, ttl time.Duration) string {
	t.Helper()
	tok, err := jwt.Generate(testJWTSecret, jwt.Identity{UserID: testUserID, CompanyID: testCompanyID, Role: role}, "test", ttl)
	require.NoError(t, err)
	return "Bearer " + tok
}

func tokenForRole(t *testing.T, role string) string {
	return signToken(t, role, time.Hour)
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── Matriz de acceso a /api/analytics ────────────────────────────────────────

func TestAnalyticsRutas_MatrizDeRoles(t *testing.T) {
	const (
		report  = "/api/analytics/report"
		ranking = "/api/analytics/rankings/setor"
		cache   = "/api/analytics/cache"
	)
	cases := []struct {
		role   string
		method string
		path   string
		status int
	}{
		{jwt.RoleAdmin, http.MethodGet, report, http.StatusOK},
		{jwt.RoleAlmoxarife, http.MethodGet, report, http.StatusOK},
		{jwt.RoleSeguranca, http.MethodGet, report, http.StatusOK},
		{jwt.RoleColaborador, http.MethodGet, report, http.StatusForbidden},

		{jwt.RoleAlmoxarife, http.MethodGet, ranking, http.StatusOK},
		{jwt.RoleSeguranca, http.MethodGet, ranking, http.StatusOK},
		{jwt.RoleColaborador, http.MethodGet, ranking, http.StatusForbidden},

		{jwt.RoleAdmin, http.MethodDelete, cache, http.StatusNoContent},
		{jwt.RoleAlmoxarife, http.MethodDelete, cache, http.StatusForbidden},
		{jwt.RoleSeguranca, http.MethodDelete, cache, http.StatusForbidden},
		{jwt.RoleColaborador, http.MethodDelete, cache, http.StatusForbidden},
	}
	app := buildAnalyticsApp(&stubRepo{})
	for _, tc := range cases {
		t.Run(tc.role+" "+tc.method+" "+tc.path, func(t *testing.T) {
			resp := call(t, app, tc.method, tc.path, tokenForRole(t, tc.role))
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", decodeError(t, resp).Code)
			}
		})
	}
}

func TestAnalyticsRutas_RolEnMayusculasSeNormaliza(t *testing.T) {
	app := buildAnalyticsApp(&stubRepo{})
	resp := call(t, app, http.MethodGet, "/api/analytics/report", tokenForRole(t, "SEGURANCA"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ── Rechazos del middleware ──────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	cases := []struct {
		nombre string
		header string
		status int
		code   string
	}{
		{"sin header", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema basic", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token expirado", signToken(t, jwt.RoleAdmin, -time.Minute), http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token sin rol", signToken(t, "", time.Hour), http.StatusUnauthorized, "MISSING_ROLE"},
	}
	app := buildAnalyticsApp(&stubRepo{})
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			resp := call(t, app, http.MethodGet, "/api/analytics/report", tc.header)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeError(t, resp).Code)
		})
	}
}

// ── Locals ───────────────────────────────────────────────────────────────────

func TestAuthMiddleware_CargaIdentidadEnLocals(t *testing.T) {
	app := fiber.New()
	app.Get("/whoami", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"company_id": apphttp.GetCompanyID(c),
			"role":       apphttp.GetRole(c),
		})
	})

	resp := call(t, app, http.MethodGet, "/whoami", tokenForRole(t, jwt.RoleSeguranca))
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{
		"user_id": testUserID, "company_id": testCompanyID, "role": jwt.RoleSeguranca,
	}, body)
}

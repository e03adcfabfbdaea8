package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/internal/application/dto"
	"github.com/jhoicas/Inventario-epi/internal/domain"
	apphttp "github.com/jhoicas/Inventario-epi/internal/interfaces/http"
)

type stubLogin struct{}

func (stubLogin) Login(_ context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	switch {
	case in.Email == "" || in.Password == "":
		return nil, domain.ErrInvalidInput
	case in.Email == "inativo@epi.test":
		return nil, domain.ErrForbidden
	case in.Password != "clave-segura":
		return nil, domain.ErrUnauthorized
	}
	return &dto.LoginResponse{Token: "tok", ExpiresIn: 3600, User: dto.UserResponse{ID: "U1"}}, nil
}

func postLogin(t *testing.T, body string) *http.Response {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{AuthUC: stubLogin{}, JWTSecret: testJWTSecret})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestLogin_Handler_Codigos(t *testing.T) {
	cases := []struct {
		nombre string
		body   string
		status int
		code   string
	}{
		{"ok", `{"email":"ana@epi.test","password":"clave-segura"}`, http.StatusOK, ""},
		{"password incorrecto", `{"email":"ana@epi.test","password":"x"}`, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"cuenta inactiva", `{"email":"inativo@epi.test","password":"clave-segura"}`, http.StatusForbidden, "FORBIDDEN"},
		{"campos vacíos", `{"email":"ana@epi.test"}`, http.StatusBadRequest, "VALIDATION"},
		{"cuerpo inválido", `{`, http.StatusBadRequest, "INVALID_BODY"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			resp := postLogin(t, tc.body)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			if tc.code != "" {
				assert.Equal(t, tc.code, decodeError(t, resp).Code)
			}
		})
	}
}

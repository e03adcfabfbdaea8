package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-epi/pkg/jwt"
)

const secret = "secret-de-prueba"

var ana = jwt.Identity{UserID: "U1", CompanyID: "C1", Role: " Almoxarife "}

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	tok, err := jwt.Generate(secret, ana, "inventario-epi", time.Hour)
	require.NoError(t, err)

	id, err := jwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: "U1", CompanyID: "C1", Role: jwt.RoleAlmoxarife}, id)
}

func TestParse_Rechazos(t *testing.T) {
	valido, err := jwt.Generate(secret, ana, "", time.Hour)
	require.NoError(t, err)
	expirado, err := jwt.Generate(secret, ana, "", -time.Minute)
	require.NoError(t, err)
	sinEmpresa, err := jwt.Generate(secret, jwt.Identity{UserID: "U1"}, "", time.Hour)
	require.NoError(t, err)
	hs512, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"sub": "U1", "company_id": "C1", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	cases := []struct {
		nombre string
		secret string
		token  string
	}{
		{"expirado", secret, expirado},
		{"otro secret", "otro-secret", valido},
		{"sin empresa", secret, sinEmpresa},
		{"algoritmo no permitido", secret, hs512},
		{"basura", secret, "token.invalido.aqui"},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := jwt.Parse(tc.secret, tc.token)
			assert.ErrorIs(t, err, jwt.ErrInvalidToken)
		})
	}
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", ana, "", time.Hour)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, err = jwt.Parse("", "x")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

package jwt

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles del almacén de EPI.
const (
	RoleAdmin       = "admin"
	RoleAlmoxarife  = "almoxarife" // responsable del almacén de EPI
	RoleSeguranca   = "seguranca"  // técnico de seguridad del trabajo
	RoleColaborador = "colaborador"
)

var (
	ErrEmptySecret  = errors.New("jwt: secret vacío")
	ErrInvalidToken = errors.New("jwt: token inválido")
)

// Identity es lo que el token afirma sobre el usuario.
type Identity struct {
	UserID    string
	CompanyID string
	Role      string // vacío en tokens emitidos antes de existir el claim
}

type claims struct {
	jwt.RegisteredClaims
	CompanyID string `json:"company_id"`
	Role      string `json:"role,omitempty"`
}

// NormalizeRole pasa el rol a minúsculas sin espacios.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// Generate firma un token HS256 para la identidad con la vigencia indicada.
func Generate(secret string, id Identity, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		CompanyID: id.CompanyID,
		Role:      NormalizeRole(id.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
}

// Parse valida firma, algoritmo y expiración y devuelve la identidad.
// Los errores de validación se envuelven en ErrInvalidToken.
func Parse(secret, token string) (Identity, error) {
	if secret == "" {
		return Identity{}, ErrEmptySecret
	}
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" || c.CompanyID == "" {
		return Identity{}, fmt.Errorf("%w: sin usuario o empresa", ErrInvalidToken)
	}
	return Identity{UserID: c.Subject, CompanyID: c.CompanyID, Role: NormalizeRole(c.Role)}, nil
}

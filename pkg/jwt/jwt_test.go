package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	secret  = "test-secret"
	company = "00000000-0000-0000-0000-000000000002"
)

func TestGenerateParse(t *testing.T) {
	for _, role := range []string{"owner", "employee", "customer", "admin"} {
		tok, err := Generate(secret, "u1", company, role, "agenda-api", 5)
		require.NoError(t, err, role)

		user, comp, gotRole, err := Parse(secret, tok)
		require.NoError(t, err, role)
		assert.Equal(t, "u1", user)
		assert.Equal(t, company, comp)
		assert.Equal(t, role, gotRole)
	}
}

func TestGenerate_RolInvalido(t *testing.T) {
	for _, role := range []string{"", "bodeguero", "Admin"} {
		_, err := Generate(secret, "u1", company, role, "agenda-api", 5)
		assert.ErrorIs(t, err, ErrInvalidRole, role)
	}
}

// Un token firmado por otro emisor con un rol fuera del catálogo no se acepta.
func TestParse_RolInvalido(t *testing.T) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           "u1",
		CompanyID:        company,
		Role:             "superuser",
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	_, _, _, err = Parse(secret, tok)
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestParse_Rechazos(t *testing.T) {
	expired, err := Generate(secret, "u1", company, "owner", "agenda-api", -1)
	require.NoError(t, err)
	valid, err := Generate(secret, "u1", company, "owner", "agenda-api", 5)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{Role: "owner"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, _, err = Parse(secret, expired)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	_, _, _, err = Parse("otro-secret", valid)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	_, _, _, err = Parse(secret, none)
	assert.Error(t, err, "alg none")

	_, _, _, err = Parse("", valid)
	assert.ErrorIs(t, err, ErrEmptySecret)
}

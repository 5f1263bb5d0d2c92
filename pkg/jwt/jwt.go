// Package jwt emite y valida los tokens HS256 de la sesión de Agenda. El token
// lleva la empresa y el rol con los que se decide el acceso a los permisos.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jhoicas/Agenda-api/internal/domain/entity"
)

var (
	// ErrEmptySecret el servidor arrancó sin JWT_SECRET.
	ErrEmptySecret = errors.New("jwt: secret vacío")
	// ErrInvalidRole el rol no es owner, employee, customer ni admin.
	ErrInvalidRole = errors.New("jwt: rol inválido")
)

// Claims de sesión. CompanyID puede venir vacío solo para RoleAdmin.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	CompanyID string `json:"company_id"`
	Role      string `json:"role"`
}

// ValidRole informa si role es uno de los roles de sesión.
func ValidRole(role string) bool {
	switch role {
	case entity.RoleOwner, entity.RoleEmployee, entity.RoleCustomer, entity.RoleAdmin:
		return true
	}
	return false
}

// Generate firma un token para userID en companyID con el rol indicado.
func Generate(secret, userID, companyID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	if !ValidRole(role) {
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		CompanyID: companyID,
		Role:      role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma, vencimiento y rol, y devuelve userID, companyID y role.
func Parse(secret, tokenString string) (userID, companyID, role string, err error) {
	if secret == "" {
		return "", "", "", ErrEmptySecret
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", "", "", err
	}
	if !token.Valid {
		return "", "", "", errors.New("jwt: token inválido")
	}
	if !ValidRole(claims.Role) {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidRole, claims.Role)
	}
	return claims.UserID, claims.CompanyID, claims.Role, nil
}

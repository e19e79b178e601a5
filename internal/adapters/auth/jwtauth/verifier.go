package jwtauth

import (
	"context"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"petsafe-api/internal/ports/auth"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims es el payload esperado en el token de sesión.
// clinic_id identifica el tenant; sin él el token no sirve.
type sessionClaims struct {
	ClinicID string `json:"clinic_id"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier valida tokens HS256 emitidos por el servicio de cuentas.
// Implementa auth.AuthVerifier.
type Verifier struct {
	secret []byte
}

func New(secret string) *Verifier {
	return &Verifier{secret: []byte(secret)}
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return auth.Claims{}, ErrInvalidToken
	}

	if strings.TrimSpace(claims.ClinicID) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{
		ClinicID: claims.ClinicID,
		Email:    claims.Email,
	}, nil
}

package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kozydev/kozy-server/internal/model"
)

// Config holds token issuance parameters. It is passed by value at
// construction; there is no process-wide signing state.
type Config struct {
	Secret        string
	Issuer        string
	Audience      string
	ExpireMinutes int
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	cfg Config
}

// NewJWT creates a new JWT token manager. An empty secret is accepted here
// and rejected at issuance time.
func NewJWT(cfg Config) *JWT {
	return &JWT{cfg: cfg}
}

var _ model.TokenManager = (*JWT)(nil)

// Generate creates a signed token for the given subject. The subject is not
// validated; any string, including an empty one, is embedded as-is.
func (j *JWT) Generate(subject string) (string, error) {
	if j.cfg.Secret == "" {
		return "", model.ErrMissingSigningKey
	}

	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    j.cfg.Issuer,
		Audience:  jwt.ClaimStrings{j.cfg.Audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(j.cfg.ExpireMinutes) * time.Minute)),
	})

	tokenString, err := token.SignedString([]byte(j.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates signature, expiry, issuer and audience and returns the
// subject claim.
func (j *JWT) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.cfg.Secret), nil
	}, jwt.WithIssuer(j.cfg.Issuer), jwt.WithAudience(j.cfg.Audience), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("token is invalid")
	}
	return claims.Subject, nil
}

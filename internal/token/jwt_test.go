package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kozydev/kozy-server/internal/model"
)

func testConfig() Config {
	return Config{
		Secret:        "MySecretKeyForJWTTokenGeneration1234567890",
		Issuer:        "TestIssuer",
		Audience:      "TestAudience",
		ExpireMinutes: 60,
	}
}

func TestJWT_Generate_Roundtrip(t *testing.T) {
	j := NewJWT(testConfig())

	tokenString, err := j.Generate("test-user-id")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	subject, err := j.Parse(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "test-user-id", subject)
}

func TestJWT_Generate_EmptySubject(t *testing.T) {
	j := NewJWT(testConfig())

	tokenString, err := j.Generate("")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	subject, err := j.Parse(tokenString)
	require.NoError(t, err)
	assert.Empty(t, subject)
}

func TestJWT_Generate_EmptySecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	j := NewJWT(cfg)

	_, err := j.Generate("test-user-id")
	require.ErrorIs(t, err, model.ErrMissingSigningKey)
}

func TestJWT_Generate_Claims(t *testing.T) {
	cfg := testConfig()
	j := NewJWT(cfg)

	tokenString, err := j.Generate("subject-id")
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "subject-id", claims.Subject)
	assert.Equal(t, cfg.Issuer, claims.Issuer)
	assert.Equal(t, jwt.ClaimStrings{cfg.Audience}, claims.Audience)
	assert.WithinDuration(t, time.Now().Add(60*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestJWT_Parse_WrongIssuer(t *testing.T) {
	issuerCfg := testConfig()
	issuerCfg.Issuer = "OtherIssuer"

	tokenString, err := NewJWT(issuerCfg).Generate("test-user-id")
	require.NoError(t, err)

	_, err = NewJWT(testConfig()).Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_Parse_WrongAudience(t *testing.T) {
	audCfg := testConfig()
	audCfg.Audience = "OtherAudience"

	tokenString, err := NewJWT(audCfg).Generate("test-user-id")
	require.NoError(t, err)

	_, err = NewJWT(testConfig()).Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_Parse_Expired(t *testing.T) {
	cfg := testConfig()
	cfg.ExpireMinutes = -1
	j := NewJWT(cfg)

	tokenString, err := j.Generate("test-user-id")
	require.NoError(t, err)

	_, err = j.Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_Parse_WrongSecret(t *testing.T) {
	tokenString, err := NewJWT(testConfig()).Generate("test-user-id")
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Secret = "SomeOtherSecretKeyEntirely0987654321"

	_, err = NewJWT(otherCfg).Parse(tokenString)
	require.Error(t, err)
}

func TestJWT_Parse_Garbage(t *testing.T) {
	_, err := NewJWT(testConfig()).Parse("not.a.token")
	require.Error(t, err)
}

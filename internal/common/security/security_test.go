package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager([]byte("test-secret"), time.Hour)

	tokenString, session, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, session.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), session.ExpiresAt, 5*time.Second)

	token, err := tm.Auth.Decode(tokenString)
	require.NoError(t, err)
	claims := jwt.MapClaims(token.PrivateClaims())

	userID, err := GetUserIDFromClaims(claims)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, session.TokenID, token.JwtID())
}

func TestClaimHelpersRejectMissing(t *testing.T) {
	_, err := GetUserIDFromClaims(jwt.MapClaims{})
	assert.Error(t, err)
	_, err = GetTokenIDFromClaims(jwt.MapClaims{"jti": 42})
	assert.Error(t, err)
}

func signIdentity(t *testing.T, secret string, claims IdentityClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestIdentityVerifier(t *testing.T) {
	v := NewIdentityVerifier([]byte("idp-secret"), "https://idp.example")
	valid := IdentityClaims{
		Email:     "ada@example.com",
		FirstName: "Ada",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "idp|123",
			Issuer:    "https://idp.example",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}

	claims, err := v.Verify(signIdentity(t, "idp-secret", valid))
	require.NoError(t, err)
	assert.Equal(t, "idp|123", claims.Subject)
	assert.Equal(t, "Ada", claims.FirstName)

	_, err = v.Verify(signIdentity(t, "wrong-secret", valid))
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)

	wrongIssuer := valid
	wrongIssuer.Issuer = "https://elsewhere.example"
	_, err = v.Verify(signIdentity(t, "idp-secret", wrongIssuer))
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	_, err = v.Verify(signIdentity(t, "idp-secret", expired))
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)

	noSubject := valid
	noSubject.Subject = ""
	_, err = v.Verify(signIdentity(t, "idp-secret", noSubject))
	assert.ErrorIs(t, err, ErrInvalidIdentityToken)
}

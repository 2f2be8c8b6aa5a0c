package security

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the claims the external identity provider signs for a
// logged-in user. Subject is the stable user id.
type IdentityClaims struct {
	Email           string `json:"email,omitempty"`
	FirstName       string `json:"first_name,omitempty"`
	LastName        string `json:"last_name,omitempty"`
	ProfileImageURL string `json:"profile_image_url,omitempty"`
	jwt.RegisteredClaims
}

type IdentityVerifier struct {
	secret []byte
	issuer string
}

func NewIdentityVerifier(secret []byte, issuer string) *IdentityVerifier {
	return &IdentityVerifier{secret: secret, issuer: issuer}
}

var ErrInvalidIdentityToken = errors.New("invalid identity token")

func (v *IdentityVerifier) Verify(tokenString string) (*IdentityClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &IdentityClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIdentityToken, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidIdentityToken)
	}
	return claims, nil
}

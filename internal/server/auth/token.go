package auth

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/messagely/messagely/internal/common"
)

// Claims is the identity payload embedded in a session token.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// TokenService mints and verifies HS256 session tokens with a server-held
// secret. The token is the whole session: nothing is stored server-side.
// No expiry claim is set or checked, so a token stays valid until the
// signing key changes.
type TokenService struct {
	secretKey []byte
}

func NewTokenService(secretKey []byte) *TokenService {
	return &TokenService{secretKey: secretKey}
}

// Issue signs a token carrying the given username.
func (s *TokenService) Issue(username string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Username: username})
	return token.SignedString(s.secretKey)
}

// Verify checks the signature and returns the embedded claims. Every
// failure mode (malformed token, wrong signature, wrong key) maps to the
// same common.ErrInvalidToken so callers cannot learn why a token was
// rejected.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
)

type tokenClaims struct {
	jwt.RegisteredClaims
}

// TokenSigner produces and checks the cookie value: an HS256 token whose jti
// is the session id and whose sub is the user id.
type TokenSigner struct {
	secret []byte
	issuer string
}

func NewTokenSigner(secret string) (*TokenSigner, error) {
	if len(secret) < constants.SessionSecretMinSize {
		return nil, fmt.Errorf("session secret must be at least %d bytes", constants.SessionSecretMinSize)
	}
	return &TokenSigner{secret: []byte(secret), issuer: constants.SessionTokenIssuer}, nil
}

func (s *TokenSigner) Sign(sess Session) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sess.ID,
			Subject:   sess.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the signature, issuer and expiry of raw and returns the
// session id and user id it names.
func (s *TokenSigner) Parse(raw string, now time.Time) (sessionID, userID string, err error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", ErrSessionExpired
		}
		return "", "", ErrInvalidToken
	}

	if claims.ID == "" || claims.Subject == "" {
		return "", "", ErrInvalidToken
	}
	return claims.ID, claims.Subject, nil
}

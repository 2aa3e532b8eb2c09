package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mdillard/todoapi/internal/model"
)

// Token decode errors
var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
)

// Claims is the token payload: the subject user id plus registered claims
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies compact self-contained bearer tokens.
// Tokens are HS256 JWTs carrying the subject user id, issued-at and expiry;
// validity is purely a function of signature and expiry, so no token state
// is kept server-side.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	leeway time.Duration
}

// NewTokenCodec creates a TokenCodec with the given signing key, token
// lifetime and clock-skew leeway
func NewTokenCodec(secret []byte, ttl, leeway time.Duration) *TokenCodec {
	return &TokenCodec{secret: secret, ttl: ttl, leeway: leeway}
}

// Encode mints a signed token for userID, valid from now until now+TTL
func (c *TokenCodec) Encode(userID model.UserID, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(c.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: int64(userID),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(int64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Decode verifies tokenString as of now and returns the subject user id.
// The signature is verified before any claim is trusted. Failures are one
// of ErrTokenMalformed, ErrInvalidSignature or ErrTokenExpired; an
// issued-at more than the leeway in the future counts as malformed.
// Leeway grants issued-at grace only and never extends a token's lifetime.
func (c *TokenCodec) Decode(tokenString string, now time.Time) (model.UserID, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(c.leeway),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		default:
			return 0, ErrTokenMalformed
		}
	}

	// The library applies leeway to expiry as well; re-check it strictly
	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return 0, ErrTokenExpired
	}

	return model.UserID(claims.UserID), nil
}

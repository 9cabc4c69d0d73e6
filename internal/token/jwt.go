package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wegoagain-dev/ECS-GymFuel/internal/model"
)

// ErrInvalid is returned for every token that fails verification. The cause
// (bad signature, wrong algorithm, malformed input, expiry) is never exposed.
var ErrInvalid = errors.New("invalid token")

// DefaultTTL is the lifetime of a token when no ttl is configured.
const DefaultTTL = 1440 * time.Minute

var supportedMethods = map[string]jwt.SigningMethod{
	jwt.SigningMethodHS256.Alg(): jwt.SigningMethodHS256,
	jwt.SigningMethodHS384.Alg(): jwt.SigningMethodHS384,
	jwt.SigningMethodHS512.Alg(): jwt.SigningMethodHS512,
}

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager with HMAC-signed tokens carrying "sub" and "exp".
type JWT struct {
	secretKey []byte
	method    jwt.SigningMethod
	now       func() time.Time
}

// Option configures a JWT.
type Option func(*JWT)

// WithClock replaces the time source used for issuing and verifying.
func WithClock(now func() time.Time) Option {
	return func(j *JWT) {
		j.now = now
	}
}

// NewJWT creates a token codec for the given secret and algorithm identifier.
func NewJWT(secretKey, algorithm string, opts ...Option) (*JWT, error) {
	if secretKey == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	method, ok := supportedMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	j := &JWT{
		secretKey: []byte(secretKey),
		method:    method,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// Issue signs a token for the lower-cased subject that expires after ttl.
func (j *JWT) Issue(subject string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := j.now()
	token := jwt.NewWithClaims(j.method, jwt.RegisteredClaims{
		Subject:   strings.ToLower(subject),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify checks signature, algorithm and expiry and returns the token subject.
func (j *JWT) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalid
	}
	if claims.Subject == "" {
		return "", ErrInvalid
	}
	return claims.Subject, nil
}

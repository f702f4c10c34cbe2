package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "inkwell-api"

// Typed token verification failures. Callers map these to transport
// responses; the service itself never touches HTTP.
var (
	// ErrTokenMalformed indicates the credential could not be parsed.
	ErrTokenMalformed = errors.New("token is malformed")
	// ErrTokenSignatureInvalid indicates the signature check failed.
	ErrTokenSignatureInvalid = errors.New("token signature is invalid")
	// ErrTokenExpired indicates the current time is at or past the
	// token's encoded expiry.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenService issues and verifies signed, time-bounded access tokens.
// The secret and signing algorithm come from configuration, are validated
// once at construction and never change afterwards. Verification is pure
// CPU work with no side effects and no revocation state.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService builds a TokenService from configuration. Only HMAC
// algorithms are accepted since the secret is a shared symmetric key.
func NewTokenService(cfg *config.Config) (*TokenService, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT secret not configured")
	}
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if method == nil {
		return nil, fmt.Errorf("unknown JWT algorithm %q", cfg.JWTAlgorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("JWT algorithm %q is not an HMAC method", cfg.JWTAlgorithm)
	}
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		method: method,
		ttl:    cfg.TokenTTL(),
		now:    time.Now,
	}, nil
}

// WithClock overrides the service's time source. Used by tests to pin the
// verification instant.
func (ts *TokenService) WithClock(now func() time.Time) *TokenService {
	ts.now = now
	return ts
}

// Issue creates a signed token carrying the user's identity and an
// absolute expiry instant.
func (ts *TokenService) Issue(userID uint) (string, error) {
	now := ts.now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": issuer,
		"exp": now.Add(ts.ttl).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
	}
	return jwt.NewWithClaims(ts.method, claims).SignedString(ts.secret)
}

// Verify checks the raw token's signature and expiry and returns the user
// ID it was issued for. Fails with ErrTokenMalformed, ErrTokenSignatureInvalid
// or ErrTokenExpired.
func (ts *TokenService) Verify(raw string) (uint, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{ts.method.Alg()}),
		jwt.WithTimeFunc(ts.now),
		jwt.WithExpirationRequired(),
	)
	token, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenSignatureInvalid
		default:
			return 0, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrTokenMalformed
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, ErrTokenMalformed
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrTokenMalformed
	}
	return uint(userID), nil
}

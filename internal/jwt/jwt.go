package jwt

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultExpiration = 15 * time.Minute

var (
	ErrSecretKeyMissing = errors.New("jwt secret key is not configured")
	ErrTokenMissing     = errors.New("authorization header missing")
	ErrTokenMalformed   = errors.New("invalid authorization header format")
)

// Claims is the access token payload.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWT provides methods to generate and validate access tokens.
type JWT struct {
	secretKey string        // Secret key for signing tokens
	exp       time.Duration // Token expiration duration
	now       func() time.Time
}

// Opt configures a JWT.
type Opt func(*JWT)

// WithSecretKey sets the HMAC signing key.
func WithSecretKey(key string) Opt {
	return func(j *JWT) {
		j.secretKey = key
	}
}

// WithExpiration sets the token lifetime.
func WithExpiration(exp time.Duration) Opt {
	return func(j *JWT) {
		j.exp = exp
	}
}

// New creates a new JWT instance. Without WithSecretKey every call fails
// with ErrSecretKeyMissing.
func New(opts ...Opt) *JWT {
	j := &JWT{
		exp: defaultExpiration,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Generate creates a signed HS256 token for the user.
func (j *JWT) Generate(ctx context.Context, userID int64, email string) (string, error) {
	if j.secretKey == "" {
		return "", ErrSecretKeyMissing
	}

	now := j.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.exp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// Validate checks the signature, signing method and expiry of a token.
func (j *JWT) Validate(ctx context.Context, tokenString string) error {
	_, err := j.GetClaims(ctx, tokenString)
	return err
}

// GetClaims parses a valid token and returns its claims.
func (j *JWT) GetClaims(ctx context.Context, tokenString string) (*Claims, error) {
	if j.secretKey == "" {
		return nil, ErrSecretKeyMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// GetTokenFromRequest extracts the bearer token from the Authorization header.
// A missing header yields ErrTokenMissing, any other shape ErrTokenMalformed.
func (j *JWT) GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrTokenMissing
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", ErrTokenMalformed
	}

	return parts[1], nil
}

type claimsContextKey struct{}

// ContextWithClaims stores verified claims for downstream handlers.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext returns the claims stored by ContextWithClaims.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*Claims)
	return claims, ok && claims != nil
}

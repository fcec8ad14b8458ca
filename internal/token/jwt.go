// Package token issues and validates the bearer tokens handed out at
// sign-in. Tokens are HS256 JWTs carrying the user's email plus whatever
// extra profile fields the client posted.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued token stays valid. There is no refresh
// or rotation; clients sign in again after a year.
const DefaultTTL = 365 * 24 * time.Hour

var (
	// ErrInvalid covers every verification failure: bad signature,
	// unexpected algorithm, expiry, or a missing email claim.
	ErrInvalid = errors.New("invalid token")
	// ErrMissingEmail is returned when asked to issue a token without an email.
	ErrMissingEmail = errors.New("email claim is required")
)

// reserved claims are always set by the service and never copied from
// caller-supplied extras.
var reserved = map[string]bool{"email": true, "exp": true, "iat": true, "nbf": true}

// Claims is the identity payload embedded in a token.
type Claims struct {
	Email     string
	Extra     map[string]any
	ExpiresAt time.Time
}

// Service signs and verifies tokens with a single shared secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService returns a Service using secret. A non-positive ttl falls back
// to DefaultTTL.
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// IssueToken signs c. The result depends only on the claims, the secret and
// the clock, so two calls in the same second yield the same token.
func (s *Service) IssueToken(c Claims) (string, error) {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return "", ErrMissingEmail
	}
	now := s.now().UTC()
	mc := jwt.MapClaims{}
	for k, v := range c.Extra {
		if reserved[k] {
			continue
		}
		mc[k] = v
	}
	mc["email"] = email
	mc["iat"] = now.Unix()
	mc["exp"] = now.Add(s.ttl).Unix()

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, mc).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// VerifyToken validates raw and returns its claims.
func (s *Service) VerifyToken(raw string) (Claims, error) {
	mc := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(raw, mc, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !tok.Valid {
		return Claims{}, ErrInvalid
	}

	email, _ := mc["email"].(string)
	if email == "" {
		return Claims{}, fmt.Errorf("%w: missing email claim", ErrInvalid)
	}
	out := Claims{Email: email, Extra: map[string]any{}}
	if exp, err := mc.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	for k, v := range mc {
		if reserved[k] {
			continue
		}
		out.Extra[k] = v
	}
	return out, nil
}

// Package access holds the request gates that guard privileged routes.
//
// Gates are plain functions over a Decision. Authenticate starts a chain
// from the Authorization header; RequireAdmin and RequireSelf narrow an
// Allow further. A Deny is sticky: once a gate denies, later gates return
// it unchanged without doing any work.
package access

import (
	"context"
	"strings"

	"github.com/iliyamo/medicamp-server/internal/token"
)

// Reason says why a request was denied.
type Reason int

const (
	// None is the zero Reason carried by an Allow.
	None Reason = iota
	// Unauthorized: no token, or a token that failed verification.
	Unauthorized
	// Forbidden: a valid token that lacks the role or identity required.
	Forbidden
)

func (r Reason) String() string {
	switch r {
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "none"
	}
}

// Message is the client-facing text for a denial.
func (r Reason) Message() string {
	switch r {
	case Unauthorized:
		return "unauthorized access"
	case Forbidden:
		return "forbidden access"
	default:
		return ""
	}
}

// Principal is the authenticated caller. It is built once by Authenticate
// and never modified afterwards.
type Principal struct {
	email  string
	claims map[string]any
}

// NewPrincipal copies claims into a Principal.
func NewPrincipal(c token.Claims) Principal {
	cp := make(map[string]any, len(c.Extra))
	for k, v := range c.Extra {
		cp[k] = v
	}
	return Principal{email: c.Email, claims: cp}
}

// Email is the identity the token was issued for.
func (p Principal) Email() string { return p.email }

// Claim returns an extra claim carried in the token.
func (p Principal) Claim(key string) (any, bool) {
	v, ok := p.claims[key]
	return v, ok
}

// Decision is the outcome of a gate: either Allow with a principal or
// Deny with a reason.
type Decision struct {
	principal Principal
	reason    Reason
	allowed   bool
}

// Allow admits p.
func Allow(p Principal) Decision { return Decision{principal: p, allowed: true} }

// Deny rejects the request for r. A None reason is recorded as Unauthorized.
func Deny(r Reason) Decision {
	if r == None {
		r = Unauthorized
	}
	return Decision{reason: r}
}

// Allowed reports whether the request may proceed. The zero Decision is a
// deny.
func (d Decision) Allowed() bool { return d.allowed }

// Principal is only meaningful when Allowed is true.
func (d Decision) Principal() Principal { return d.principal }

// Reason is None for an Allow and Unauthorized for the zero Decision.
func (d Decision) Reason() Reason {
	if !d.allowed && d.reason == None {
		return Unauthorized
	}
	return d.reason
}

// Verifier validates a raw bearer token.
type Verifier interface {
	VerifyToken(raw string) (token.Claims, error)
}

// RoleLookup answers whether an email belongs to an administrator. It must
// treat unknown emails and lookup failures as "not admin".
type RoleLookup interface {
	IsAdmin(ctx context.Context, email string) bool
}

// Authenticate checks the Authorization header value.
func Authenticate(header string, v Verifier) Decision {
	raw, ok := bearer(header)
	if !ok {
		return Deny(Unauthorized)
	}
	claims, err := v.VerifyToken(raw)
	if err != nil {
		return Deny(Unauthorized)
	}
	return Allow(NewPrincipal(claims))
}

// RequireAdmin narrows d to administrators.
func RequireAdmin(ctx context.Context, d Decision, roles RoleLookup) Decision {
	if !d.Allowed() {
		return d
	}
	if !roles.IsAdmin(ctx, d.principal.email) {
		return Deny(Forbidden)
	}
	return d
}

// RequireSelf narrows d to requests about the caller's own email.
func RequireSelf(d Decision, email string) Decision {
	if !d.Allowed() {
		return d
	}
	if d.principal.email != email {
		return Deny(Forbidden)
	}
	return d
}

func bearer(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

type principalKey struct{}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal stored by NewContext.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

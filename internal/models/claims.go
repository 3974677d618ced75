package models

import "github.com/golang-jwt/jwt/v5"

// Roles carried in identity tokens.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Capability is the privilege level of a principal.
type Capability int

const (
	CapabilityOrdinary Capability = iota
	CapabilityElevated
)

func (c Capability) String() string {
	if c == CapabilityElevated {
		return "elevated"
	}
	return "ordinary"
}

// Principal is the authenticated caller as resolved by the identity service.
// ID is the caller's email.
type Principal struct {
	ID         string
	Capability Capability
}

// IsElevated reports whether the principal bypasses ownership checks.
func (p Principal) IsElevated() bool {
	return p.Capability == CapabilityElevated
}

// AccountClaims are the JWT claims issued by the identity service.
type AccountClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Principal converts verified claims into the caller identity.
func (c *AccountClaims) Principal() Principal {
	p := Principal{ID: c.Email, Capability: CapabilityOrdinary}
	if c.Role == RoleAdmin {
		p.Capability = CapabilityElevated
	}
	return p
}

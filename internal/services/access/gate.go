// Package access decides whether a principal may read or modify an account
// and, through it, the account's cards.
package access

import (
	"fmt"
	"strings"

	"marketplace/internal/models"
	"marketplace/internal/services"
)

type Gate interface {
	CanAccess(principal models.Principal, ownerEmail string) bool
}

// OwnershipGate admits elevated principals unconditionally and ordinary
// principals whose identifier is the account's current email.
type OwnershipGate struct{}

func (OwnershipGate) CanAccess(principal models.Principal, ownerEmail string) bool {
	if principal.IsElevated() {
		return true
	}
	return principal.ID != "" && strings.EqualFold(principal.ID, ownerEmail)
}

// Authorize returns an error wrapping services.ErrForbidden when g denies access.
func Authorize(g Gate, principal models.Principal, ownerEmail string) error {
	if g.CanAccess(principal, ownerEmail) {
		return nil
	}
	return fmt.Errorf("%w: %s principal %q does not own the account", services.ErrForbidden, principal.Capability, principal.ID)
}

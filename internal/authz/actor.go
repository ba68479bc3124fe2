package authz

import (
	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/enums"
)

// Actor is the authenticated principal a request acts as. Anonymous requests
// carry no actor at all; handlers that allow anonymous access pass a nil
// *Actor downstream.
type Actor struct {
	UserID   uuid.UUID
	Role     enums.UserRole
	SellerID *uuid.UUID
	IsStaff  bool
}

// IsSeller reports whether the actor holds the seller role with a linked
// seller profile.
func (a *Actor) IsSeller() bool {
	return a != nil && a.Role == enums.UserRoleSeller && a.SellerID != nil
}

// IsBuyer reports whether the actor holds the buyer role.
func (a *Actor) IsBuyer() bool {
	return a != nil && a.Role == enums.UserRoleBuyer
}

// OwnsSeller reports whether the actor's seller profile matches the given id.
func (a *Actor) OwnsSeller(sellerID uuid.UUID) bool {
	return a.IsSeller() && *a.SellerID == sellerID
}

package authz

import (
	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/errors"
)

// Action names a permission-checked operation.
type Action string

const (
	ActionBookCreate Action = "book.create"
	ActionBookEdit   Action = "book.edit"
	ActionBookRead   Action = "book.read"

	ActionFavouritesManage Action = "favourites.manage"
	ActionHistoryRead      Action = "history.read"
	ActionCartManage       Action = "cart.manage"

	ActionUsersManage Action = "users.manage"
)

// Resource carries the ownership data a rule may need. Zero values mean the
// action has no resource to own.
type Resource struct {
	OwnerSellerID uuid.UUID
}

type rule func(actor *Actor, res Resource) *errors.Error

var rules = map[Action]rule{
	// Reading the catalog is open to everyone, signed in or not.
	ActionBookRead: func(*Actor, Resource) *errors.Error { return nil },

	ActionBookCreate: func(actor *Actor, _ Resource) *errors.Error {
		if actor == nil {
			return errors.New(errors.CodeUnauthorized, "authentication required")
		}
		if !actor.IsSeller() {
			return errors.New(errors.CodeForbidden, "only sellers can list books")
		}
		return nil
	},

	ActionBookEdit: func(actor *Actor, res Resource) *errors.Error {
		if actor == nil {
			return errors.New(errors.CodeUnauthorized, "authentication required")
		}
		if !actor.IsSeller() {
			return errors.New(errors.CodeForbidden, "only sellers can edit books")
		}
		if res.OwnerSellerID == uuid.Nil || !actor.OwnsSeller(res.OwnerSellerID) {
			return errors.New(errors.CodeForbidden, "book belongs to another seller")
		}
		return nil
	},

	ActionFavouritesManage: requireBuyer,
	ActionHistoryRead:      requireBuyer,
	ActionCartManage:       requireBuyer,

	ActionUsersManage: func(actor *Actor, _ Resource) *errors.Error {
		if actor == nil {
			return errors.New(errors.CodeUnauthorized, "authentication required")
		}
		if !actor.IsStaff {
			return errors.New(errors.CodeForbidden, "staff access required")
		}
		return nil
	},
}

func requireBuyer(actor *Actor, _ Resource) *errors.Error {
	if actor == nil {
		return errors.New(errors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsBuyer() {
		return errors.New(errors.CodeForbidden, "buyer account required")
	}
	return nil
}

// Authorize evaluates the rule for action against the actor and resource.
// It returns nil when the action is allowed. Unknown actions are denied.
func Authorize(actor *Actor, action Action, res Resource) error {
	r, ok := rules[action]
	if !ok {
		return errors.New(errors.CodeForbidden, "unknown action")
	}
	if err := r(actor, res); err != nil {
		return err
	}
	return nil
}

package cart

import (
	"context"
	stdErrors "errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
)

// Service manages the buyer's shopping cart.
type Service struct {
	repo *Repo
	logg *logger.Logger
}

func NewService(repo *Repo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logg: logg}
}

// SetItem adds a line or replaces its quantity. Only on-sale books can enter
// the cart.
func (s *Service) SetItem(ctx context.Context, actor *authz.Actor, req SetItemRequest) (*CartResponse, error) {
	if err := authz.Authorize(actor, authz.ActionCartManage, authz.Resource{}); err != nil {
		return nil, err
	}

	format, err := enums.ParseBookFormat(req.Format)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "unknown book format")
	}

	book, err := s.repo.FindBook(ctx, req.BookID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "book not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading book")
	}
	if !book.IsOnSale {
		return nil, errors.New(errors.CodeValidation, "book is not on sale")
	}

	item := &models.CartItem{
		UserID:   actor.UserID,
		BookID:   req.BookID,
		Format:   format,
		Quantity: req.Quantity,
	}
	if err := s.repo.Upsert(ctx, item); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "saving cart item")
	}

	return s.GetCart(ctx, actor)
}

// RemoveItem drops one line. Removing an absent line is a no-op.
func (s *Service) RemoveItem(ctx context.Context, actor *authz.Actor, req RemoveItemRequest) (*CartResponse, error) {
	if err := authz.Authorize(actor, authz.ActionCartManage, authz.Resource{}); err != nil {
		return nil, err
	}

	format, err := enums.ParseBookFormat(req.Format)
	if err != nil {
		return nil, errors.New(errors.CodeValidation, "unknown book format")
	}

	if _, err := s.repo.Delete(ctx, actor.UserID, req.BookID, format); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "removing cart item")
	}
	return s.GetCart(ctx, actor)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, actor *authz.Actor) error {
	if err := authz.Authorize(actor, authz.ActionCartManage, authz.Resource{}); err != nil {
		return err
	}
	if err := s.repo.Clear(ctx, actor.UserID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "clearing cart")
	}
	return nil
}

// GetCart returns the cart with per-line and grand totals.
func (s *Service) GetCart(ctx context.Context, actor *authz.Actor) (*CartResponse, error) {
	if err := authz.Authorize(actor, authz.ActionCartManage, authz.Resource{}); err != nil {
		return nil, err
	}

	items, err := s.repo.List(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing cart")
	}

	resp := &CartResponse{
		Items: make([]ItemResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		item := &items[i]
		book, err := s.repo.FindBook(ctx, item.BookID)
		if err != nil {
			// The book vanished under the cart line. Skip it rather than
			// break the whole cart.
			s.logg.Warn(s.logg.WithBookID(ctx, item.BookID.String()), "cart line references missing book")
			continue
		}
		lineTotal := book.Cost.Mul(decimal.NewFromInt(int64(item.Quantity)))
		resp.Items = append(resp.Items, ItemResponse{
			BookID:    item.BookID,
			Title:     book.Title,
			Format:    item.Format.String(),
			Quantity:  item.Quantity,
			UnitCost:  book.Cost,
			LineTotal: lineTotal,
		})
		resp.Total = resp.Total.Add(lineTotal)
	}
	return resp, nil
}

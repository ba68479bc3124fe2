package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/pkg/db"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// ViewRecorder receives a notification after a buyer reads a book's detail
// page. Implementations must tolerate duplicate deliveries.
type ViewRecorder interface {
	RecordView(ctx context.Context, userID, bookID uuid.UUID) error
}

// Service implements listing management and the public catalog reads.
type Service struct {
	repo  *Repo
	views ViewRecorder
	logg  *logger.Logger
}

// NewService builds the catalog service. views may be nil when view tracking
// is disabled.
func NewService(repo *Repo, views ViewRecorder, logg *logger.Logger) *Service {
	return &Service{repo: repo, views: views, logg: logg}
}

const defaultRating = 5

// CreateBook lists a new book under the actor's seller profile.
func (s *Service) CreateBook(ctx context.Context, actor *authz.Actor, req CreateBookRequest) (*BookResponse, error) {
	if err := authz.Authorize(actor, authz.ActionBookCreate, authz.Resource{}); err != nil {
		return nil, err
	}
	if err := validateISBN(req.ISBN); err != nil {
		return nil, err
	}
	if err := validateCost(req.Cost); err != nil {
		return nil, err
	}

	book := &models.Book{
		ID:            uuid.New(),
		SellerID:      *actor.SellerID,
		ArticleNumber: req.ArticleNumber,
		Title:         req.Title,
		Rating:        defaultRating,
		Author:        req.Author,
		Translator:    req.Translator,
		Publisher:     req.Publisher,
		Genre:         req.Genre,
		Cost:          req.Cost,
		ISBN:          req.ISBN,
		Pages:         req.Pages,
		Language:      req.Language,
		Description:   req.Description,
		IsOnSale:      true,
	}
	if req.Rating != nil {
		book.Rating = *req.Rating
	}
	if req.IsOnSale != nil {
		book.IsOnSale = *req.IsOnSale
	}
	if req.Count != nil {
		book.Count = *req.Count
	}

	if err := s.repo.Create(ctx, book); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, errors.New(errors.CodeConflict, "article number already in use")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "creating book")
	}

	s.logg.Info(s.logg.WithBookID(ctx, book.ID.String()), "book listed")

	resp := ToBookResponse(book)
	return &resp, nil
}

// PatchBook partially updates one of the actor's own listings, addressed by
// article number.
func (s *Service) PatchBook(ctx context.Context, actor *authz.Actor, articleNumber int64, req PatchBookRequest) (*BookResponse, error) {
	if actor == nil {
		return nil, errors.New(errors.CodeUnauthorized, "authentication required")
	}
	if !actor.IsSeller() {
		return nil, errors.New(errors.CodeForbidden, "only sellers can edit books")
	}

	book, err := s.repo.FindOwned(ctx, *actor.SellerID, articleNumber)
	if err != nil {
		return nil, err
	}
	if err := authz.Authorize(actor, authz.ActionBookEdit, authz.Resource{OwnerSellerID: book.SellerID}); err != nil {
		return nil, err
	}

	applyPatch(book, req)

	if err := validateISBN(book.ISBN); err != nil {
		return nil, err
	}
	if err := validateCost(book.Cost); err != nil {
		return nil, err
	}
	if book.Count < 0 {
		return nil, errors.New(errors.CodeValidation, "count must not be negative")
	}

	if err := s.repo.Save(ctx, book); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating book")
	}

	resp := ToBookResponse(book)
	return &resp, nil
}

// GetBook serves the public detail page for an on-sale listing. When the
// caller is authenticated, the read is reported to the view recorder; a
// recorder failure is logged and never surfaces to the reader.
func (s *Service) GetBook(ctx context.Context, actor *authz.Actor, articleNumber int64) (*BookResponse, error) {
	book, err := s.repo.FindOnSale(ctx, articleNumber)
	if err != nil {
		return nil, err
	}

	if actor.IsBuyer() && s.views != nil {
		if err := s.views.RecordView(ctx, actor.UserID, book.ID); err != nil {
			s.logg.Error(s.logg.WithBookID(ctx, book.ID.String()), "recording book view", err)
		}
	}

	resp := ToBookResponse(book)
	return &resp, nil
}

// ListBooks pages through the public catalog.
func (s *Service) ListBooks(ctx context.Context, params pagination.Params) (*ListBooksResponse, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	books, err := s.repo.ListOnSale(ctx, limit, params.Offset)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing books")
	}
	return toListResponse(books, limit, params.Offset), nil
}

// ListOwnBooks pages through the actor's own listings, including withdrawn
// ones.
func (s *Service) ListOwnBooks(ctx context.Context, actor *authz.Actor, params pagination.Params) (*ListBooksResponse, error) {
	if err := authz.Authorize(actor, authz.ActionBookCreate, authz.Resource{}); err != nil {
		return nil, err
	}
	limit := pagination.NormalizeLimit(params.Limit)
	books, err := s.repo.ListBySeller(ctx, *actor.SellerID, limit, params.Offset)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing seller books")
	}
	return toListResponse(books, limit, params.Offset), nil
}

func toListResponse(books []models.Book, limit, offset int) *ListBooksResponse {
	resp := &ListBooksResponse{
		Books:  make([]BookResponse, 0, len(books)),
		Limit:  limit,
		Offset: offset,
	}
	for i := range books {
		resp.Books = append(resp.Books, ToBookResponse(&books[i]))
	}
	return resp
}

func applyPatch(book *models.Book, req PatchBookRequest) {
	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Rating != nil {
		book.Rating = *req.Rating
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Translator != nil {
		book.Translator = req.Translator
	}
	if req.Publisher != nil {
		book.Publisher = *req.Publisher
	}
	if req.Genre != nil {
		book.Genre = *req.Genre
	}
	if req.Cost != nil {
		book.Cost = *req.Cost
	}
	if req.ISBN != nil {
		book.ISBN = *req.ISBN
	}
	if req.Pages != nil {
		book.Pages = *req.Pages
	}
	if req.Language != nil {
		book.Language = *req.Language
	}
	if req.Description != nil {
		book.Description = *req.Description
	}
	if req.IsOnSale != nil {
		book.IsOnSale = *req.IsOnSale
	}
	if req.Count != nil {
		book.Count = *req.Count
	}
}

func validateISBN(isbn string) error {
	if len(isbn) != 13 {
		return errors.New(errors.CodeValidation, "isbn must be exactly 13 digits")
	}
	for _, r := range isbn {
		if r < '0' || r > '9' {
			return errors.New(errors.CodeValidation, "isbn must be exactly 13 digits")
		}
	}
	return nil
}

func validateCost(cost decimal.Decimal) error {
	if cost.IsNegative() {
		return errors.New(errors.CodeValidation, "cost must not be negative")
	}
	return nil
}

package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pagemarket/bookstore-backend/pkg/db/models"
)

// CreateBookRequest is the seller-facing listing payload.
type CreateBookRequest struct {
	ArticleNumber int64           `json:"articleNumber" validate:"required,gt=0"`
	Title         string          `json:"title" validate:"required,max=255"`
	Rating        *int            `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Author        string          `json:"author" validate:"required,max=255"`
	Translator    *string         `json:"translator" validate:"omitempty,max=255"`
	Publisher     string          `json:"publisher" validate:"required,max=255"`
	Genre         string          `json:"genre" validate:"required,max=100"`
	Cost          decimal.Decimal `json:"cost" validate:"required"`
	ISBN          string          `json:"isbn" validate:"required"`
	Pages         int             `json:"pages" validate:"required,gt=0"`
	Language      string          `json:"language" validate:"required,max=100"`
	Description   string          `json:"description" validate:"required"`
	IsOnSale      *bool           `json:"isOnSale"`
	Count         *int            `json:"count" validate:"omitempty,gte=0"`
}

// PatchBookRequest carries a partial update. Nil fields are untouched.
type PatchBookRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=255"`
	Rating      *int             `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Author      *string          `json:"author" validate:"omitempty,max=255"`
	Translator  *string          `json:"translator" validate:"omitempty,max=255"`
	Publisher   *string          `json:"publisher" validate:"omitempty,max=255"`
	Genre       *string          `json:"genre" validate:"omitempty,max=100"`
	Cost        *decimal.Decimal `json:"cost"`
	ISBN        *string          `json:"isbn"`
	Pages       *int             `json:"pages" validate:"omitempty,gt=0"`
	Language    *string          `json:"language" validate:"omitempty,max=100"`
	Description *string          `json:"description"`
	IsOnSale    *bool            `json:"isOnSale"`
	Count       *int             `json:"count" validate:"omitempty,gte=0"`
}

// BookResponse is the public shape of a listing.
type BookResponse struct {
	ID            uuid.UUID       `json:"id"`
	SellerID      uuid.UUID       `json:"sellerId"`
	ArticleNumber int64           `json:"articleNumber"`
	Title         string          `json:"title"`
	Rating        int             `json:"rating"`
	Author        string          `json:"author"`
	Translator    *string         `json:"translator,omitempty"`
	Publisher     string          `json:"publisher"`
	Genre         string          `json:"genre"`
	Cost          decimal.Decimal `json:"cost"`
	ISBN          string          `json:"isbn"`
	Pages         int             `json:"pages"`
	Language      string          `json:"language"`
	Description   string          `json:"description"`
	IsOnSale      bool            `json:"isOnSale"`
	Count         int             `json:"count"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToBookResponse maps a stored book onto the response shape.
func ToBookResponse(book *models.Book) BookResponse {
	return BookResponse{
		ID:            book.ID,
		SellerID:      book.SellerID,
		ArticleNumber: book.ArticleNumber,
		Title:         book.Title,
		Rating:        book.Rating,
		Author:        book.Author,
		Translator:    book.Translator,
		Publisher:     book.Publisher,
		Genre:         book.Genre,
		Cost:          book.Cost,
		ISBN:          book.ISBN,
		Pages:         book.Pages,
		Language:      book.Language,
		Description:   book.Description,
		IsOnSale:      book.IsOnSale,
		Count:         book.Count,
		CreatedAt:     book.CreatedAt,
		UpdatedAt:     book.UpdatedAt,
	}
}

// ListBooksResponse wraps a page of listings.
type ListBooksResponse struct {
	Books  []BookResponse `json:"books"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

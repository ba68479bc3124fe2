package catalog

import (
	"context"
	stdErrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
)

// Repo provides book persistence on top of GORM.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts the listing.
func (r *Repo) Create(ctx context.Context, book *models.Book) error {
	if book.ID == uuid.Nil {
		book.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(book).Error
}

// FindOwned loads a seller's own book by its article number, on sale or not.
func (r *Repo) FindOwned(ctx context.Context, sellerID uuid.UUID, articleNumber int64) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		First(&book, "seller_id = ? AND article_number = ?", sellerID, articleNumber).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "book not found")
		}
		return nil, err
	}
	return &book, nil
}

// FindOnSale loads the newest on-sale listing carrying the article number.
func (r *Repo) FindOnSale(ctx context.Context, articleNumber int64) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Where("article_number = ? AND is_on_sale = ?", articleNumber, true).
		Order("created_at DESC").
		First(&book).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "book not found")
		}
		return nil, err
	}
	return &book, nil
}

// ListOnSale pages through on-sale listings, newest first.
func (r *Repo) ListOnSale(ctx context.Context, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Where("is_on_sale = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	return books, err
}

// ListBySeller pages through one seller's listings, on sale or not.
func (r *Repo) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&books).Error
	return books, err
}

// Save persists changes to an existing listing.
func (r *Repo) Save(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
)

// Repo persists cart lines. The (user, book, format) unique index turns a
// repeated add into a quantity update.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Upsert sets the quantity for a cart line, inserting it if absent.
func (r *Repo) Upsert(ctx context.Context, item *models.CartItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "book_id"}, {Name: "format"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "updated_at"}),
		}).
		Create(item).Error
}

// Delete removes one cart line. Returns false when there was nothing to
// remove.
func (r *Repo) Delete(ctx context.Context, userID, bookID uuid.UUID, format enums.BookFormat) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ? AND format = ?", userID, bookID, format).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Clear removes every line in the user's cart.
func (r *Repo) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.CartItem{}).Error
}

// List returns the user's cart lines, oldest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

// FindBook loads a book so the service can validate cart additions.
func (r *Repo) FindBook(ctx context.Context, bookID uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", bookID).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

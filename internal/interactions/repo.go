package interactions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pagemarket/bookstore-backend/pkg/db/models"
)

// Repo persists view history and favourites. Both tables carry unique indexes
// and inserts use ON CONFLICT DO NOTHING, so concurrent duplicates collapse
// into RowsAffected == 0 instead of an error.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// InsertHistory records a view for the given day. Returns false when an entry
// for (user, book, day) already exists.
func (r *Repo) InsertHistory(ctx context.Context, userID, bookID uuid.UUID, day time.Time) (bool, error) {
	entry := models.HistoryEntry{
		ID:         uuid.New(),
		UserID:     userID,
		BookID:     bookID,
		DateOfView: day,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "book_id"}, {Name: "date_of_view"},
			},
			DoNothing: true,
		}).
		Create(&entry)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListHistory returns the user's full history, newest first, with books
// preloaded.
func (r *Repo) ListHistory(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("date_of_view DESC, created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&entries).Error
	return entries, err
}

// ListHistoryForDay returns the user's entries for one calendar day.
func (r *Repo) ListHistoryForDay(ctx context.Context, userID uuid.UUID, day time.Time) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ? AND date_of_view = ?", userID, day).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

// InsertFavourite adds the book to the user's favourites. Returns false when
// it was already there.
func (r *Repo) InsertFavourite(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	item := models.FavouriteItem{
		ID:     uuid.New(),
		UserID: userID,
		BookID: bookID,
	}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoNothing: true,
		}).
		Create(&item)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteFavourite removes the book from the user's favourites. Returns false
// when there was nothing to remove.
func (r *Repo) DeleteFavourite(ctx context.Context, userID, bookID uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.FavouriteItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ListFavourites returns the user's favourites, newest first, with books
// preloaded.
func (r *Repo) ListFavourites(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.FavouriteItem, error) {
	var items []models.FavouriteItem
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	return items, err
}

// FindBook loads a book by id so the service can reject interactions with
// unknown books.
func (r *Repo) FindBook(ctx context.Context, bookID uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, "id = ?", bookID).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records a buyer viewing a book's detail page. The unique index
// over (user, book, day) is the storage-level guard for the one-entry-per-day
// rule; concurrent duplicate inserts collapse into the conflict path.
type HistoryEntry struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:history_entries_user_id_idx;uniqueIndex:history_entries_user_book_day_key"`
	BookID     uuid.UUID `gorm:"column:book_id;type:uuid;not null;uniqueIndex:history_entries_user_book_day_key"`
	Book       *Book     `gorm:"foreignKey:BookID"`
	DateOfView time.Time `gorm:"column:date_of_view;type:date;not null;uniqueIndex:history_entries_user_book_day_key"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/pkg/enums"
)

// CartItem holds a buyer's pending purchase line for one book edition.
type CartItem struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index:cart_items_user_id_idx;uniqueIndex:cart_items_user_book_format_key"`
	BookID    uuid.UUID        `gorm:"column:book_id;type:uuid;not null;uniqueIndex:cart_items_user_book_format_key"`
	Format    enums.BookFormat `gorm:"column:format;type:text;not null;uniqueIndex:cart_items_user_book_format_key"`
	Quantity  int              `gorm:"column:quantity;not null;default:1"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// FavouriteItem links a buyer to a liked book.
type FavouriteItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:favourite_items_user_id_idx;uniqueIndex:favourite_items_user_book_key"`
	BookID    uuid.UUID `gorm:"column:book_id;type:uuid;not null;index:favourite_items_book_id_idx;uniqueIndex:favourite_items_user_book_key"`
	Book      *Book     `gorm:"foreignKey:BookID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

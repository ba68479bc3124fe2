package models

import (
	"time"

	"github.com/google/uuid"
)

// Seller marks a user as permitted to own and edit book listings. At most one
// row exists per user; it is created in the signup transaction and removed
// only by the owning user's cascade delete.
type Seller struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

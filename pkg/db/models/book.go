package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Book represents a seller's listing. ArticleNumber is the seller-chosen
// business identifier used as the external lookup key; ISBN is stored as a
// string of exactly 13 digits.
type Book struct {
	ID            uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SellerID      uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index;uniqueIndex:books_seller_article_key"`
	ArticleNumber int64           `gorm:"column:article_number;not null;uniqueIndex:books_seller_article_key"`
	Title         string          `gorm:"column:title;not null"`
	Rating        int             `gorm:"column:rating;not null;default:5"`
	Author        string          `gorm:"column:author;not null"`
	Translator    *string         `gorm:"column:translator"`
	Publisher     string          `gorm:"column:publisher;not null"`
	Genre         string          `gorm:"column:genre;not null"`
	Cost          decimal.Decimal `gorm:"column:cost;type:numeric(8,2);not null"`
	ISBN          string          `gorm:"column:isbn;type:char(13);not null"`
	Pages         int             `gorm:"column:pages;not null"`
	Language      string          `gorm:"column:language;not null"`
	Description   string          `gorm:"column:description;type:text;not null"`
	IsOnSale      bool            `gorm:"column:is_on_sale;not null;default:true"`
	Count         int             `gorm:"column:count;not null;default:0"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

package interactions

import (
	"time"

	"github.com/google/uuid"

	"github.com/pagemarket/bookstore-backend/internal/catalog"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
)

// AddFavouriteRequest adds one book to the caller's favourites.
type AddFavouriteRequest struct {
	BookID uuid.UUID `json:"bookId" validate:"required"`
}

// FavouriteResponse is one favourites row with its book.
type FavouriteResponse struct {
	BookID  uuid.UUID             `json:"bookId"`
	AddedAt time.Time             `json:"addedAt"`
	Book    *catalog.BookResponse `json:"book,omitempty"`
}

// MutationResponse reports whether a favourites mutation changed anything.
// Applied is false for already-added and already-removed no-ops.
type MutationResponse struct {
	Applied bool   `json:"applied"`
	Notice  string `json:"notice,omitempty"`
}

// ListFavouritesResponse wraps a page of favourites.
type ListFavouritesResponse struct {
	Favourites []FavouriteResponse `json:"favourites"`
	Limit      int                 `json:"limit"`
	Offset     int                 `json:"offset"`
}

// HistoryEntryResponse is one view-history row with its book.
type HistoryEntryResponse struct {
	BookID     uuid.UUID             `json:"bookId"`
	DateOfView string                `json:"dateOfView"`
	Book       *catalog.BookResponse `json:"book,omitempty"`
}

// ListHistoryResponse wraps a page of history entries.
type ListHistoryResponse struct {
	Entries []HistoryEntryResponse `json:"entries"`
	Limit   int                    `json:"limit"`
	Offset  int                    `json:"offset"`
}

const dateLayout = "2006-01-02"

func toFavouriteResponse(item *models.FavouriteItem) FavouriteResponse {
	resp := FavouriteResponse{
		BookID:  item.BookID,
		AddedAt: item.CreatedAt,
	}
	if item.Book != nil {
		book := catalog.ToBookResponse(item.Book)
		resp.Book = &book
	}
	return resp
}

func toHistoryEntryResponse(entry *models.HistoryEntry) HistoryEntryResponse {
	resp := HistoryEntryResponse{
		BookID:     entry.BookID,
		DateOfView: entry.DateOfView.Format(dateLayout),
	}
	if entry.Book != nil {
		book := catalog.ToBookResponse(entry.Book)
		resp.Book = &book
	}
	return resp
}

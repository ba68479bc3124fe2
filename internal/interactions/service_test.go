package interactions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/enums"
	apperrors "github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/metrics"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(
		&models.Book{},
		&models.FavouriteItem{},
		&models.HistoryEntry{},
	))

	logg := logger.New(logger.Options{ServiceName: "interactions-test"})
	svc := NewService(NewRepo(conn), metrics.New(), logg)
	return svc, conn
}

func seedBook(t *testing.T, conn *gorm.DB) *models.Book {
	t.Helper()
	book := &models.Book{
		ID:            uuid.New(),
		SellerID:      uuid.New(),
		ArticleNumber: time.Now().UnixNano(),
		Title:         "Dead Souls",
		Rating:        5,
		Author:        "Nikolai Gogol",
		Publisher:     "Penguin",
		Genre:         "fiction",
		Cost:          decimal.RequireFromString("9.99"),
		ISBN:          "9780140448078",
		Pages:         464,
		Language:      "en",
		Description:   "A novel.",
		IsOnSale:      true,
	}
	require.NoError(t, conn.Create(book).Error)
	return book
}

func buyer() *authz.Actor {
	return &authz.Actor{UserID: uuid.New(), Role: enums.UserRoleBuyer}
}

func TestRecordView_SameDayDedupe(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	actor := buyer()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.RecordView(ctx, actor.UserID, book.ID))
	}

	resp, err := svc.GetHistory(ctx, actor, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, book.ID, resp.Entries[0].BookID)
	require.NotNil(t, resp.Entries[0].Book)
	assert.Equal(t, "Dead Souls", resp.Entries[0].Book.Title)
}

func TestRecordView_NewDayNewEntry(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	actor := buyer()

	base := time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return base }
	require.NoError(t, svc.RecordView(ctx, actor.UserID, book.ID))

	svc.nowFunc = func() time.Time { return base.Add(24 * time.Hour) }
	require.NoError(t, svc.RecordView(ctx, actor.UserID, book.ID))

	resp, err := svc.GetHistory(ctx, actor, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Entries, 2)
	// Newest day first.
	assert.Equal(t, "2026-08-29", resp.Entries[0].DateOfView)
	assert.Equal(t, "2026-08-28", resp.Entries[1].DateOfView)
}

func TestRecordView_ConcurrentSameDay(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	actor := buyer()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.RecordView(ctx, actor.UserID, book.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	resp, err := svc.GetHistory(ctx, actor, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, resp.Entries, 1)
}

func TestGetTodayHistory(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	actor := buyer()
	bookA := seedBook(t, conn)
	bookB := seedBook(t, conn)

	base := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	svc.nowFunc = func() time.Time { return base }
	require.NoError(t, svc.RecordView(ctx, actor.UserID, bookA.ID))

	svc.nowFunc = func() time.Time { return base.Add(24 * time.Hour) }
	require.NoError(t, svc.RecordView(ctx, actor.UserID, bookB.ID))

	resp, err := svc.GetTodayHistory(ctx, actor)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, bookB.ID, resp.Entries[0].BookID)
}

func TestHistoryIsPerUser(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	first, second := buyer(), buyer()

	require.NoError(t, svc.RecordView(ctx, first.UserID, book.ID))

	resp, err := svc.GetHistory(ctx, second, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, resp.Entries)

	_, err = svc.GetHistory(ctx, nil, pagination.Params{Limit: 10})
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code())
}

func TestAddFavourite(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	actor := buyer()

	resp, err := svc.AddFavourite(ctx, actor, book.ID)
	require.NoError(t, err)
	assert.True(t, resp.Applied)
	assert.Empty(t, resp.Notice)

	// Adding again is a friendly no-op.
	resp, err = svc.AddFavourite(ctx, actor, book.ID)
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, "already added", resp.Notice)

	list, err := svc.ListFavourites(ctx, actor, pagination.Params{Limit: 10})
	require.NoError(t, err)
	require.Len(t, list.Favourites, 1)
	require.NotNil(t, list.Favourites[0].Book)
	assert.Equal(t, book.ID, list.Favourites[0].BookID)
}

func TestAddFavourite_UnknownBook(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.AddFavourite(context.Background(), buyer(), uuid.New())
	appErr := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code())
}

func TestRemoveFavourite(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	actor := buyer()

	_, err := svc.AddFavourite(ctx, actor, book.ID)
	require.NoError(t, err)

	resp, err := svc.RemoveFavourite(ctx, actor, book.ID)
	require.NoError(t, err)
	assert.True(t, resp.Applied)

	// Removing again is a friendly no-op.
	resp, err = svc.RemoveFavourite(ctx, actor, book.ID)
	require.NoError(t, err)
	assert.False(t, resp.Applied)
	assert.Equal(t, "not in favourites", resp.Notice)

	list, err := svc.ListFavourites(ctx, actor, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Favourites)
}

func TestFavouritesArePerUser(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	book := seedBook(t, conn)
	first, second := buyer(), buyer()

	_, err := svc.AddFavourite(ctx, first, book.ID)
	require.NoError(t, err)

	list, err := svc.ListFavourites(ctx, second, pagination.Params{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, list.Favourites)
}

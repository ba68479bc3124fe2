package interactions

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/internal/authz"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
	"github.com/pagemarket/bookstore-backend/pkg/logger"
	"github.com/pagemarket/bookstore-backend/pkg/metrics"
	"github.com/pagemarket/bookstore-backend/pkg/pagination"
)

// Service tracks view history and manages favourites.
type Service struct {
	repo    *Repo
	metrics *metrics.Registry
	logg    *logger.Logger
	nowFunc func() time.Time
}

func NewService(repo *Repo, reg *metrics.Registry, logg *logger.Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: reg,
		logg:    logg,
		nowFunc: time.Now,
	}
}

// dayOf truncates to the UTC calendar day the dedupe window is keyed on.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// RecordView stores a history entry for today. Repeat views of the same book
// on the same day are absorbed by the unique index, so the call is idempotent
// and safe under concurrency.
func (s *Service) RecordView(ctx context.Context, userID, bookID uuid.UUID) error {
	inserted, err := s.repo.InsertHistory(ctx, userID, bookID, dayOf(s.nowFunc()))
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "recording view")
	}

	outcome := metrics.ViewOutcomeRecorded
	if !inserted {
		outcome = metrics.ViewOutcomeDeduped
	}
	if s.metrics != nil {
		s.metrics.RecordBookView(outcome)
	}
	return nil
}

// GetHistory returns the actor's full view history, newest first.
func (s *Service) GetHistory(ctx context.Context, actor *authz.Actor, params pagination.Params) (*ListHistoryResponse, error) {
	if err := authz.Authorize(actor, authz.ActionHistoryRead, authz.Resource{}); err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	entries, err := s.repo.ListHistory(ctx, actor.UserID, limit, params.Offset)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing history")
	}

	resp := &ListHistoryResponse{
		Entries: make([]HistoryEntryResponse, 0, len(entries)),
		Limit:   limit,
		Offset:  params.Offset,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, toHistoryEntryResponse(&entries[i]))
	}
	return resp, nil
}

// GetTodayHistory returns only the entries recorded today.
func (s *Service) GetTodayHistory(ctx context.Context, actor *authz.Actor) (*ListHistoryResponse, error) {
	if err := authz.Authorize(actor, authz.ActionHistoryRead, authz.Resource{}); err != nil {
		return nil, err
	}

	entries, err := s.repo.ListHistoryForDay(ctx, actor.UserID, dayOf(s.nowFunc()))
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing today's history")
	}

	resp := &ListHistoryResponse{
		Entries: make([]HistoryEntryResponse, 0, len(entries)),
		Limit:   len(entries),
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, toHistoryEntryResponse(&entries[i]))
	}
	return resp, nil
}

// AddFavourite puts a book on the actor's favourites list. Adding a book that
// is already there succeeds with a notice instead of failing.
func (s *Service) AddFavourite(ctx context.Context, actor *authz.Actor, bookID uuid.UUID) (*MutationResponse, error) {
	if err := authz.Authorize(actor, authz.ActionFavouritesManage, authz.Resource{}); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindBook(ctx, bookID); err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "book not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading book")
	}

	inserted, err := s.repo.InsertFavourite(ctx, actor.UserID, bookID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "adding favourite")
	}

	resp := &MutationResponse{Applied: inserted}
	outcome := metrics.FavouriteOutcomeApplied
	if !inserted {
		resp.Notice = "already added"
		outcome = metrics.FavouriteOutcomeNoop
	}
	if s.metrics != nil {
		s.metrics.RecordFavouriteChange(metrics.FavouriteActionAdd, outcome)
	}
	return resp, nil
}

// RemoveFavourite takes a book off the actor's favourites list. Removing a
// book that is not there succeeds with a notice.
func (s *Service) RemoveFavourite(ctx context.Context, actor *authz.Actor, bookID uuid.UUID) (*MutationResponse, error) {
	if err := authz.Authorize(actor, authz.ActionFavouritesManage, authz.Resource{}); err != nil {
		return nil, err
	}

	deleted, err := s.repo.DeleteFavourite(ctx, actor.UserID, bookID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "removing favourite")
	}

	resp := &MutationResponse{Applied: deleted}
	outcome := metrics.FavouriteOutcomeApplied
	if !deleted {
		resp.Notice = "not in favourites"
		outcome = metrics.FavouriteOutcomeNoop
	}
	if s.metrics != nil {
		s.metrics.RecordFavouriteChange(metrics.FavouriteActionRemove, outcome)
	}
	return resp, nil
}

// ListFavourites returns the actor's favourites, newest first.
func (s *Service) ListFavourites(ctx context.Context, actor *authz.Actor, params pagination.Params) (*ListFavouritesResponse, error) {
	if err := authz.Authorize(actor, authz.ActionFavouritesManage, authz.Resource{}); err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	items, err := s.repo.ListFavourites(ctx, actor.UserID, limit, params.Offset)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing favourites")
	}

	resp := &ListFavouritesResponse{
		Favourites: make([]FavouriteResponse, 0, len(items)),
		Limit:      limit,
		Offset:     params.Offset,
	}
	for i := range items {
		resp.Favourites = append(resp.Favourites, toFavouriteResponse(&items[i]))
	}
	return resp, nil
}

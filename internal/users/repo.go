package users

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pagemarket/bookstore-backend/pkg/db"
	"github.com/pagemarket/bookstore-backend/pkg/db/models"
	"github.com/pagemarket/bookstore-backend/pkg/errors"
)

// Repo provides user persistence on top of GORM.
type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// Create inserts the user row. Callers wanting a seller profile in the same
// transaction use CreateTx with db.Client.WithTx.
func (r *Repo) Create(ctx context.Context, user *models.User) error {
	return r.CreateTx(r.db.WithContext(ctx), user)
}

// CreateTx inserts the user using the provided transaction handle.
func (r *Repo) CreateTx(tx *gorm.DB, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return tx.Create(user).Error
}

// CreateSellerTx inserts a seller profile for the user inside tx.
func (r *Repo) CreateSellerTx(tx *gorm.DB, seller *models.Seller) error {
	if seller.ID == uuid.Nil {
		seller.ID = uuid.New()
	}
	return tx.Create(seller).Error
}

// FindByID loads a user with the seller profile preloaded.
func (r *Repo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&user, "id = ?", id).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail loads a user by email with the seller profile preloaded.
func (r *Repo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&user, "email = ?", email).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// FindByUsername loads a user by username.
func (r *Repo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Seller").
		First(&user, "username = ?", username).Error
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// List pages through users ordered by creation time, newest first.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Preload("Seller").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	return users, err
}

// UpdateFields applies a partial column update to one user row.
func (r *Repo) UpdateFields(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		if db.IsUniqueViolation(res.Error, "") {
			return errors.New(errors.CodeConflict, "username already taken")
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New(errors.CodeNotFound, "user not found")
	}
	return nil
}

// UpdateLastLogin stamps the most recent successful login.
func (r *Repo) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login_at", at).Error
}

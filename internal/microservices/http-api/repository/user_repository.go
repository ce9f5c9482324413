package repository

import (
	"context"
	"fmt"

	"libraryhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations.
// Lookups that miss return gorm.ErrRecordNotFound (possibly wrapped).
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateDetails(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Order("surname ASC").
		Order("forename ASC").
		Order("id ASC").
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetByID loads the user with the books currently on loan to them
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Books", func(db *gorm.DB) *gorm.DB {
			return db.Order("title ASC")
		}).
		First(&user, id).Error
	if err != nil {
		// return nil rather than a zero-value user so callers can't mistake it for a hit
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) UpdateDetails(ctx context.Context, user *models.User) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{ID: user.ID}).
		Updates(map[string]any{
			"forename": user.Forename,
			"surname":  user.Surname,
		})
	if result.Error != nil {
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the user. Books on loan to the user are checked back in
// within the same transaction so no book is left CheckedOut without a borrower.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(lockForUpdate).First(&user, id).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Book{}).
			Where("borrowed_by_id = ?", id).
			Updates(map[string]any{
				"availability":   models.Available,
				"borrowed_by_id": nil,
			}).Error; err != nil {
			return fmt.Errorf("release loans: %w", err)
		}

		if err := tx.Delete(&user).Error; err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"libraryhub/internal/microservices/http-api/models"
	"libraryhub/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	// GetByID returns nil, nil when no user has the id.
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Add(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user and checks their books back in.
	Delete(ctx context.Context, id int64) error

	Borrow(ctx context.Context, userID, bookID int64) error
	Return(ctx context.Context, bookID int64) error
}

type userService struct {
	repo    repository.UserRepository
	lending LendingService
}

func NewUserService(repo repository.UserRepository, lending LendingService) UserService {
	return &userService{
		repo:    repo,
		lending: lending,
	}
}

func (s *userService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *userService) Add(ctx context.Context, user *models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	user.ID = 0
	user.Books = nil
	return s.repo.Create(ctx, user)
}

func (s *userService) Update(ctx context.Context, user *models.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	return translate("update user", s.repo.UpdateDetails(ctx, user))
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	return translate("delete user", s.repo.Delete(ctx, id))
}

func (s *userService) Borrow(ctx context.Context, userID, bookID int64) error {
	return s.lending.Borrow(ctx, userID, bookID)
}

func (s *userService) Return(ctx context.Context, bookID int64) error {
	return s.lending.Return(ctx, bookID)
}

func validateUser(user *models.User) error {
	user.Forename = strings.TrimSpace(user.Forename)
	user.Surname = strings.TrimSpace(user.Surname)
	if user.Forename == "" || user.Surname == "" {
		return fmt.Errorf("%w: forename and surname are required", ErrInvalidInput)
	}
	return nil
}

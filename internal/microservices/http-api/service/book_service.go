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

type BookService interface {
	List(ctx context.Context) ([]models.Book, error)
	// GetByID returns nil, nil when no book has the id.
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Add(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookService struct {
	repo repository.BookRepository
}

func NewBookService(repo repository.BookRepository) BookService {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []models.Book{}
	}
	return books, nil
}

func (s *bookService) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	book, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return book, nil
}

// Add stores a new book. New books always start out Available.
func (s *bookService) Add(ctx context.Context, book *models.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	book.ID = 0
	book.Availability = models.Available
	book.BorrowedByID = nil
	book.BorrowedBy = nil
	return s.repo.Create(ctx, book)
}

// Update rewrites title, author and isbn. The loan state is left alone and
// book is refreshed with the stored values.
func (s *bookService) Update(ctx context.Context, book *models.Book) error {
	if err := validateBook(book); err != nil {
		return err
	}
	return translate("update book", s.repo.UpdateDetails(ctx, book))
}

func (s *bookService) Delete(ctx context.Context, id int64) error {
	return translate("delete book", s.repo.Delete(ctx, id))
}

func validateBook(book *models.Book) error {
	book.Title = strings.TrimSpace(book.Title)
	book.Author = strings.TrimSpace(book.Author)
	book.ISBN = strings.TrimSpace(book.ISBN)
	if book.Title == "" || book.Author == "" || book.ISBN == "" {
		return fmt.Errorf("%w: title, author and isbn are required", ErrInvalidInput)
	}
	return nil
}

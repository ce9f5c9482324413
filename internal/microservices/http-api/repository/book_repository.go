package repository

import (
	"context"
	"fmt"

	"libraryhub/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// BookRepository is the catalog store for books. Lookups that miss return
// gorm.ErrRecordNotFound (possibly wrapped).
type BookRepository interface {
	List(ctx context.Context) ([]models.Book, error)
	GetByID(ctx context.Context, id int64) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	UpdateDetails(ctx context.Context, book *models.Book) error
	Delete(ctx context.Context, id int64) error
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) List(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.WithContext(ctx).
		Order("title ASC").
		Order("id ASC").
		Find(&books).Error; err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// GetByID loads the book together with its current borrower
func (r *bookRepository) GetByID(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := r.db.WithContext(ctx).Preload("BorrowedBy").First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return fmt.Errorf("create book: %w", err)
	}
	// GORM populates book.ID
	return nil
}

// UpdateDetails writes title, author and isbn only. Loan columns are owned by
// the lending transactions and are never written here. On success book is
// reloaded so the caller sees the stored loan state.
func (r *bookRepository) UpdateDetails(ctx context.Context, book *models.Book) error {
	result := r.db.WithContext(ctx).
		Model(&models.Book{ID: book.ID}).
		Updates(map[string]any{
			"title":  book.Title,
			"author": book.Author,
			"isbn":   book.ISBN,
		})
	if result.Error != nil {
		return fmt.Errorf("update book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := r.db.WithContext(ctx).First(book, book.ID).Error; err != nil {
		return fmt.Errorf("reload book: %w", err)
	}
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Book{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete book: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
